package ecb

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/tallytrace/finance-service/internal/config"
)

// Rates holds the ECB daily reference rates, quoted against EUR
type Rates struct {
	Date  string             `json:"date"` // YYYY-MM-DD
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Client fetches daily reference rates from the European Central Bank
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new ECB client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.ECBRatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// DailyRates retrieves and parses the current reference rates
func (c *Client) DailyRates() (*Rates, error) {
	body, err := c.fetch()
	if err != nil {
		return nil, err
	}
	rates, err := parseRates(body)
	if err != nil {
		return nil, err
	}
	c.log.Infof("Retrieved %d ECB reference rates for %s", len(rates.Rates), rates.Date)
	return rates, nil
}

func (c *Client) fetch() ([]byte, error) {
	resp, err := c.client.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}
	c.log.Debugf("ECB XML response: %s", string(body))
	return body, nil
}

// parseRates extracts the dated Cube from the eurofxref-daily document. The
// envelope nests Cube three deep: container, dated, then one per currency.
func parseRates(rawBody []byte) (*Rates, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	dated := doc.FindElement("//Cube/Cube[@time]")
	if dated == nil {
		return nil, fmt.Errorf("no dated rate cube found in XML")
	}

	rates := &Rates{
		Date:  dated.SelectAttrValue("time", ""),
		Base:  "EUR",
		Rates: make(map[string]float64),
	}
	for _, cube := range dated.SelectElements("Cube") {
		currency := cube.SelectAttrValue("currency", "")
		rateText := cube.SelectAttrValue("rate", "")
		if currency == "" || rateText == "" {
			continue
		}
		rate, err := strconv.ParseFloat(rateText, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %v", currency, err)
		}
		rates.Rates[currency] = rate
	}
	if len(rates.Rates) == 0 {
		return nil, fmt.Errorf("no currency rates found in XML")
	}
	return rates, nil
}
