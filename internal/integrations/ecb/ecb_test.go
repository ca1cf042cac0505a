package ecb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEnvelope = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01"
	xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<gesmes:Sender><gesmes:name>European Central Bank</gesmes:name></gesmes:Sender>
	<Cube>
		<Cube time="2026-08-31">
			<Cube currency="USD" rate="1.1743"/>
			<Cube currency="JPY" rate="172.31"/>
			<Cube currency="GBP" rate="0.8651"/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

func TestParseRates(t *testing.T) {
	rates, err := parseRates([]byte(sampleEnvelope))
	require.NoError(t, err)

	assert.Equal(t, "2026-08-31", rates.Date)
	assert.Equal(t, "EUR", rates.Base)
	assert.Len(t, rates.Rates, 3)
	assert.InDelta(t, 1.1743, rates.Rates["USD"], 0.0001)
	assert.InDelta(t, 0.8651, rates.Rates["GBP"], 0.0001)
}

func TestParseRatesNoCube(t *testing.T) {
	_, err := parseRates([]byte(`<?xml version="1.0"?><Envelope><Cube></Cube></Envelope>`))
	assert.Error(t, err)
}

func TestParseRatesBadXML(t *testing.T) {
	_, err := parseRates([]byte(`not xml at all`))
	assert.Error(t, err)
}

func TestParseRatesBadRate(t *testing.T) {
	doc := `<Envelope><Cube><Cube time="2026-08-31"><Cube currency="USD" rate="oops"/></Cube></Cube></Envelope>`
	_, err := parseRates([]byte(doc))
	assert.Error(t, err)
}
