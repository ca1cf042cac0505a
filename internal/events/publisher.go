package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Routing keys for published events
const (
	RoutingUserRegistered     = "user.registered"
	RoutingTransactionCreated = "transaction.created"
)

// Publisher emits domain events to an AMQP exchange. A nil *Publisher is
// valid and drops everything, so callers never guard publishes.
type Publisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	logger   *logrus.Logger
}

// NewPublisher connects to the broker and declares a durable direct exchange
func NewPublisher(url, exchange string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// UserRegisteredEvent announces a new registration
type UserRegisteredEvent struct {
	UserID     int64  `json:"user_id"`
	Email      string `json:"email"`
	OccurredAt string `json:"occurred_at"`
}

// TransactionCreatedEvent announces a recorded transaction
type TransactionCreatedEvent struct {
	TransactionID   int64   `json:"transaction_id"`
	UserID          int64   `json:"user_id"`
	Amount          float64 `json:"amount"`
	TransactionType string  `json:"transaction_type"`
	OccurredAt      string  `json:"occurred_at"`
}

// PublishUserRegistered emits a user.registered event
func (p *Publisher) PublishUserRegistered(userID int64, email string) {
	if p == nil {
		return
	}
	p.publish(RoutingUserRegistered, UserRegisteredEvent{
		UserID:     userID,
		Email:      email,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// PublishTransactionCreated emits a transaction.created event
func (p *Publisher) PublishTransactionCreated(transactionID, userID int64, amount float64, transactionType string) {
	if p == nil {
		return
	}
	p.publish(RoutingTransactionCreated, TransactionCreatedEvent{
		TransactionID:   transactionID,
		UserID:          userID,
		Amount:          amount,
		TransactionType: transactionType,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	})
}

// publish is best-effort: a broker hiccup is logged, never bubbled up to the
// request path
func (p *Publisher) publish(routingKey string, event interface{}) {
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Errorf("Failed to marshal %s event: %v", routingKey, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Errorf("Failed to publish %s event: %v", routingKey, err)
		return
	}
	p.logger.Debugf("Published %s event", routingKey)
}

// Close shuts down the channel and connection
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
