// Package events publishes wallet activity to RabbitMQ so downstream
// consumers (receipts, analytics) can react without coupling to the store.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

// Event types emitted by the transaction service.
const (
	EventPurchaseCompleted   = "purchase.completed"
	EventRefundCompleted     = "refund.completed"
	EventDepositCompleted    = "deposit.completed"
	EventWithdrawalCompleted = "withdrawal.completed"
)

// ExchangeWallet is the topic exchange wallet events are routed through.
const ExchangeWallet = "storefront.wallet"

// WalletEvent describes a committed balance-affecting operation.
type WalletEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	UserID    uuid.UUID       `json:"user_id"`
	GameID    *uuid.UUID      `json:"game_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewWalletEvent creates an event for a committed operation.
func NewWalletEvent(eventType string, userID uuid.UUID, gameID *uuid.UUID, amount, balance decimal.Decimal) *WalletEvent {
	return &WalletEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		UserID:    userID,
		GameID:    gameID,
		Amount:    amount,
		Balance:   balance,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher sends wallet events to the message broker.
type Publisher interface {
	Publish(ctx context.Context, event *WalletEvent) error
	Close() error
}

// RabbitMQPublisher implements Publisher over an AMQP channel.
type RabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewRabbitMQPublisher connects to RabbitMQ and declares the wallet exchange.
func NewRabbitMQPublisher(url string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		ExchangeWallet,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", ExchangeWallet, err)
	}

	logger.Info("RabbitMQ publisher initialized", "exchange", ExchangeWallet)

	return &RabbitMQPublisher{
		conn:    conn,
		channel: channel,
		logger:  logger,
	}, nil
}

// Publish routes the event through the wallet exchange with the event type as
// routing key.
func (p *RabbitMQPublisher) Publish(ctx context.Context, event *WalletEvent) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return fmt.Errorf("publisher is closed")
	}
	p.mu.RUnlock()

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		ExchangeWallet,
		event.Type,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.Timestamp,
			ContentType:  "application/json",
			MessageId:    event.ID,
			Type:         event.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}

	p.logger.Debug("event published", "event_id", event.ID, "type", event.Type)
	return nil
}

// Close closes the channel and connection.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true

	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
