package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"repairdesk/internal/core/ports"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeOrders receives every order event.
	ExchangeOrders = "repairdesk.orders"

	// RoutingKeyStatusChanged routes status-change events.
	RoutingKeyStatusChanged = "order.status_changed"
)

// ChannelProvider hands out a channel for the duration of fn.
type ChannelProvider interface {
	WithChannel(ctx context.Context, fn func(Channel) error) error
}

// Message is the envelope of every published event.
type Message struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusChangedPayload is the body of an order.status_changed event.
type StatusChangedPayload struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	ToName      string    `json:"to_name"`
	Responsible string    `json:"responsible"`
	At          time.Time `json:"at"`
}

// Publisher implements ports.EventPublisher on a topic exchange.
type Publisher struct {
	channels ChannelProvider
	logger   *slog.Logger
}

// NewPublisher creates a Publisher.
func NewPublisher(channels ChannelProvider, logger *slog.Logger) *Publisher {
	return &Publisher{channels: channels, logger: logger}
}

// DeclareTopology declares the durable orders exchange.
func (p *Publisher) DeclareTopology(ctx context.Context) error {
	return p.channels.WithChannel(ctx, func(ch Channel) error {
		if err := ch.ExchangeDeclare(ExchangeOrders, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeOrders, err)
		}
		return nil
	})
}

// PublishStatusChanged publishes event as a persistent JSON message.
func (p *Publisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	msg := Message{
		ID:   uuid.New().String(),
		Type: RoutingKeyStatusChanged,
		Payload: StatusChangedPayload{
			OrderID:     event.OrderID.String(),
			OrderNumber: event.OrderNumber,
			FromStatus:  event.FromStatus.String(),
			ToStatus:    event.ToStatus.String(),
			ToName:      event.ToName,
			Responsible: event.Responsible,
			At:          event.At.UTC(),
		},
		Timestamp: time.Now().UTC(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.channels.WithChannel(ctx, func(ch Channel) error {
		err := ch.PublishWithContext(ctx, ExchangeOrders, RoutingKeyStatusChanged, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.ID,
			Timestamp:    msg.Timestamp,
			Body:         body,
		})
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", ExchangeOrders, RoutingKeyStatusChanged, err)
		}

		p.logger.Debug("published message",
			"exchange", ExchangeOrders,
			"routing_key", RoutingKeyStatusChanged,
			"message_id", msg.ID,
			"order_number", event.OrderNumber,
		)
		return nil
	})
}
