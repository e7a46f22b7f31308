// Package rabbitmq publishes order status-change events to RabbitMQ.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrConnectionClosed is returned after Close.
var ErrConnectionClosed = errors.New("rabbitmq connection is closed")

// Channel is the subset of *amqp.Channel the adapter uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Connection wraps an AMQP connection and reconnects with exponential backoff
// when the broker drops it.
type Connection struct {
	url    string
	logger *slog.Logger

	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel

	closed   bool
	closedCh chan struct{}
}

// Dial connects to url and starts watching the connection.
func Dial(url string, logger *slog.Logger) (*Connection, error) {
	c := &Connection{
		url:      url,
		logger:   logger.With("component", "rabbitmq"),
		closedCh: make(chan struct{}),
	}

	if err := c.connect(); err != nil {
		return nil, err
	}

	go c.watch()

	return c, nil
}

func (c *Connection) connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	c.conn = conn
	c.channel = ch
	c.logger.Info("connected to RabbitMQ")

	return nil
}

func (c *Connection) watch() {
	for {
		c.mu.RLock()
		if c.closed {
			c.mu.RUnlock()
			return
		}
		conn := c.conn
		c.mu.RUnlock()

		notifyClose := conn.NotifyClose(make(chan *amqp.Error, 1))

		select {
		case <-c.closedCh:
			return
		case err := <-notifyClose:
			if err != nil {
				c.logger.Warn("connection closed", "error", err)
			}
			c.reconnect()
		}
	}
}

func (c *Connection) reconnect() {
	delay := time.Second

	for {
		select {
		case <-c.closedCh:
			return
		case <-time.After(delay):
		}

		if err := c.connect(); err != nil {
			c.logger.Warn("reconnect failed", "error", err, "delay", delay)
			delay = min(delay*2, 30*time.Second)
			continue
		}

		c.logger.Info("reconnected to RabbitMQ")
		return
	}
}

// WithChannel runs fn with the current channel.
func (c *Connection) WithChannel(_ context.Context, fn func(Channel) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrConnectionClosed
	}
	if c.channel == nil {
		return amqp.ErrClosed
	}

	return fn(c.channel)
}

// Close closes the channel and the connection.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.closedCh)

	var closeErrs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			closeErrs = append(closeErrs, fmt.Errorf("close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			closeErrs = append(closeErrs, fmt.Errorf("close connection: %w", err))
		}
	}

	return errors.Join(closeErrs...)
}
