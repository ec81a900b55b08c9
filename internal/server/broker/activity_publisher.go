// Package broker forwards activity log entries to RabbitMQ.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rabbitmq/amqp091-go"

	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// channel is the part of *amqp091.Channel used by ActivityPublisher.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type connection interface {
	Close() error
}

// dial is a seam for tests.
var dial = func(url string) (connection, channel, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to create a channel: %w", err)
	}
	return conn, ch, nil
}

// ActivityPublisher publishes each activity entry as JSON to a topic
// exchange, routed by the entry type in lower case.
type ActivityPublisher struct {
	mu       sync.Mutex
	conn     connection
	channel  channel
	exchange string
}

func NewActivityPublisher(url, exchange string) (*ActivityPublisher, error) {
	conn, ch, err := dial(url)
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(
		exchange,
		amqp091.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &ActivityPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// RoutingKey returns the key an entry is published with.
func RoutingKey(kind models.ActivityKind) string {
	return "activity." + string(kind)
}

func (p *ActivityPublisher) Publish(ctx context.Context, entry models.Activity) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode activity: %w", err)
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		RoutingKey(entry.Type),
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    entry.Time,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish activity: %w", err)
	}
	return nil
}

func (p *ActivityPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	chErr := p.channel.Close()
	connErr := p.conn.Close()
	if chErr != nil {
		return chErr
	}
	return connErr
}
