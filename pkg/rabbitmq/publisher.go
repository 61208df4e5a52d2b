package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	"career-assistant-be/pkg/events"

	"github.com/streadway/amqp"
)

const DefaultExchange = "career_updates"

// Publisher sends events to a RabbitMQ topic exchange, routed by session.<user>.
type Publisher struct {
	conn     *amqp.Connection
	exchange string
	mu       sync.Mutex
}

var _ events.Broker = (*Publisher)(nil)

func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Publisher{conn: conn, exchange: exchange}, nil
}

func RoutingKey(event events.Event) string {
	return fmt.Sprintf("session.%s", event.UserID())
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := events.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	return ch.Publish(
		p.exchange,
		RoutingKey(event),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Type:        event.EventType(),
			Timestamp:   event.Timestamp(),
			Body:        body,
		},
	)
}

func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
