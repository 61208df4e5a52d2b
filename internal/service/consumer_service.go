package service

import (
	"context"

	"career-assistant-be/internal/pkg/logger"
	"career-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Deliverer pushes an encoded event to every connection a user has open.
type Deliverer interface {
	Send(ctx context.Context, userID string, data []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	deliverer  Deliverer
	broker     events.Broker
	logger     logger.ILogger
}

// NewConsumerService wires the in-process topic to the websocket hub and,
// when broker is non-nil, to the external message bus.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	deliverer Deliverer,
	broker events.Broker,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		deliverer:  deliverer,
		broker:     broker,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Every outcome is acked: delivery is best effort and a redelivered
	// transition would only confuse the client.
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Warn("CONSUMER", "Dropping malformed event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	if cs.deliverer != nil && event.UserID() != "" {
		cs.deliverer.Send(ctx, event.UserID(), msg.Payload)
	}

	if cs.broker != nil {
		if err := cs.broker.Publish(ctx, event); err != nil {
			cs.logger.Warn("CONSUMER", "Broker forward failed", map[string]interface{}{
				"type":    event.EventType(),
				"user_id": event.UserID(),
				"error":   err.Error(),
			})
		}
	}
}
