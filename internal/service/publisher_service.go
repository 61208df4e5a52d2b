package service

import (
	"context"

	"career-assistant-be/internal/pkg/logger"
	"career-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	pubSub    message.Publisher
}

func NewPublisherService(topicName string, pubSub message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := events.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.pubSub.Publish(p.topicName, msg)
}

// emit publishes a session event and only logs on failure; the transitions
// themselves have already happened.
func emit(ctx context.Context, publisher IPublisherService, log logger.ILogger, eventType, userID string, data map[string]interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events.New(eventType, userID, data)); err != nil {
		log.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":    eventType,
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}
