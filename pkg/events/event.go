package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// TopicSession is the in-process topic every session transition is published on.
	TopicSession = "career.session"

	TypeSectionActivated    = "SECTION_ACTIVATED"
	TypeSubmissionStarted   = "SUBMISSION_STARTED"
	TypeSubmissionSucceeded = "SUBMISSION_SUCCEEDED"
	TypeSubmissionFailed    = "SUBMISSION_FAILED"
	TypeExtractionStarted   = "EXTRACTION_STARTED"
	TypeExtractionFinished  = "EXTRACTION_FINISHED"
	// TypeSessionSnapshot is sent once per push connection, never on the bus.
	TypeSessionSnapshot = "SESSION_SNAPSHOT"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SUBMISSION_STARTED").
	EventType() string

	// UserID returns the session owner the event belongs to.
	UserID() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string                 `json:"type"`
	User       string                 `json:"user_id"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func New(eventType, userID string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{Type: eventType, User: userID, Data: data, OccurredAt: time.Now().UTC()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) UserID() string {
	return e.User
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Marshal encodes any Event into the envelope used on every transport.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(BaseEvent{
		Type:       e.EventType(),
		User:       e.UserID(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	})
}

func Unmarshal(data []byte) (BaseEvent, error) {
	var e BaseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if e.Type == "" {
		return BaseEvent{}, fmt.Errorf("decode event: missing type")
	}
	return e, nil
}

// Broker forwards events to an external message bus.
type Broker interface {
	Publish(ctx context.Context, event Event) error
	Close()
}
