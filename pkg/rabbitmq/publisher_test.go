package rabbitmq

import (
	"testing"

	"career-assistant-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestRoutingKey(t *testing.T) {
	e := events.New(events.TypeSubmissionSucceeded, "8f1c", nil)
	assert.Equal(t, "session.8f1c", RoutingKey(e))
}
