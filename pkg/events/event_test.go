package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsPayload(t *testing.T) {
	e := New(TypeSectionActivated, "u-1", nil)

	assert.Equal(t, TypeSectionActivated, e.EventType())
	assert.Equal(t, "u-1", e.UserID())
	assert.NotNil(t, e.Payload())
	assert.False(t, e.Timestamp().IsZero())
}

func TestMarshalUnmarshal(t *testing.T) {
	in := New(TypeSubmissionFailed, "u-2", map[string]interface{}{"intent": "resume", "error": "API request failed: Bad Gateway"})

	data, err := Marshal(in)
	require.NoError(t, err)

	out, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, in.Type, out.Type)
	assert.Equal(t, in.User, out.User)
	assert.Equal(t, "resume", out.Data["intent"])
	assert.True(t, in.OccurredAt.Equal(out.OccurredAt))
}

func TestUnmarshal_RejectsUntyped(t *testing.T) {
	_, err := Unmarshal([]byte(`{"user_id":"u"}`))
	assert.Error(t, err)

	_, err = Unmarshal([]byte(`nope`))
	assert.Error(t, err)
}
