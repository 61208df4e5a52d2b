package career

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		raw     string
		want    Intent
		wantErr bool
	}{
		{raw: "explore", want: IntentExplore},
		{raw: "pathway", want: IntentPathway},
		{raw: " Resume ", want: IntentResume},
		{raw: "salary", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseIntent(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownIntent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEveryIntentHasDefinition(t *testing.T) {
	for _, i := range Intents() {
		fields, err := Fields(i)
		require.NoError(t, err)
		assert.NotEmpty(t, fields, i)
		assert.NotEmpty(t, i.Title(), i)
	}
}

func TestFieldsLabels(t *testing.T) {
	fields, err := Fields(IntentExplore)
	require.NoError(t, err)

	labels := map[string]string{}
	for _, f := range fields {
		labels[f.Key] = f.Label
	}
	assert.Equal(t, "Hobbies", labels[FieldHobbies])
	assert.Equal(t, "Lifestyle (Optional)", labels[FieldLifestyle])
	assert.Equal(t, "Enter your enjoyedsubjects...", fields[0].Placeholder)
}

func TestCollectorSubmit(t *testing.T) {
	c, err := NewCollector(IntentPathway)
	require.NoError(t, err)

	require.NoError(t, c.SetAll(map[string]string{
		FieldDreamCareer:    "Pilot",
		FieldEducationLevel: "High school",
	}))

	_, err = c.Submit()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{FieldLearningFormat}, verr.Missing)

	require.NoError(t, c.Set(FieldLearningFormat, "Online"))
	sub, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, IntentPathway, sub.Intent)
	assert.Equal(t, "Pilot", sub.Data[FieldDreamCareer])
	assert.Equal(t, "", sub.Data[FieldSelfDescription])

	// the submission is a copy, later edits do not leak into it
	require.NoError(t, c.Set(FieldDreamCareer, "Astronaut"))
	assert.Equal(t, "Pilot", sub.Data[FieldDreamCareer])
}

func TestCollectorRejectsUnknownField(t *testing.T) {
	c, err := NewCollector(IntentResume)
	require.NoError(t, err)

	err = c.Set(FieldHobbies, "chess")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestCollectorWhitespaceCountsAsFilled(t *testing.T) {
	c, err := NewCollector(IntentResume)
	require.NoError(t, err)
	require.NoError(t, c.Set(FieldResumeText, " "))
	require.NoError(t, c.Set(FieldJobDescription, "Backend engineer"))

	assert.NoError(t, c.Validate())
}

func TestNewCollectorUnknownIntent(t *testing.T) {
	_, err := NewCollector(Intent("salary"))
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestOrNotSpecified(t *testing.T) {
	d := FormData{FieldLifestyle: "", FieldHobbies: "Chess"}
	assert.Equal(t, NotSpecified, d.OrNotSpecified(FieldLifestyle))
	assert.Equal(t, NotSpecified, d.OrNotSpecified(FieldSelfDescription))
	assert.Equal(t, "Chess", d.OrNotSpecified(FieldHobbies))
}
