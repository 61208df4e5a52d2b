package prompt

import (
	"strings"
	"testing"

	"career-assistant-be/pkg/career"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExplore(t *testing.T) {
	data := career.FormData{
		career.FieldEnjoyedSubjects:  "Math",
		career.FieldDislikedSubjects: "Art",
		career.FieldHobbies:          "Chess",
		career.FieldWorkEnvironment:  "Remote",
		career.FieldLifestyle:        "",
	}

	got, err := Build(career.IntentExplore, data, "Sam")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, `Start with: "Hello Sam! "`))
	for _, want := range []string{"Hello Sam!", "Math", "Art", "Chess", "Remote", "Lifestyle: " + career.NotSpecified, "3 career"} {
		assert.Contains(t, got, want)
	}
}

func TestBuildPathwayOptionalField(t *testing.T) {
	data := career.FormData{
		career.FieldDreamCareer:    "Nurse",
		career.FieldEducationLevel: "Bachelor",
		career.FieldLearningFormat: "Evening classes",
	}

	got, err := Build(career.IntentPathway, data, "Ana")
	require.NoError(t, err)

	assert.Contains(t, got, "Hello Ana!")
	assert.Contains(t, got, "Self Description: "+career.NotSpecified)
	assert.Contains(t, got, "Timeline")
}

func TestBuildResume(t *testing.T) {
	data := career.FormData{
		career.FieldResumeText:     "Go developer, 5 years",
		career.FieldJobDescription: "Senior backend engineer",
	}

	got, err := Build(career.IntentResume, data, "Lee")
	require.NoError(t, err)

	assert.Contains(t, got, "Go developer, 5 years")
	assert.Contains(t, got, "Senior backend engineer")
	assert.Contains(t, got, "Rewrite the full resume")
}

func TestBuildIsDeterministic(t *testing.T) {
	data := career.FormData{career.FieldDreamCareer: "Chef"}

	a, err := Build(career.IntentPathway, data, "Kim")
	require.NoError(t, err)
	b, err := Build(career.IntentPathway, data, "Kim")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestBuildAsksForFormattingAndFallback(t *testing.T) {
	for _, intent := range career.Intents() {
		got, err := Build(intent, career.FormData{}, "Jo")
		require.NoError(t, err)
		assert.Contains(t, got, "bold", intent)
		assert.Contains(t, got, "line breaks", intent)
		assert.Contains(t, got, "joke", intent)
	}
}

func TestBuildUnknownIntent(t *testing.T) {
	_, err := Build(career.Intent("salary"), career.FormData{}, "Jo")
	assert.ErrorIs(t, err, career.ErrUnknownIntent)
}
