package career

import (
	"errors"
	"fmt"
	"strings"
)

// Intent is one of the three guided goals a user can pick. The set is closed:
// every value outside the constants below is rejected by ParseIntent.
type Intent string

const (
	IntentExplore Intent = "explore"
	IntentPathway Intent = "pathway"
	IntentResume  Intent = "resume"
)

// ErrUnknownIntent signals a defect: some caller produced an intent outside the closed set.
var ErrUnknownIntent = errors.New("unknown intent")

// Intents returns all intents in display order.
func Intents() []Intent {
	return []Intent{IntentExplore, IntentPathway, IntentResume}
}

func ParseIntent(raw string) (Intent, error) {
	i := Intent(strings.ToLower(strings.TrimSpace(raw)))
	if !i.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownIntent, raw)
	}
	return i, nil
}

func (i Intent) Valid() bool {
	_, ok := definitions[i]
	return ok
}

// Title is the heading shown above the section.
func (i Intent) Title() string {
	if def, ok := definitions[i]; ok {
		return def.title
	}
	return ""
}

// Description is the short blurb on the section card.
func (i Intent) Description() string {
	if def, ok := definitions[i]; ok {
		return def.description
	}
	return ""
}

func (i Intent) String() string {
	return string(i)
}
