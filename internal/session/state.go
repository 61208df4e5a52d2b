// Package session holds the per-user application state of the assistant.
//
// All mutation goes through the named transitions on State. Each State guards
// itself with its own mutex, so handlers for the same user may run concurrently.
package session

import (
	"errors"
	"sync"
	"time"

	"career-assistant-be/pkg/career"
	"career-assistant-be/pkg/extractor"
)

var (
	ErrSubmissionInFlight   = errors.New("a submission for this section is already in progress")
	ErrExtractionInProgress = errors.New("the resume is still being processed")
	ErrNameRequired         = errors.New("display name is required")
)

// GenericFailure is shown when a failed submission carries no message of its own.
const GenericFailure = "An error occurred while processing your request"

type State struct {
	mu sync.Mutex

	userID        string
	displayName   string
	nameConfirmed bool
	darkMode      bool

	active   career.Intent
	inFlight map[career.Intent]bool
	results  map[career.Intent]Result
	errMsg   string

	processing    bool
	extractionSeq uint64
	extractionErr string
	document      *extractor.Document

	updatedAt time.Time
}

// Result is the formatted answer stored for one intent.
type Result struct {
	Intent      career.Intent `json:"intent"`
	Markup      string        `json:"markup"`
	CompletedAt time.Time     `json:"completed_at"`
}

func New(userID string) *State {
	return &State{
		userID:    userID,
		inFlight:  make(map[career.Intent]bool),
		results:   make(map[career.Intent]Result),
		updatedAt: time.Now(),
	}
}

func (s *State) UserID() string {
	return s.userID
}

func (s *State) touch() {
	s.updatedAt = time.Now()
}

// ConfirmName records the display name. An empty name is rejected.
func (s *State) ConfirmName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.displayName = name
	s.nameConfirmed = true
	s.touch()
	return nil
}

func (s *State) DisplayName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayName
}

func (s *State) SetDarkMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = on
	s.touch()
}

// Activate opens the section for intent. Leaving the resume section discards the
// extracted document. It reports whether the active section changed.
func (s *State) Activate(intent career.Intent) (bool, error) {
	if !intent.Valid() {
		return false, career.ErrUnknownIntent
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == intent {
		return false, nil
	}
	if s.active == career.IntentResume {
		// Leaving the form abandons the document and any extraction still running.
		s.document = nil
		s.extractionErr = ""
		s.extractionSeq++
		s.processing = false
	}
	s.active = intent
	s.touch()
	return true, nil
}

func (s *State) Active() (career.Intent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.active != ""
}

// BeginSubmission marks intent in flight and clears the previous error. A second
// submission for the same intent is rejected until the first one finishes. The
// resume section also waits for a running extraction.
func (s *State) BeginSubmission(intent career.Intent) error {
	if !intent.Valid() {
		return career.ErrUnknownIntent
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[intent] {
		return ErrSubmissionInFlight
	}
	if intent == career.IntentResume && s.processing {
		return ErrExtractionInProgress
	}
	s.inFlight[intent] = true
	s.errMsg = ""
	s.touch()
	return nil
}

func (s *State) CompleteSubmission(intent career.Intent, markup string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := Result{Intent: intent, Markup: markup, CompletedAt: time.Now().UTC()}
	s.results[intent] = r
	s.inFlight[intent] = false
	s.touch()
	return r
}

// FailSubmission stores the error message and leaves the previous result untouched.
func (s *State) FailSubmission(intent career.Intent, message string) string {
	if message == "" {
		message = GenericFailure
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errMsg = message
	s.inFlight[intent] = false
	s.touch()
	return message
}

func (s *State) Result(intent career.Intent) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.results[intent]
	return r, ok
}

func (s *State) InFlight(intent career.Intent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[intent]
}

// BeginExtraction starts a new extraction and returns its ticket. Only the holder
// of the latest ticket may finish it.
func (s *State) BeginExtraction() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.extractionSeq++
	s.processing = true
	s.extractionErr = ""
	s.touch()
	return s.extractionSeq
}

// FinishExtraction stores doc unless a newer extraction has started since.
func (s *State) FinishExtraction(ticket uint64, doc *extractor.Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.extractionSeq {
		return false
	}
	s.document = doc
	s.processing = false
	s.touch()
	return true
}

// FailExtraction records message unless a newer extraction has started since.
func (s *State) FailExtraction(ticket uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.extractionSeq {
		return false
	}
	s.extractionErr = message
	s.processing = false
	s.touch()
	return true
}

func (s *State) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

func (s *State) Document() *extractor.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.document == nil {
		return nil
	}
	doc := *s.document
	return &doc
}

type DocumentMeta struct {
	FileName string           `json:"file_name"`
	Format   extractor.Format `json:"format"`
	Length   int              `json:"length"`
}

// Snapshot is a point-in-time copy of the state, safe to serialise.
type Snapshot struct {
	UserID          string                   `json:"user_id"`
	DisplayName     string                   `json:"display_name"`
	NameConfirmed   bool                     `json:"name_confirmed"`
	DarkMode        bool                     `json:"dark_mode"`
	ActiveIntent    career.Intent            `json:"active_intent,omitempty"`
	InFlight        []career.Intent          `json:"in_flight"`
	Results         map[career.Intent]Result `json:"results"`
	Error           string                   `json:"error,omitempty"`
	Processing      bool                     `json:"processing"`
	ExtractionError string                   `json:"extraction_error,omitempty"`
	Document        *DocumentMeta            `json:"document,omitempty"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		UserID:          s.userID,
		DisplayName:     s.displayName,
		NameConfirmed:   s.nameConfirmed,
		DarkMode:        s.darkMode,
		ActiveIntent:    s.active,
		InFlight:        []career.Intent{},
		Results:         make(map[career.Intent]Result, len(s.results)),
		Error:           s.errMsg,
		Processing:      s.processing,
		ExtractionError: s.extractionErr,
		UpdatedAt:       s.updatedAt,
	}
	for _, intent := range career.Intents() {
		if s.inFlight[intent] {
			snap.InFlight = append(snap.InFlight, intent)
		}
	}
	for k, v := range s.results {
		snap.Results[k] = v
	}
	if s.document != nil {
		snap.Document = &DocumentMeta{
			FileName: s.document.FileName,
			Format:   s.document.Format,
			Length:   len(s.document.Text),
		}
	}
	return snap
}

// SubmissionError carries the message stored in the error slot after a failed submission.
type SubmissionError struct {
	Intent  career.Intent
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
