package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"career-assistant-be/internal/entity"
	"career-assistant-be/internal/pkg/logger"
	"career-assistant-be/internal/repository/memory"
	"career-assistant-be/pkg/events"
	"career-assistant-be/pkg/extractor"
	"career-assistant-be/pkg/llm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type fakeIdentity struct {
	mu          sync.Mutex
	nicknames   map[string]string
	prefs       map[string]entity.Preferences
	lookupErr   error
	registerErr error
	saveErr     error
	registered  []string
	recorded    map[string]string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		nicknames: map[string]string{},
		prefs:     map[string]entity.Preferences{},
		recorded:  map[string]string{},
	}
}

func (f *fakeIdentity) GetCurrentUser(token string) (string, bool) {
	userID, ok := strings.CutPrefix(token, "token-")
	return userID, ok && userID != ""
}

func (f *fakeIdentity) IssueToken(userID string) (string, error) {
	return "token-" + userID, nil
}

func (f *fakeIdentity) LookupNickname(ctx context.Context, userID string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return "", false, f.lookupErr
	}
	name, ok := f.nicknames[userID]
	return name, ok, nil
}

func (f *fakeIdentity) RegisterUser(ctx context.Context, displayName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return "", f.registerErr
	}
	id := "user-" + displayName
	f.registered = append(f.registered, displayName)
	f.nicknames[id] = displayName
	return id, nil
}

func (f *fakeIdentity) RecordNickname(ctx context.Context, userID, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded[userID] = displayName
	f.nicknames[userID] = displayName
	return nil
}

func (f *fakeIdentity) LoadPreferences(ctx context.Context, userID string) (entity.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prefs[userID], nil
}

func (f *fakeIdentity) SavePreferences(ctx context.Context, userID string, prefs entity.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.prefs[userID] = prefs
	return nil
}

// fakeLLM returns reply or err; block holds the call until closed.
type fakeLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	panics  bool
	block   chan struct{}
	calls   int
	prompts []string
	options []llm.Options
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.Generate(ctx, history[0].Content, options...)
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.options = append(f.options, llm.Apply(llm.Options{}, options...))
	block, reply, err, panics := f.block, f.reply, f.err, f.panics
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if panics {
		panic("model exploded")
	}
	return reply, err
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeExtractor struct {
	doc    *extractor.Document
	err    error
	panics bool
	block  chan struct{}
}

func (f *fakeExtractor) Extract(ctx context.Context, file extractor.File) (*extractor.Document, error) {
	if f.block != nil {
		<-f.block
	}
	if f.panics {
		panic("parser exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	doc := *f.doc
	doc.FileName = file.Name
	return &doc, nil
}

type fakeBroker struct {
	mu        sync.Mutex
	published []events.Event
	err       error
}

func (b *fakeBroker) Publish(ctx context.Context, event events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
	return b.err
}

func (b *fakeBroker) Close() {}

var errStore = errors.New("connection refused")

type fixture struct {
	sessions  *memory.SessionRepository
	identity  *fakeIdentity
	publisher *recordingPublisher
	session   ISessionService
}

func newFixture() *fixture {
	f := &fixture{
		sessions:  memory.NewSessionRepository(time.Hour, time.Hour),
		identity:  newFakeIdentity(),
		publisher: &recordingPublisher{},
	}
	f.session = NewSessionService(f.sessions, f.identity, f.publisher, logger.NewNopLogger())
	return f
}
