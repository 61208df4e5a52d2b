package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// Apply resolves options on top of the given defaults.
func Apply(defaults Options, options ...Option) Options {
	for _, o := range options {
		o(&defaults)
	}
	return defaults
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// StatusError is returned when the completion endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	StatusText string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed: %s", e.StatusText)
}

// NewStatusError builds a StatusError from an HTTP status line such as "429 Too Many Requests".
func NewStatusError(code int, status string, body []byte) *StatusError {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	return &StatusError{StatusCode: code, StatusText: text, Body: string(body)}
}
