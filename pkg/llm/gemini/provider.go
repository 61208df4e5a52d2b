package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"career-assistant-be/pkg/llm"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float64
}

var _ llm.LLMProvider = (*GeminiProvider)(nil)

func NewGeminiProvider(ctx context.Context, apiKey, model string, temperature float64) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiProvider{client: client, model: model, temperature: temperature}, nil
}

// Model is the model sent when a call does not override it.
func (p *GeminiProvider) Model() string {
	return p.model
}

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.Apply(llm.Options{Model: p.model, Temperature: p.temperature}, options...)

	contents, system := toContents(history)

	temperature := float32(opts.Temperature)
	config := &genai.GenerateContentConfig{Temperature: &temperature}
	if system != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}

	resp, err := p.client.Models.GenerateContent(ctx, opts.Model, contents, config)
	if err != nil {
		return "", asStatusError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty candidates from gemini api")
	}

	return resp.Text(), nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleSystem, Content: prompt}}, options...)
}

// toContents splits system messages into an instruction. Gemini rejects a request
// without contents, so a system-only history is sent as a single user turn.
func toContents(history []llm.Message) ([]*genai.Content, string) {
	var system []string
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			system = append(system, msg.Content)
		case llm.RoleAssistant, "model":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}

	instruction := strings.Join(system, "\n\n")
	if len(contents) == 0 {
		return []*genai.Content{genai.NewContentFromText(instruction, genai.RoleUser)}, ""
	}
	return contents, instruction
}

func asStatusError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.StatusError{StatusCode: apiErr.Code, StatusText: http.StatusText(apiErr.Code), Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &llm.StatusError{StatusCode: apiErrPtr.Code, StatusText: http.StatusText(apiErrPtr.Code), Body: apiErrPtr.Message}
	}
	return fmt.Errorf("gemini request failed: %w", err)
}
