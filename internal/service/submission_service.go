package service

import (
	"context"
	"fmt"

	"career-assistant-be/internal/dto"
	"career-assistant-be/internal/pkg/logger"
	"career-assistant-be/internal/session"
	"career-assistant-be/pkg/career"
	"career-assistant-be/pkg/events"
	"career-assistant-be/pkg/formatter"
	"career-assistant-be/pkg/llm"
	"career-assistant-be/pkg/prompt"
)

type ISubmissionService interface {
	Describe(intent career.Intent) (*dto.FormResponse, error)
	Submit(ctx context.Context, userID string, intent career.Intent, values map[string]string) (*session.Result, error)
}

type submissionService struct {
	sessions  SessionProvider
	llm       llm.LLMProvider
	publisher IPublisherService
	logger    logger.ILogger
	options   []llm.Option
}

func NewSubmissionService(
	sessions SessionProvider,
	llmProvider llm.LLMProvider,
	publisher IPublisherService,
	log logger.ILogger,
	options ...llm.Option,
) ISubmissionService {
	return &submissionService{
		sessions:  sessions,
		llm:       llmProvider,
		publisher: publisher,
		logger:    log,
		options:   options,
	}
}

func (s *submissionService) Describe(intent career.Intent) (*dto.FormResponse, error) {
	fields, err := career.Fields(intent)
	if err != nil {
		return nil, err
	}

	res := &dto.FormResponse{
		Intent:      intent,
		Title:       intent.Title(),
		Description: intent.Description(),
		Fields:      make([]dto.FieldResponse, 0, len(fields)),
	}
	for _, f := range fields {
		res.Fields = append(res.Fields, dto.FieldResponse{
			Key:         f.Key,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Required:    f.Required,
		})
	}
	return res, nil
}

// Submit validates the form, asks the model and stores the formatted answer in
// the intent's result slot. A failure leaves the previous result in place and
// fills the session's error slot instead.
func (s *submissionService) Submit(ctx context.Context, userID string, intent career.Intent, values map[string]string) (result *session.Result, err error) {
	collector, err := career.NewCollector(intent)
	if err != nil {
		return nil, err
	}

	state := s.sessions.Ensure(ctx, userID)
	if err := collector.SetAll(values); err != nil {
		return nil, err
	}
	if intent == career.IntentResume {
		fillExtractedResume(collector, state)
	}
	submission, err := collector.Submit()
	if err != nil {
		return nil, err
	}

	changed, err := state.Activate(intent)
	if err != nil {
		return nil, err
	}
	if changed {
		emit(ctx, s.publisher, s.logger, events.TypeSectionActivated, userID, map[string]interface{}{
			"intent": intent.String(),
		})
	}

	if err := state.BeginSubmission(intent); err != nil {
		return nil, err
	}
	emit(ctx, s.publisher, s.logger, events.TypeSubmissionStarted, userID, map[string]interface{}{
		"intent": intent.String(),
	})

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = s.fail(ctx, state, intent, "", fmt.Errorf("panic during submission: %v", r))
		}
	}()

	systemPrompt, err := prompt.Build(submission.Intent, submission.Data, state.DisplayName())
	if err != nil {
		return nil, s.fail(ctx, state, intent, err.Error(), err)
	}

	raw, err := s.llm.Generate(ctx, systemPrompt, s.options...)
	if err != nil {
		return nil, s.fail(ctx, state, intent, err.Error(), err)
	}

	r := state.CompleteSubmission(intent, formatter.Format(raw))
	emit(ctx, s.publisher, s.logger, events.TypeSubmissionSucceeded, userID, map[string]interface{}{
		"intent": intent.String(),
		"markup": r.Markup,
	})

	s.logger.Info("SUBMISSION", "Submission completed", map[string]interface{}{
		"user_id": userID,
		"intent":  intent.String(),
	})
	return &r, nil
}

func (s *submissionService) fail(ctx context.Context, state *session.State, intent career.Intent, message string, cause error) error {
	stored := state.FailSubmission(intent, message)

	s.logger.Error("SUBMISSION", "Submission failed", map[string]interface{}{
		"user_id": state.UserID(),
		"intent":  intent.String(),
		"error":   cause.Error(),
	})
	emit(ctx, s.publisher, s.logger, events.TypeSubmissionFailed, state.UserID(), map[string]interface{}{
		"intent": intent.String(),
		"error":  stored,
	})

	return &session.SubmissionError{Intent: intent, Message: stored, Err: cause}
}

// fillExtractedResume fills an empty resumeText with the uploaded document.
func fillExtractedResume(collector *career.Collector, state *session.State) {
	if collector.Values()[career.FieldResumeText] != "" {
		return
	}
	doc := state.Document()
	if doc == nil || doc.Text == "" {
		return
	}
	_ = collector.Set(career.FieldResumeText, doc.Text)
}
