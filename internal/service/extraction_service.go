package service

import (
	"context"
	"fmt"

	"career-assistant-be/internal/dto"
	"career-assistant-be/internal/pkg/logger"
	"career-assistant-be/pkg/career"
	"career-assistant-be/pkg/events"
	"career-assistant-be/pkg/extractor"
)

// Extractor turns an uploaded file into plain text.
type Extractor interface {
	Extract(ctx context.Context, file extractor.File) (*extractor.Document, error)
}

type IExtractionService interface {
	Upload(ctx context.Context, userID string, file extractor.File) (*dto.UploadResponse, error)
}

type extractionService struct {
	sessions  SessionProvider
	extractor Extractor
	publisher IPublisherService
	logger    logger.ILogger
}

func NewExtractionService(
	sessions SessionProvider,
	ext Extractor,
	publisher IPublisherService,
	log logger.ILogger,
) IExtractionService {
	return &extractionService{
		sessions:  sessions,
		extractor: ext,
		publisher: publisher,
		logger:    log,
	}
}

// Upload extracts the resume text and stores it on the session. Only the most
// recently started upload may write the session; an older one still returns
// its text but is marked superseded.
func (s *extractionService) Upload(ctx context.Context, userID string, file extractor.File) (*dto.UploadResponse, error) {
	if !extractor.Accepts(file.Name) {
		return nil, fmt.Errorf("%w: %s", extractor.ErrUnsupportedUpload, file.Name)
	}

	state := s.sessions.Ensure(ctx, userID)
	if changed, _ := state.Activate(career.IntentResume); changed {
		emit(ctx, s.publisher, s.logger, events.TypeSectionActivated, userID, map[string]interface{}{
			"intent": career.IntentResume.String(),
		})
	}

	ticket := state.BeginExtraction()
	emit(ctx, s.publisher, s.logger, events.TypeExtractionStarted, userID, map[string]interface{}{
		"file_name": file.Name,
	})

	doc, err := s.extract(ctx, file)
	if err != nil {
		prefix := extractor.FailurePrefix(extractor.FormatOf(file.MediaType))
		message := fmt.Sprintf("%s: %s", prefix, err.Error())
		current := state.FailExtraction(ticket, message)

		s.logger.Error("EXTRACTION", "Extraction failed", map[string]interface{}{
			"user_id":   userID,
			"file_name": file.Name,
			"error":     err.Error(),
		})
		if current {
			emit(ctx, s.publisher, s.logger, events.TypeExtractionFinished, userID, map[string]interface{}{
				"file_name": file.Name,
				"error":     message,
			})
		}
		return nil, fmt.Errorf("%s: %w", prefix, err)
	}

	current := state.FinishExtraction(ticket, doc)
	if current {
		emit(ctx, s.publisher, s.logger, events.TypeExtractionFinished, userID, map[string]interface{}{
			"file_name": doc.FileName,
			"format":    string(doc.Format),
			"length":    len(doc.Text),
		})
	}

	return &dto.UploadResponse{
		FileName:   doc.FileName,
		Format:     doc.Format,
		Text:       doc.Text,
		Superseded: !current,
	}, nil
}

// extract converts a panic in a parser into an extraction error so the
// processing flag is always released.
func (s *extractionService) extract(ctx context.Context, file extractor.File) (doc *extractor.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &extractor.Error{
				Format: extractor.FormatOf(file.MediaType),
				Stage:  "panic",
				Err:    fmt.Errorf("%v", r),
			}
		}
	}()
	return s.extractor.Extract(ctx, file)
}
