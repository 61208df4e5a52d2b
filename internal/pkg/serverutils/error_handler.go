package serverutils

import (
	"errors"

	"career-assistant-be/internal/session"
	"career-assistant-be/pkg/career"
	"career-assistant-be/pkg/extractor"

	"github.com/gofiber/fiber/v2"
)

var ErrUnauthorized = errors.New("unauthorized")

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	var formErr *career.ValidationError
	var reqErr *RequestValidationError
	var extractErr *extractor.Error
	var submitErr *session.SubmissionError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, career.ErrUnknownIntent),
		errors.Is(err, career.ErrUnknownField),
		errors.Is(err, session.ErrNameRequired),
		errors.Is(err, extractor.ErrUnsupportedUpload),
		errors.As(err, &formErr),
		errors.As(err, &reqErr):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, session.ErrSubmissionInFlight),
		errors.Is(err, session.ErrExtractionInProgress):
		return fiber.StatusConflict
	case errors.As(err, &extractErr):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &submitErr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		message := err.Error()
		if code == fiber.StatusInternalServerError {
			message = session.GenericFailure
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
