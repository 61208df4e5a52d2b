package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"career-assistant-be/internal/session"
	"career-assistant-be/pkg/career"
	"career-assistant-be/pkg/extractor"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown intent", fmt.Errorf("parse: %w", career.ErrUnknownIntent), fiber.StatusBadRequest},
		{"missing fields", &career.ValidationError{Intent: career.IntentExplore, Missing: []string{"hobbies"}}, fiber.StatusBadRequest},
		{"bad request body", &RequestValidationError{Fields: map[string]string{"Name": "required"}}, fiber.StatusBadRequest},
		{"in flight", session.ErrSubmissionInFlight, fiber.StatusConflict},
		{"extraction running", session.ErrExtractionInProgress, fiber.StatusConflict},
		{"extraction failed", &extractor.Error{Format: extractor.FormatPDF, Stage: "open", Err: errors.New("x")}, fiber.StatusUnprocessableEntity},
		{"unsupported upload", fmt.Errorf("%w: cv.doc", extractor.ErrUnsupportedUpload), fiber.StatusBadRequest},
		{"completion failed", &session.SubmissionError{Intent: career.IntentResume, Message: "API request failed: Bad Gateway"}, fiber.StatusBadGateway},
		{"unauthorized", fmt.Errorf("%w: missing token", ErrUnauthorized), fiber.StatusUnauthorized},
		{"fiber error", fiber.NewError(fiber.StatusRequestEntityTooLarge, "too big"), fiber.StatusRequestEntityTooLarge},
		{"anything else", errors.New("db down"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/conflict", func(ctx *fiber.Ctx) error { return session.ErrSubmissionInFlight })
	app.Get("/boom", func(ctx *fiber.Ctx) error { return errors.New("pq: connection refused") })
	app.Get("/ok", func(ctx *fiber.Ctx) error { return ctx.JSON(SuccessResponse("fine", 1)) })

	t.Run("domain error keeps its message", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/conflict", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

		body := decode(t, resp.Body)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, session.ErrSubmissionInFlight.Error(), body["message"])
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, session.GenericFailure, decode(t, resp.Body)["message"])
	})

	t.Run("success passes through", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, decode(t, resp.Body)["success"])
	})
}

func decode(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&out))
	return out
}
