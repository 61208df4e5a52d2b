package controller

import (
	"io"

	"career-assistant-be/internal/pkg/serverutils"
	"career-assistant-be/internal/service"
	"career-assistant-be/pkg/extractor"

	"github.com/gofiber/fiber/v2"
)

type IResumeController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type resumeController struct {
	service  service.IExtractionService
	maxBytes int64
}

func NewResumeController(service service.IExtractionService, maxBytes int64) IResumeController {
	return &resumeController{service: service, maxBytes: maxBytes}
}

func (c *resumeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/resume/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/upload", c.Upload)
}

func (c *resumeController) Upload(ctx *fiber.Ctx) error {
	header, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "A single file is required in field 'file'")
	}
	if c.maxBytes > 0 && header.Size > c.maxBytes {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "File is too large")
	}

	f, err := header.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	res, err := c.service.Upload(ctx.UserContext(), serverutils.UserID(ctx), extractor.File{
		Name:      header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Content:   content,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Resume processed", res))
}
