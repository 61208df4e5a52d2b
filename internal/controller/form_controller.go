package controller

import (
	"career-assistant-be/internal/dto"
	"career-assistant-be/internal/pkg/serverutils"
	"career-assistant-be/internal/service"
	"career-assistant-be/pkg/career"

	"github.com/gofiber/fiber/v2"
)

type IFormController interface {
	RegisterRoutes(r fiber.Router)
	Describe(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
}

type formController struct {
	service service.ISubmissionService
}

func NewFormController(service service.ISubmissionService) IFormController {
	return &formController{service: service}
}

func (c *formController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/forms/v1")
	h.Get("/:intent", c.Describe)
	h.Post("/:intent/submit", serverutils.JwtMiddleware, c.Submit)
}

func (c *formController) Describe(ctx *fiber.Ctx) error {
	intent, err := career.ParseIntent(ctx.Params("intent"))
	if err != nil {
		return err
	}

	res, err := c.service.Describe(intent)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Form definition", res))
}

func (c *formController) Submit(ctx *fiber.Ctx) error {
	intent, err := career.ParseIntent(ctx.Params("intent"))
	if err != nil {
		return err
	}

	var req dto.SubmitFormRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	result, err := c.service.Submit(ctx.UserContext(), serverutils.UserID(ctx), intent, req.Values)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Submission completed", dto.SubmitFormResponse{
		Intent:      result.Intent,
		Markup:      result.Markup,
		CompletedAt: result.CompletedAt,
	}))
}
