package controller

import (
	"career-assistant-be/internal/dto"
	"career-assistant-be/internal/pkg/serverutils"
	"career-assistant-be/internal/service"
	"career-assistant-be/pkg/career"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Restore(ctx *fiber.Ctx) error
	EnterName(ctx *fiber.Ctx) error
	State(ctx *fiber.Ctx) error
	UpdatePreferences(ctx *fiber.Ctx) error
	Activate(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Get("", c.Restore)
	h.Post("", c.EnterName)
	h.Get("/state", serverutils.JwtMiddleware, c.State)
	h.Put("/preferences", serverutils.JwtMiddleware, c.UpdatePreferences)
	h.Put("/active", serverutils.JwtMiddleware, c.Activate)
}

func (c *sessionController) Restore(ctx *fiber.Ctx) error {
	res, err := c.service.Restore(ctx.UserContext(), serverutils.BearerToken(ctx.Get("Authorization")))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session restored", res))
}

func (c *sessionController) EnterName(ctx *fiber.Ctx) error {
	var req dto.EnterNameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.EnterName(ctx.UserContext(), serverutils.BearerToken(ctx.Get("Authorization")), req.DisplayName)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Welcome", res))
}

func (c *sessionController) State(ctx *fiber.Ctx) error {
	res, err := c.service.State(ctx.UserContext(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session state", res))
}

func (c *sessionController) UpdatePreferences(ctx *fiber.Ctx) error {
	var req dto.PreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetDarkMode(ctx.UserContext(), serverutils.UserID(ctx), *req.DarkMode)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Preferences updated", res))
}

func (c *sessionController) Activate(ctx *fiber.Ctx) error {
	var req dto.ActivateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	intent, err := career.ParseIntent(req.Intent)
	if err != nil {
		return err
	}

	res, err := c.service.Activate(ctx.UserContext(), serverutils.UserID(ctx), intent)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Section opened", res))
}
