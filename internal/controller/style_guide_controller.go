package controller

import (
	"transcript-assistant-be/internal/dto"
	"transcript-assistant-be/internal/pkg/serverutils"
	"transcript-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStyleGuideController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
}

type styleGuideController struct {
	service service.IStyleGuideService
}

func NewStyleGuideController(service service.IStyleGuideService) IStyleGuideController {
	return &styleGuideController{service: service}
}

func (c *styleGuideController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/style-guide/v1")
	h.Get("", c.Get)
	h.Put("", c.Update)
	h.Post("analyze", c.Analyze)
}

func (c *styleGuideController) Get(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get style guide", res))
}

func (c *styleGuideController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateStyleGuideRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update style guide", res))
}

func (c *styleGuideController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeStyleRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Analyze(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze style", res))
}
