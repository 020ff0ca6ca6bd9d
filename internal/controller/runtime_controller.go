package controller

import (
	"transcript-assistant-be/internal/pkg/serverutils"
	"transcript-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRuntimeController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	ListModels(ctx *fiber.Ctx) error
}

type runtimeController struct {
	service service.IRuntimeService
}

func NewRuntimeController(service service.IRuntimeService) IRuntimeController {
	return &runtimeController{service: service}
}

func (c *runtimeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/runtime/v1")
	h.Get("health", c.Health)
	h.Get("models", c.ListModels)
}

// Health answers 200 either way; the payload says whether the runtime is up.
func (c *runtimeController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success check runtime", c.service.Health(ctx.UserContext())))
}

func (c *runtimeController) ListModels(ctx *fiber.Ctx) error {
	res, err := c.service.ListModels(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list models", res))
}
