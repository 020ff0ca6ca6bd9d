package controller

import (
	"transcript-assistant-be/internal/pkg/serverutils"
	"transcript-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMaintenanceController interface {
	RegisterRoutes(r fiber.Router)
	Cleanup(ctx *fiber.Ctx) error
}

type maintenanceController struct {
	service service.IMaintenanceService
}

func NewMaintenanceController(service service.IMaintenanceService) IMaintenanceController {
	return &maintenanceController{service: service}
}

func (c *maintenanceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/maintenance/v1")
	h.Post("cleanup", c.Cleanup)
}

func (c *maintenanceController) Cleanup(ctx *fiber.Ctx) error {
	res, err := c.service.Cleanup(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cleanup", res))
}
