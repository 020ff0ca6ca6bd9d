package controller

import (
	"transcript-assistant-be/internal/dto"
	"transcript-assistant-be/internal/pkg/logger"
	"transcript-assistant-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

const defaultLogLimit = 50

type ILogController interface {
	RegisterRoutes(r fiber.Router)
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

// logController serves the developer console from the application log file.
type logController struct {
	logger logger.ILogger
}

func NewLogController(log logger.ILogger) ILogController {
	return &logController{logger: log}
}

func (c *logController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/logs")
	h.Get("", c.GetLogs)
	h.Get(":id", c.GetLogDetail)
}

func (c *logController) GetLogs(ctx *fiber.Ctx) error {
	var req dto.ListLogsRequest
	if err := parseQuery(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if req.Limit == 0 {
		req.Limit = defaultLogLimit
	}

	logs, err := c.logger.GetLogs(logger.LogFilter{Level: req.Level, Module: req.Module}, req.Limit, req.Offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func (c *logController) GetLogDetail(ctx *fiber.Ctx) error {
	// Log IDs are content hashes, not UUIDs.
	entry, err := c.logger.GetLogById(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("Log not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Log detail", entry))
}
