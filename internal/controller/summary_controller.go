package controller

import (
	"transcript-assistant-be/internal/dto"
	"transcript-assistant-be/internal/pkg/serverutils"
	"transcript-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISummaryController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	SaveEdit(ctx *fiber.Ctx) error
	Restore(ctx *fiber.Ctx) error
	DeleteVersion(ctx *fiber.Ctx) error
}

type summaryController struct {
	service service.ISummaryService
}

func NewSummaryController(service service.ISummaryService) ISummaryController {
	return &summaryController{service: service}
}

func (c *summaryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/summary/v1")
	h.Post(":documentId", c.Generate)
	h.Get(":documentId/versions", c.History)
	h.Post(":documentId/versions", c.SaveEdit)
	h.Post(":documentId/versions/:versionId/restore", c.Restore)
	h.Delete(":documentId/versions/:versionId", c.DeleteVersion)
}

func (c *summaryController) Generate(ctx *fiber.Ctx) error {
	documentId, err := uuidParam(ctx, "documentId")
	if err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.UserContext(), documentId)
	if err != nil {
		return err
	}
	if res == nil {
		return serverutils.NewNotFoundError("Document not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate summary", res))
}

func (c *summaryController) History(ctx *fiber.Ctx) error {
	documentId, err := uuidParam(ctx, "documentId")
	if err != nil {
		return err
	}

	res, err := c.service.History(ctx.UserContext(), documentId)
	if err != nil {
		return err
	}
	if res == nil {
		return serverutils.NewNotFoundError("No summary history for this document")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get summary history", res))
}

func (c *summaryController) SaveEdit(ctx *fiber.Ctx) error {
	documentId, err := uuidParam(ctx, "documentId")
	if err != nil {
		return err
	}

	var req dto.SaveSummaryEditRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.DocumentId = documentId

	res, err := c.service.SaveEdit(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return serverutils.NewNotFoundError("Document not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save summary", res))
}

func (c *summaryController) Restore(ctx *fiber.Ctx) error {
	documentId, err := uuidParam(ctx, "documentId")
	if err != nil {
		return err
	}

	res, err := c.service.Restore(ctx.UserContext(), documentId, ctx.Params("versionId"))
	if err != nil {
		return err
	}
	if res == nil {
		return serverutils.NewNotFoundError("Version not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success restore version", res))
}

func (c *summaryController) DeleteVersion(ctx *fiber.Ctx) error {
	documentId, err := uuidParam(ctx, "documentId")
	if err != nil {
		return err
	}

	deleted, err := c.service.DeleteVersion(ctx.UserContext(), documentId, ctx.Params("versionId"))
	if err != nil {
		return err
	}
	if !deleted {
		return serverutils.NewNotFoundError("Version not found")
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete version", nil))
}
