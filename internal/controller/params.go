package controller

import (
	"transcript-assistant-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func uuidParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, serverutils.NewBadRequestError("Invalid " + name)
	}
	return id, nil
}

func parseBody(ctx *fiber.Ctx, out any) error {
	if err := ctx.BodyParser(out); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}
	return nil
}

func parseQuery(ctx *fiber.Ctx, out any) error {
	if err := ctx.QueryParser(out); err != nil {
		return serverutils.NewBadRequestError("Invalid query parameters")
	}
	return nil
}
