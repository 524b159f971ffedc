package controller

import (
	"errors"

	"doc-templates-be/internal/pkg/serverutils"
	"doc-templates-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors to HTTP statuses.
func respondError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrTemplateNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, service.ErrUnknownView), errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrUnknownActivity):
		code = fiber.StatusBadRequest
	case errors.Is(err, serverutils.ErrInvalidIdentity):
		code = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrLedgerDisabled):
		code = fiber.StatusServiceUnavailable
	}
	return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
}

func badRequest(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, message))
}
