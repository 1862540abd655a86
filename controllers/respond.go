package controllers

import (
	"errors"

	"inventory-app/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps domain errors onto HTTP statuses. Everything the
// services return is typed, so unknown errors are server faults.
func respondError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case services.IsValidation(err):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrInsufficientStock):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidTransition):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrConcurrencyConflict):
		status = fiber.StatusConflict
	}
	return ctx.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
}

// actorFrom returns the authenticated actor id set by the auth middleware.
func actorFrom(ctx *fiber.Ctx) string {
	if username, ok := ctx.Locals("username").(string); ok {
		return username
	}
	return ""
}
