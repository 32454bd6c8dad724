package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/jiseti/jiseti-api/internal/dto"
	"github.com/jiseti/jiseti-api/internal/services"
	"github.com/jiseti/jiseti-api/internal/validation"
)

// respondError maps service errors onto the HTTP taxonomy: 400 validation
// or lifecycle-locked, 401 authentication, 403 authorization, 404 missing,
// 409 duplicate identity, 500 everything else (without leaking internals).
func respondError(c *fiber.Ctx, err error) error {
	var ve *validation.Error
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: ve.Message, Field: ve.Field,
		})
	}

	switch {
	case errors.Is(err, services.ErrRecordLocked),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrBadImageType):
		return status(c, fiber.StatusBadRequest, err)
	case errors.Is(err, services.ErrInvalidCredentials):
		return status(c, fiber.StatusUnauthorized, err)
	case errors.Is(err, services.ErrNotRecordOwner),
		errors.Is(err, services.ErrAdminRequired):
		return status(c, fiber.StatusForbidden, err)
	case errors.Is(err, services.ErrRecordNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return status(c, fiber.StatusNotFound, err)
	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrUserHasRecords):
		return status(c, fiber.StatusConflict, err)
	}

	slog.Error("unexpected service error",
		"method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func status(c *fiber.Ctx, code int, err error) error {
	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}
