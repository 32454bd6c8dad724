package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jiseti/jiseti-api/internal/dto"
	"github.com/jiseti/jiseti-api/internal/identity"
	"github.com/jiseti/jiseti-api/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Signup(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	auth, ok := identity.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	profile, err := h.authService.Profile(auth.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(profile)
}

func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	auth, ok := identity.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.DeleteAccount(auth.UserID, req.Password); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}
