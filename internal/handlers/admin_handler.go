package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jiseti/jiseti-api/internal/dto"
	"github.com/jiseti/jiseti-api/internal/identity"
	"github.com/jiseti/jiseti-api/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListRecords(c *fiber.Ctx) error {
	auth, ok := identity.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	page, perPage := pageParams(c)
	records, pagination, err := h.adminService.ListRecords(auth, page, perPage)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"records":    records,
		"pagination": pagination,
	})
}

func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	auth, ok := identity.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid record ID")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	record, err := h.adminService.UpdateStatus(auth, recordID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Status updated successfully",
		"record":  record,
	})
}
