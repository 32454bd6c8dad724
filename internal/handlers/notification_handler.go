package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jiseti/jiseti-api/internal/identity"
	"github.com/jiseti/jiseti-api/internal/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	auth, ok := identity.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	page, perPage := pageParams(c)
	notifications, pagination, err := h.notificationService.List(auth, page, perPage)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"pagination":    pagination,
	})
}
