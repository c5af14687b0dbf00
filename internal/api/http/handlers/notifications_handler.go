package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sevenboard/board-api/internal/api/dto"
	"github.com/sevenboard/board-api/internal/auth"
	"github.com/sevenboard/board-api/internal/service"
	apperrors "github.com/sevenboard/board-api/pkg/util"
)

// NotificationsHandler serves the poll-driven alert endpoints.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notifService}
}

// List GET /api/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	sessionID, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	alerts, err := h.service.Derive(c.Context(), sessionID)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(alerts))
	for _, alert := range alerts {
		items = append(items, dto.FromNotification(alert))
	}
	return c.JSON(items)
}

// MarkRead POST /api/notifications/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	sessionID, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	switch {
	case req.All:
		if err := h.service.MarkAllRead(c.Context(), sessionID); err != nil {
			return err
		}
	case req.ID != "":
		if err := h.service.MarkRead(c.Context(), sessionID, req.ID); err != nil {
			return err
		}
	default:
		return apperrors.NewValidationError("id or all required", nil)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
