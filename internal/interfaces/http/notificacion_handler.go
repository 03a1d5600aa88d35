package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/seguroplus/polizas-api/internal/application/notificaciones"
)

// NotificacionHandler maneja la bandeja de notificaciones in-app.
type NotificacionHandler struct {
	uc *notificaciones.UseCase
}

// NewNotificacionHandler construye el handler.
func NewNotificacionHandler(uc *notificaciones.UseCase) *NotificacionHandler {
	return &NotificacionHandler{uc: uc}
}

// List GET /api/notificaciones?limit=20&offset=0
func (h *NotificacionHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(GetUserID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// MarkRead POST /api/notificaciones/:id/leer
func (h *NotificacionHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
