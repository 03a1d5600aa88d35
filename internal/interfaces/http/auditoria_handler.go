package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seguroplus/polizas-api/internal/application/auditoria"
	"github.com/seguroplus/polizas-api/internal/application/dto"
)

// AuditoriaHandler maneja las peticiones HTTP de auditoría (auditor/admin,
// salvo responder solicitudes, que es del vendedor).
type AuditoriaHandler struct {
	uc *auditoria.AuditUseCase
}

// NewAuditoriaHandler construye el handler.
func NewAuditoriaHandler(uc *auditoria.AuditUseCase) *AuditoriaHandler {
	return &AuditoriaHandler{uc: uc}
}

// Take POST /api/auditoria/:id/tomar
func (h *AuditoriaHandler) Take(c *fiber.Ctx) error {
	out, err := h.uc.Take(c.Context(), c.Params("id"), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve POST /api/auditoria/:id/aprobar
func (h *AuditoriaHandler) Approve(c *fiber.Ctx) error {
	var in dto.AuditDecisionRequest
	_ = c.BodyParser(&in)
	out, err := h.uc.Approve(c.Context(), c.Params("id"), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject POST /api/auditoria/:id/rechazar
func (h *AuditoriaHandler) Reject(c *fiber.Ctx) error {
	var in dto.AuditDecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Reject(c.Context(), c.Params("id"), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RequestInfo POST /api/auditoria/:id/solicitar-info
func (h *AuditoriaHandler) RequestInfo(c *fiber.Ctx) error {
	var in dto.AuditDecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RequestInfo(c.Context(), c.Params("id"), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInfoRequests GET /api/auditoria/:id/solicitudes
func (h *AuditoriaHandler) ListInfoRequests(c *fiber.Ctx) error {
	list, err := h.uc.ListInfoRequests(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// RespondInfo POST /api/solicitudes/:id/responder (vendedor)
func (h *AuditoriaHandler) RespondInfo(c *fiber.Ctx) error {
	var in dto.RespondInfoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RespondInfo(c.Params("id"), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete POST /api/auditoria/:id/completar
func (h *AuditoriaHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.Params("id"), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
