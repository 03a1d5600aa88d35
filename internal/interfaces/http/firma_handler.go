package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seguroplus/polizas-api/internal/application/documentos"
)

// FirmaHandler maneja el portal público de firma. Las rutas se autentican por
// el token del enlace, no por JWT.
type FirmaHandler struct {
	uc *documentos.FirmaUseCase
}

// NewFirmaHandler construye el handler.
func NewFirmaHandler(uc *documentos.FirmaUseCase) *FirmaHandler {
	return &FirmaHandler{uc: uc}
}

// Pending GET /api/firma/:token/documentos
func (h *FirmaHandler) Pending(c *fiber.Ctx) error {
	list, err := h.uc.PendingByToken(c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Sign POST /api/firma/:token/documentos/:documentId
func (h *FirmaHandler) Sign(c *fiber.Ctx) error {
	out, err := h.uc.Sign(c.Context(), c.Params("token"), c.Params("documentId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
