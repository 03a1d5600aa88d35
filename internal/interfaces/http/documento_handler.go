package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seguroplus/polizas-api/internal/application/documentos"
	"github.com/seguroplus/polizas-api/internal/application/dto"
)

// DocumentoHandler maneja la generación y consulta de documentos de una venta.
type DocumentoHandler struct {
	orquestador *documentos.Orchestrator
	consultaUC  *documentos.ConsultaUseCase
}

// NewDocumentoHandler construye el handler.
func NewDocumentoHandler(orquestador *documentos.Orchestrator, consultaUC *documentos.ConsultaUseCase) *DocumentoHandler {
	return &DocumentoHandler{orquestador: orquestador, consultaUC: consultaUC}
}

// Generate POST /api/ventas/:id/documentos/generar
func (h *DocumentoHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateRequest
	_ = c.BodyParser(&in)
	out, err := h.orquestador.Generate(c.Context(), c.Params("id"), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Regenerate POST /api/ventas/:id/documentos/regenerar
func (h *DocumentoHandler) Regenerate(c *fiber.Ctx) error {
	var in dto.GenerateRequest
	_ = c.BodyParser(&in)
	out, err := h.orquestador.Regenerate(c.Context(), c.Params("id"), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListBySale GET /api/ventas/:id/documentos
func (h *DocumentoHandler) ListBySale(c *fiber.Ctx) error {
	list, err := h.consultaUC.ListBySale(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
