package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/seguroplus/polizas-api/internal/application/dto"
	"github.com/seguroplus/polizas-api/internal/application/ventas"
	"github.com/seguroplus/polizas-api/internal/domain/workflow"
)

// VentaHandler maneja las peticiones HTTP del ciclo de vida de ventas (vendedor).
type VentaHandler struct {
	ventaUC       *ventas.SaleUseCase
	beneficiarioUC *ventas.BeneficiaryUseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(ventaUC *ventas.SaleUseCase, beneficiarioUC *ventas.BeneficiaryUseCase) *VentaHandler {
	return &VentaHandler{ventaUC: ventaUC, beneficiarioUC: beneficiarioUC}
}

func actorFrom(c *fiber.Ctx) workflow.Actor {
	return workflow.Actor{ID: GetUserID(c), Role: GetRole(c)}
}

// Create POST /api/ventas
func (h *VentaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ventaUC.Create(GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/ventas/:id
func (h *VentaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ventaUC.Update(c.Params("id"), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/ventas/:id
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ventaUC.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/ventas?status=pendiente&limit=20&offset=0
func (h *VentaHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.ventaUC.List(GetCompanyID(c), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// History GET /api/ventas/:id/historial
func (h *VentaHandler) History(c *fiber.Ctx) error {
	list, err := h.ventaUC.History(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Submit POST /api/ventas/:id/enviar
func (h *VentaHandler) Submit(c *fiber.Ctx) error {
	out, err := h.ventaUC.Submit(c.Params("id"), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel POST /api/ventas/:id/cancelar
func (h *VentaHandler) Cancel(c *fiber.Ctx) error {
	var in struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&in)
	if in.Reason == "" {
		in.Reason = "venta cancelada"
	}
	out, err := h.ventaUC.Cancel(c.Params("id"), actorFrom(c), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddBeneficiary POST /api/ventas/:id/adherentes
func (h *VentaHandler) AddBeneficiary(c *fiber.Ctx) error {
	var in dto.BeneficiaryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.beneficiarioUC.Add(c.Params("id"), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBeneficiaries GET /api/ventas/:id/adherentes
func (h *VentaHandler) ListBeneficiaries(c *fiber.Ctx) error {
	list, err := h.beneficiarioUC.List(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// RemoveBeneficiary DELETE /api/ventas/:id/adherentes/:beneficiaryId
func (h *VentaHandler) RemoveBeneficiary(c *fiber.Ctx) error {
	if err := h.beneficiarioUC.Remove(c.Params("id"), c.Params("beneficiaryId"), actorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeclareHealth PUT /api/ventas/:id/adherentes/:beneficiaryId/salud
func (h *VentaHandler) DeclareHealth(c *fiber.Ctx) error {
	var in dto.HealthDeclarationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.beneficiarioUC.DeclareHealth(c.Params("id"), c.Params("beneficiaryId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
