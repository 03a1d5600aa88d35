package http

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/seguroplus/polizas-api/internal/application/dto"
	"github.com/seguroplus/polizas-api/internal/application/plantillas"
)

// PlantillaHandler maneja las peticiones HTTP de plantillas (admin/auditor).
type PlantillaHandler struct {
	uc *plantillas.TemplateUseCase
}

// NewPlantillaHandler construye el handler.
func NewPlantillaHandler(uc *plantillas.TemplateUseCase) *PlantillaHandler {
	return &PlantillaHandler{uc: uc}
}

// Create POST /api/plantillas
func (h *PlantillaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/plantillas/:id
func (h *PlantillaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/plantillas?limit=20&offset=0
func (h *PlantillaHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// AddAttachment POST /api/plantillas/:id/adjuntos (multipart, campo "file")
func (h *PlantillaHandler) AddAttachment(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "falta el archivo adjunto"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el adjunto"})
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el adjunto"})
	}
	out, err := h.uc.AddAttachment(c.Context(), GetCompanyID(c), c.Params("id"), fh.Filename, content, fh.Header.Get("Content-Type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AssignToSale POST /api/ventas/:id/plantillas/:templateId
func (h *PlantillaHandler) AssignToSale(c *fiber.Ctx) error {
	if err := h.uc.AssignToSale(GetCompanyID(c), c.Params("id"), c.Params("templateId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// UnassignFromSale DELETE /api/ventas/:id/plantillas/:templateId
func (h *PlantillaHandler) UnassignFromSale(c *fiber.Ctx) error {
	if err := h.uc.UnassignFromSale(GetCompanyID(c), c.Params("id"), c.Params("templateId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /api/plantillas/:id
func (h *PlantillaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
