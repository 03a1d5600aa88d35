package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/seguroplus/polizas-api/internal/application/dto"
	"github.com/seguroplus/polizas-api/internal/domain"
)

// respondError traduce los errores sentinela del dominio a respuestas HTTP.
// Los errores vienen envueltos con %w, por eso errors.Is y no comparación directa.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotesRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOTES_REQUIRED", Message: "las notas son obligatorias para esta decisión"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "enlace inválido o vencido"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrSaleNotEditable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_EDITABLE", Message: "la venta no es editable en su estado actual"})
	case errors.Is(err, domain.ErrTransitionDenied):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TRANSITION_DENIED", Message: err.Error()})
	case errors.Is(err, domain.ErrGenerationInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "GENERATION_IN_PROGRESS", Message: "hay una generación en curso para esta venta"})
	case errors.Is(err, domain.ErrPolicyDenied):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "POLICY_DENIED", Message: err.Error()})
	case errors.Is(err, domain.ErrDocumentAlreadySigned):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_SIGNED", Message: "el documento ya está firmado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
