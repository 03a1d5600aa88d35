package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrTransitionDenied      = errors.New("transición de estado no permitida")
	ErrSaleNotEditable       = errors.New("la venta no es editable en su estado actual")
	ErrNotesRequired         = errors.New("las notas de auditoría son obligatorias")
	ErrGenerationInProgress  = errors.New("ya hay una generación de documentos en curso para la venta")
	ErrPolicyDenied          = errors.New("la política de transición rechazó la operación")
	ErrDocumentAlreadySigned = errors.New("el documento ya fue firmado")
)
