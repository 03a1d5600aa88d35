package repository

import "github.com/seguroplus/polizas-api/internal/domain/entity"

// TemplateRepository define el puerto de persistencia para Template y sus adjuntos.
type TemplateRepository interface {
	Create(t *entity.Template) error
	// GetByID devuelve la plantilla con sus adjuntos cargados.
	GetByID(id string) (*entity.Template, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Template, error)
	Update(t *entity.Template) error
	Delete(id string) error
	AddAttachment(a *entity.TemplateAttachment) error
}

// SaleTemplateRepository asocia plantillas a ventas para la generación.
type SaleTemplateRepository interface {
	Create(st *entity.SaleTemplate) error
	// ListBySale devuelve las asociaciones en orden de creación (orden de generación).
	ListBySale(saleID string) ([]*entity.SaleTemplate, error)
	Delete(id string) error
}
