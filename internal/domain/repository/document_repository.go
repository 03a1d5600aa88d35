package repository

import "github.com/seguroplus/polizas-api/internal/domain/entity"

// DocumentRepository define el puerto de persistencia para documentos generados.
type DocumentRepository interface {
	Create(d *entity.Document) error
	GetByID(id string) (*entity.Document, error)
	ListBySale(saleID string) ([]*entity.Document, error)
	Update(d *entity.Document) error
	// DeleteRegenerable borra los documentos de la venta originados en plantillas
	// que NO están firmados ni marcados finales. Devuelve cuántos borró.
	DeleteRegenerable(saleID string) (int, error)
}

// SignatureLinkRepository define el puerto para los enlaces de firma.
type SignatureLinkRepository interface {
	Create(l *entity.SignatureLink) error
	GetByToken(token string) (*entity.SignatureLink, error)
	ListBySale(saleID string) ([]*entity.SignatureLink, error)
}
