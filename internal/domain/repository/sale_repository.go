package repository

import "github.com/seguroplus/polizas-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListByCompany(companyID string, status string, limit, offset int) ([]*entity.Sale, error)
	ListBySalesperson(salespersonID string, limit, offset int) ([]*entity.Sale, error)
	Update(sale *entity.Sale) error
	// SetGenerationLock cambia el guard de generación en curso de forma condicional:
	// devuelve false si el guard ya estaba en el valor pedido (otro ciclo lo tomó).
	SetGenerationLock(saleID string, locked bool) (bool, error)
	Delete(id string) error
}
