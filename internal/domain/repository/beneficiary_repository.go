package repository

import "github.com/seguroplus/polizas-api/internal/domain/entity"

// BeneficiaryRepository define el puerto de persistencia para Beneficiary.
type BeneficiaryRepository interface {
	Create(b *entity.Beneficiary) error
	GetByID(id string) (*entity.Beneficiary, error)
	// ListBySale devuelve los adherentes de la venta, titular primero.
	ListBySale(saleID string) ([]*entity.Beneficiary, error)
	Update(b *entity.Beneficiary) error
	Delete(id string) error
}
