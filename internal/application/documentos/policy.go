package documentos

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/seguroplus/polizas-api/internal/application/ports"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
)

// DefaultPolicy política de transición por defecto para el despacho a firma:
// la empresa debe estar activa y la venta tener un total positivo. Se
// consulta una sola vez en la frontera generación → enviado.
type DefaultPolicy struct {
	saleRepo    repository.SaleRepository
	companyRepo repository.CompanyRepository
}

var _ ports.TransitionPolicy = (*DefaultPolicy)(nil)

// NewDefaultPolicy construye la política.
func NewDefaultPolicy(saleRepo repository.SaleRepository, companyRepo repository.CompanyRepository) *DefaultPolicy {
	return &DefaultPolicy{saleRepo: saleRepo, companyRepo: companyRepo}
}

// Check evalúa la venta contra las reglas y devuelve las razones de denegación.
func (p *DefaultPolicy) Check(ctx context.Context, saleID, targetStatus, actorRole string) (ports.PolicyCheck, error) {
	sale, err := p.saleRepo.GetByID(saleID)
	if err != nil {
		return ports.PolicyCheck{}, err
	}
	if sale == nil {
		return ports.PolicyCheck{Allowed: false, Reasons: []string{"venta inexistente"}}, nil
	}
	var reasons []string
	if !sale.Total.GreaterThan(decimal.Zero) {
		reasons = append(reasons, "el total de la venta debe ser mayor a cero")
	}
	company, err := p.companyRepo.GetByID(sale.CompanyID)
	if err != nil {
		return ports.PolicyCheck{}, err
	}
	if company == nil || company.Status != "active" {
		reasons = append(reasons, "la empresa no está activa")
	}
	return ports.PolicyCheck{Allowed: len(reasons) == 0, Reasons: reasons}, nil
}
