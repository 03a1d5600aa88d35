package ventas

import (
	"time"

	"github.com/google/uuid"

	"github.com/seguroplus/polizas-api/internal/application/dto"
	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
	"github.com/seguroplus/polizas-api/internal/domain/salud"
	"github.com/seguroplus/polizas-api/internal/domain/workflow"
)

// BeneficiaryUseCase gestión de adherentes de una venta: alta y baja por el
// vendedor mientras la venta sea editable; declaración de salud del
// declarante hasta que los documentos se despachan para firma.
type BeneficiaryUseCase struct {
	saleRepo        repository.SaleRepository
	beneficiaryRepo repository.BeneficiaryRepository
}

// NewBeneficiaryUseCase construye el caso de uso.
func NewBeneficiaryUseCase(saleRepo repository.SaleRepository, beneficiaryRepo repository.BeneficiaryRepository) *BeneficiaryUseCase {
	return &BeneficiaryUseCase{saleRepo: saleRepo, beneficiaryRepo: beneficiaryRepo}
}

// Add agrega un adherente a una venta editable.
func (uc *BeneficiaryUseCase) Add(saleID string, actor workflow.Actor, in dto.BeneficiaryRequest) (*dto.BeneficiaryResponse, error) {
	sale, err := uc.editableFor(saleID, actor)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || in.IdentityNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	b := &entity.Beneficiary{
		ID:                uuid.New().String(),
		SaleID:            sale.ID,
		Name:              in.Name,
		Relationship:      in.Relationship,
		IdentityNumber:    in.IdentityNumber,
		IsPrimary:         in.IsPrimary,
		RequiresSignature: in.RequiresSignature,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.beneficiaryRepo.Create(b); err != nil {
		return nil, err
	}
	return toBeneficiaryResponse(b), nil
}

// Remove elimina un adherente de una venta editable.
func (uc *BeneficiaryUseCase) Remove(saleID, beneficiaryID string, actor workflow.Actor) error {
	if _, err := uc.editableFor(saleID, actor); err != nil {
		return err
	}
	b, err := uc.beneficiaryRepo.GetByID(beneficiaryID)
	if err != nil || b == nil {
		return domain.ErrNotFound
	}
	if b.SaleID != saleID {
		return domain.ErrForbidden
	}
	return uc.beneficiaryRepo.Delete(beneficiaryID)
}

// List devuelve los adherentes de la venta, titular primero.
func (uc *BeneficiaryUseCase) List(saleID string) ([]*dto.BeneficiaryResponse, error) {
	list, err := uc.beneficiaryRepo.ListBySale(saleID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BeneficiaryResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBeneficiaryResponse(b))
	}
	return out, nil
}

// DeclareHealth registra la declaración jurada estructurada del adherente:
// la codifica al texto delimitado y actualiza el resumen de preexistencias.
// Permitida hasta que la venta pasa a enviado (los documentos despachados
// interpolaron la declaración vigente).
func (uc *BeneficiaryUseCase) DeclareHealth(saleID, beneficiaryID string, in dto.HealthDeclarationRequest) (*dto.BeneficiaryResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	switch sale.Status {
	case entity.SaleStatusEnviado, entity.SaleStatusFirmado, entity.SaleStatusCompletado, entity.SaleStatusCancelado:
		return nil, domain.ErrConflict
	}
	b, err := uc.beneficiaryRepo.GetByID(beneficiaryID)
	if err != nil || b == nil {
		return nil, domain.ErrNotFound
	}
	if b.SaleID != saleID {
		return nil, domain.ErrForbidden
	}

	d := salud.Vacia()
	for _, a := range in.Answers {
		idx := a.Question - 1
		if idx < 0 || idx >= len(salud.Preguntas) {
			continue // índice fuera de rango: se descarta, no se falla
		}
		d.Respuestas[salud.Preguntas[idx]] = salud.Respuesta{Si: a.Yes, Detalle: a.Detail, Contestada: true}
	}
	for h, v := range in.Habits {
		if v {
			d.Habitos[h] = true
		}
	}
	d.Peso = in.Weight
	d.Estatura = in.Height
	d.Menstruacion = in.Menstruation

	b.HealthDetail = salud.Encode(d)
	b.HasPreexisting = d.TieneCondiciones()
	b.UpdatedAt = time.Now()
	if err := uc.beneficiaryRepo.Update(b); err != nil {
		return nil, err
	}
	return toBeneficiaryResponse(b), nil
}

// editableFor venta editable y propiedad del vendedor (o rol elevado).
func (uc *BeneficiaryUseCase) editableFor(saleID string, actor workflow.Actor) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role == entity.RoleVendedor && sale.SalespersonID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if !sale.Editable() {
		return nil, domain.ErrSaleNotEditable
	}
	return sale, nil
}

func toBeneficiaryResponse(b *entity.Beneficiary) *dto.BeneficiaryResponse {
	return &dto.BeneficiaryResponse{
		ID:                b.ID,
		SaleID:            b.SaleID,
		Name:              b.Name,
		Relationship:      b.Relationship,
		IdentityNumber:    b.IdentityNumber,
		IsPrimary:         b.IsPrimary,
		RequiresSignature: b.RequiresSignature,
		HasPreexisting:    b.HasPreexisting,
		CreatedAt:         b.CreatedAt,
	}
}
