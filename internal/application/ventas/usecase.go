package ventas

import (
	"time"

	"github.com/google/uuid"

	"github.com/seguroplus/polizas-api/internal/application/dto"
	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
	"github.com/seguroplus/polizas-api/internal/domain/workflow"
)

// SaleUseCase casos de uso del vendedor sobre la venta: alta en borrador,
// edición mientras sea editable, envío a auditoría y cancelación.
type SaleUseCase struct {
	saleRepo       repository.SaleRepository
	beneficiaryRepo repository.BeneficiaryRepository
	clientRepo     repository.ClientRepository
	planRepo       repository.PlanRepository
	transitionRepo repository.TransitionRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	saleRepo repository.SaleRepository,
	beneficiaryRepo repository.BeneficiaryRepository,
	clientRepo repository.ClientRepository,
	planRepo repository.PlanRepository,
	transitionRepo repository.TransitionRepository,
) *SaleUseCase {
	return &SaleUseCase{
		saleRepo:        saleRepo,
		beneficiaryRepo: beneficiaryRepo,
		clientRepo:      clientRepo,
		planRepo:        planRepo,
		transitionRepo:  transitionRepo,
	}
}

// Create crea una venta en borrador asignada al vendedor.
func (uc *SaleUseCase) Create(companyID, salespersonID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.ClientID == "" || in.PlanID == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	plan, err := uc.planRepo.GetByID(in.PlanID)
	if err != nil || plan == nil {
		return nil, domain.ErrNotFound
	}
	if plan.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		ClientID:      in.ClientID,
		PlanID:        in.PlanID,
		SalespersonID: salespersonID,
		Status:        entity.SaleStatusBorrador,
		Total:         in.Total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.saleRepo.Create(sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Update muta los campos de una venta editable. Solo el vendedor asignado
// (o admin) puede hacerlo; fuera de borrador/rechazado se deniega.
func (uc *SaleUseCase) Update(saleID string, actor workflow.Actor, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.ownedEditable(saleID, actor)
	if err != nil {
		return nil, err
	}
	if in.ClientID != "" {
		sale.ClientID = in.ClientID
	}
	if in.PlanID != "" {
		sale.PlanID = in.PlanID
	}
	if !in.Total.IsZero() {
		sale.Total = in.Total
	}
	sale.UpdatedAt = time.Now()
	if err := uc.saleRepo.Update(sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Submit envía la venta a auditoría (borrador o rechazado → pendiente).
// Requiere cliente, plan y un titular entre los adherentes.
func (uc *SaleUseCase) Submit(saleID string, actor workflow.Actor) (*dto.SaleResponse, error) {
	sale, err := uc.owned(saleID, actor)
	if err != nil {
		return nil, err
	}
	if sale.ClientID == "" || sale.PlanID == "" {
		return nil, domain.ErrInvalidInput
	}
	beneficiarios, err := uc.beneficiaryRepo.ListBySale(saleID)
	if err != nil {
		return nil, err
	}
	titular := false
	for _, b := range beneficiarios {
		if b.IsPrimary {
			titular = true
			break
		}
	}
	if !titular {
		return nil, domain.ErrInvalidInput
	}

	rec, err := workflow.Apply(sale, entity.SaleStatusPendiente, actor, "enviada a auditoría", nil)
	if err != nil {
		return nil, err
	}
	if err := uc.saleRepo.Update(sale); err != nil {
		return nil, err
	}
	if err := uc.transitionRepo.Append(rec); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Cancel aborta la venta (terminal).
func (uc *SaleUseCase) Cancel(saleID string, actor workflow.Actor, reason string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	// El vendedor solo cancela sus propias ventas; auditor/admin cualquiera.
	if actor.Role == entity.RoleVendedor && sale.SalespersonID != actor.ID {
		return nil, domain.ErrForbidden
	}
	rec, err := workflow.Apply(sale, entity.SaleStatusCancelado, actor, reason, nil)
	if err != nil {
		return nil, err
	}
	if err := uc.saleRepo.Update(sale); err != nil {
		return nil, err
	}
	if err := uc.transitionRepo.Append(rec); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// GetByID devuelve la venta si pertenece a la empresa.
func (uc *SaleUseCase) GetByID(companyID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toSaleResponse(sale), nil
}

// List lista ventas de la empresa, opcionalmente por estado.
func (uc *SaleUseCase) List(companyID, status string, limit, offset int) ([]*dto.SaleResponse, error) {
	list, err := uc.saleRepo.ListByCompany(companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// History devuelve el historial de transiciones de la venta.
func (uc *SaleUseCase) History(companyID, saleID string) ([]*dto.TransitionResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	recs, err := uc.transitionRepo.ListBySale(saleID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransitionResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, &dto.TransitionResponse{
			ID:             r.ID,
			PreviousStatus: r.PreviousStatus,
			NewStatus:      r.NewStatus,
			ActorID:        r.ActorID,
			ActorRole:      r.ActorRole,
			Reason:         r.Reason,
			Metadata:       r.Metadata,
			CreatedAt:      r.CreatedAt,
		})
	}
	return out, nil
}

// owned carga la venta y verifica que el actor pueda operar sobre ella.
func (uc *SaleUseCase) owned(saleID string, actor workflow.Actor) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role == entity.RoleVendedor && sale.SalespersonID != actor.ID {
		return nil, domain.ErrForbidden
	}
	return sale, nil
}

// ownedEditable además exige que la venta siga editable para el vendedor.
func (uc *SaleUseCase) ownedEditable(saleID string, actor workflow.Actor) (*entity.Sale, error) {
	sale, err := uc.owned(saleID, actor)
	if err != nil {
		return nil, err
	}
	if !sale.Editable() {
		return nil, domain.ErrSaleNotEditable
	}
	return sale, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:                s.ID,
		CompanyID:         s.CompanyID,
		ClientID:          s.ClientID,
		PlanID:            s.PlanID,
		SalespersonID:     s.SalespersonID,
		AuditorID:         s.AuditorID,
		Status:            s.Status,
		AuditStatus:       s.AuditStatus,
		AuditNotes:        s.AuditNotes,
		Total:             s.Total,
		ContractStartDate: s.ContractStartDate,
		ContractNumber:    s.ContractNumber,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
