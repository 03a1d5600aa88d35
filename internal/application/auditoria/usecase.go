package auditoria

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seguroplus/polizas-api/internal/application/dto"
	"github.com/seguroplus/polizas-api/internal/application/ports"
	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
	"github.com/seguroplus/polizas-api/internal/domain/workflow"
)

// AuditUseCase veredictos del auditor sobre ventas enviadas: tomar, aprobar,
// rechazar y solicitar información. Rechazo y solicitud de información
// comparten el estado subyacente (`rechazado`) pero nunca se confunden en el
// historial: difieren en audit_status y en la razón registrada.
type AuditUseCase struct {
	saleRepo       repository.SaleRepository
	transitionRepo repository.TransitionRepository
	infoRepo       repository.InfoRequestRepository
	notifier       ports.NotificationSink
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(
	saleRepo repository.SaleRepository,
	transitionRepo repository.TransitionRepository,
	infoRepo repository.InfoRequestRepository,
	notifier ports.NotificationSink,
) *AuditUseCase {
	return &AuditUseCase{
		saleRepo:       saleRepo,
		transitionRepo: transitionRepo,
		infoRepo:       infoRepo,
		notifier:       notifier,
	}
}

// Take asigna la venta pendiente al auditor (pendiente → en_auditoria).
func (uc *AuditUseCase) Take(ctx context.Context, saleID string, actor workflow.Actor) (*dto.SaleResponse, error) {
	sale, err := uc.load(saleID)
	if err != nil {
		return nil, err
	}
	rec, err := workflow.Apply(sale, entity.SaleStatusAuditoria, actor, "venta tomada para auditoría", nil)
	if err != nil {
		return nil, err
	}
	sale.AuditorID = actor.ID
	if err := uc.persist(sale, rec); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Approve aprueba la venta: fija status y audit_status, la fecha de inicio de
// contrato al primer día del mes de aprobación, agrega el registro de
// historial y notifica al vendedor. Re-aprobar una venta ya aprobada solo
// sobreescribe los metadatos de auditoría; la generación de documentos es un
// paso separado y explícito.
func (uc *AuditUseCase) Approve(ctx context.Context, saleID string, actor workflow.Actor, in dto.AuditDecisionRequest) (*dto.SaleResponse, error) {
	sale, err := uc.load(saleID)
	if err != nil {
		return nil, err
	}

	if sale.Status == entity.SaleStatusAprobado {
		// Re-aprobación: sin transición ni regeneración, solo metadatos.
		sale.AuditNotes = in.Notes
		sale.AuditorID = actor.ID
		sale.UpdatedAt = time.Now()
		if err := uc.saleRepo.Update(sale); err != nil {
			return nil, err
		}
		return toSaleResponse(sale), nil
	}

	rec, err := workflow.Apply(sale, entity.SaleStatusAprobado, actor, "auditoría aprobada", map[string]string{"notas": in.Notes})
	if err != nil {
		return nil, err
	}
	inicio := workflow.InicioContrato(time.Now())
	sale.AuditStatus = entity.AuditAprobado
	sale.AuditNotes = in.Notes
	sale.AuditorID = actor.ID
	sale.ContractStartDate = &inicio
	if err := uc.persist(sale, rec); err != nil {
		return nil, err
	}

	_ = uc.notifier.Notify(ctx, ports.Notification{
		UserID:   sale.SalespersonID,
		Title:    "Venta aprobada",
		Body:     "La auditoría aprobó la venta. Ya puede generarse la documentación.",
		Category: entity.NotifAuditoria,
		DeepLink: "/ventas/" + sale.ID,
	})
	return toSaleResponse(sale), nil
}

// Reject rechaza la venta y la devuelve al vendedor para corrección.
// Las notas son obligatorias y se validan antes de tocar el store.
func (uc *AuditUseCase) Reject(ctx context.Context, saleID string, actor workflow.Actor, in dto.AuditDecisionRequest) (*dto.SaleResponse, error) {
	if strings.TrimSpace(in.Notes) == "" {
		return nil, domain.ErrNotesRequired
	}
	sale, err := uc.load(saleID)
	if err != nil {
		return nil, err
	}
	rec, err := workflow.Apply(sale, entity.SaleStatusRechazado, actor, "auditoría rechazada: "+in.Notes, nil)
	if err != nil {
		return nil, err
	}
	sale.AuditStatus = entity.AuditRechazado
	sale.AuditNotes = in.Notes
	sale.AuditorID = actor.ID
	if err := uc.persist(sale, rec); err != nil {
		return nil, err
	}

	_ = uc.notifier.Notify(ctx, ports.Notification{
		UserID:   sale.SalespersonID,
		Title:    "Venta rechazada",
		Body:     in.Notes,
		Category: entity.NotifAuditoria,
		DeepLink: "/ventas/" + sale.ID,
	})
	return toSaleResponse(sale), nil
}

// RequestInfo pide más datos al vendedor: mismo estado subyacente que el
// rechazo, pero con audit_status propio, una solicitud con ciclo de respuesta
// y razón distinta en el historial. Mensaje obligatorio.
func (uc *AuditUseCase) RequestInfo(ctx context.Context, saleID string, actor workflow.Actor, in dto.AuditDecisionRequest) (*dto.InfoRequestResponse, error) {
	if strings.TrimSpace(in.Notes) == "" {
		return nil, domain.ErrNotesRequired
	}
	sale, err := uc.load(saleID)
	if err != nil {
		return nil, err
	}
	rec, err := workflow.Apply(sale, entity.SaleStatusRechazado, actor, "información solicitada: "+in.Notes, nil)
	if err != nil {
		return nil, err
	}
	sale.AuditStatus = entity.AuditInfoSolicitada
	sale.AuditNotes = in.Notes
	sale.AuditorID = actor.ID
	if err := uc.persist(sale, rec); err != nil {
		return nil, err
	}

	ir := &entity.InfoRequest{
		ID:        uuid.New().String(),
		SaleID:    sale.ID,
		AuditorID: actor.ID,
		Message:   in.Notes,
		Status:    entity.InfoRequestPendiente,
		CreatedAt: time.Now(),
	}
	if err := uc.infoRepo.Create(ir); err != nil {
		return nil, err
	}

	_ = uc.notifier.Notify(ctx, ports.Notification{
		UserID:   sale.SalespersonID,
		Title:    "Información solicitada",
		Body:     in.Notes,
		Category: entity.NotifAuditoria,
		DeepLink: "/ventas/" + sale.ID,
	})
	return toInfoResponse(ir), nil
}

// RespondInfo registra la respuesta del vendedor a una solicitud pendiente.
func (uc *AuditUseCase) RespondInfo(infoRequestID string, actor workflow.Actor, in dto.RespondInfoRequest) (*dto.InfoRequestResponse, error) {
	if strings.TrimSpace(in.Response) == "" {
		return nil, domain.ErrInvalidInput
	}
	ir, err := uc.infoRepo.GetByID(infoRequestID)
	if err != nil || ir == nil {
		return nil, domain.ErrNotFound
	}
	if ir.Status != entity.InfoRequestPendiente {
		return nil, domain.ErrConflict
	}
	sale, err := uc.load(ir.SaleID)
	if err != nil {
		return nil, err
	}
	if actor.Role == entity.RoleVendedor && sale.SalespersonID != actor.ID {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	ir.Response = in.Response
	ir.Status = entity.InfoRequestRespondida
	ir.RespondedAt = &now
	if err := uc.infoRepo.Update(ir); err != nil {
		return nil, err
	}
	return toInfoResponse(ir), nil
}

// ListInfoRequests solicitudes de información de una venta.
func (uc *AuditUseCase) ListInfoRequests(saleID string) ([]*dto.InfoRequestResponse, error) {
	list, err := uc.infoRepo.ListBySale(saleID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InfoRequestResponse, 0, len(list))
	for _, ir := range list {
		out = append(out, toInfoResponse(ir))
	}
	return out, nil
}

// Complete cierra una venta firmada (firmado → completado).
func (uc *AuditUseCase) Complete(saleID string, actor workflow.Actor) (*dto.SaleResponse, error) {
	sale, err := uc.load(saleID)
	if err != nil {
		return nil, err
	}
	rec, err := workflow.Apply(sale, entity.SaleStatusCompletado, actor, "venta completada", nil)
	if err != nil {
		return nil, err
	}
	if err := uc.persist(sale, rec); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

func (uc *AuditUseCase) load(saleID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// persist guarda la venta mutada y agrega el registro de historial.
// El orden importa: primero el estado actual, luego el historial; si el
// append falla el estado ya quedó aplicado y el fallo sube al caller.
func (uc *AuditUseCase) persist(sale *entity.Sale, rec *entity.StatusTransition) error {
	if err := uc.saleRepo.Update(sale); err != nil {
		return err
	}
	return uc.transitionRepo.Append(rec)
}

func toInfoResponse(ir *entity.InfoRequest) *dto.InfoRequestResponse {
	return &dto.InfoRequestResponse{
		ID:          ir.ID,
		SaleID:      ir.SaleID,
		AuditorID:   ir.AuditorID,
		Message:     ir.Message,
		Response:    ir.Response,
		Status:      ir.Status,
		RespondedAt: ir.RespondedAt,
		CreatedAt:   ir.CreatedAt,
	}
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
