package documentos

import (
	"context"
	"time"

	"github.com/seguroplus/polizas-api/internal/application/dto"
	"github.com/seguroplus/polizas-api/internal/application/ports"
	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
	"github.com/seguroplus/polizas-api/internal/domain/workflow"
)

// FirmaUseCase acciones del firmante: consultar sus documentos pendientes vía
// el token del enlace y firmarlos. Cuando el último documento con firma
// requerida queda firmado, la venta pasa de enviado a firmado.
type FirmaUseCase struct {
	saleRepo       repository.SaleRepository
	documentRepo   repository.DocumentRepository
	linkRepo       repository.SignatureLinkRepository
	transitionRepo repository.TransitionRepository
	notifier       ports.NotificationSink
}

// NewFirmaUseCase construye el caso de uso.
func NewFirmaUseCase(
	saleRepo repository.SaleRepository,
	documentRepo repository.DocumentRepository,
	linkRepo repository.SignatureLinkRepository,
	transitionRepo repository.TransitionRepository,
	notifier ports.NotificationSink,
) *FirmaUseCase {
	return &FirmaUseCase{
		saleRepo:       saleRepo,
		documentRepo:   documentRepo,
		linkRepo:       linkRepo,
		transitionRepo: transitionRepo,
		notifier:       notifier,
	}
}

// PendingByToken devuelve los documentos firmables del firmante dueño del token.
func (uc *FirmaUseCase) PendingByToken(token string) ([]*dto.DocumentResponse, error) {
	link, err := uc.validLink(token)
	if err != nil {
		return nil, err
	}
	docs, err := uc.documentRepo.ListBySale(link.SaleID)
	if err != nil {
		return nil, err
	}
	var out []*dto.DocumentResponse
	for _, d := range docs {
		if !d.RequiresSignature || d.BeneficiaryID != link.BeneficiaryID {
			continue
		}
		out = append(out, toDocumentResponse(d, ""))
	}
	return out, nil
}

// Sign firma un documento a través del enlace del firmante. El token debe
// corresponder al adherente del documento (el titular firma los documentos
// compartidos). Un documento ya firmado no se firma dos veces.
func (uc *FirmaUseCase) Sign(ctx context.Context, token, documentID string) (*dto.DocumentResponse, error) {
	link, err := uc.validLink(token)
	if err != nil {
		return nil, err
	}
	doc, err := uc.documentRepo.GetByID(documentID)
	if err != nil || doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.SaleID != link.SaleID || doc.BeneficiaryID != link.BeneficiaryID {
		return nil, domain.ErrForbidden
	}
	if !doc.RequiresSignature {
		return nil, domain.ErrInvalidInput
	}
	if doc.Status == entity.DocumentFirmado {
		return nil, domain.ErrDocumentAlreadySigned
	}

	now := time.Now()
	doc.Status = entity.DocumentFirmado
	doc.SignedAt = &now
	doc.UpdatedAt = now
	if err := uc.documentRepo.Update(doc); err != nil {
		return nil, err
	}

	if err := uc.completarSiCorresponde(ctx, link.SaleID); err != nil {
		// El documento ya quedó firmado: el éxito parcial se reporta, no se oculta.
		return toDocumentResponse(doc, ""), err
	}
	return toDocumentResponse(doc, ""), nil
}

// completarSiCorresponde mueve la venta a firmado cuando no queda ningún
// documento con firma requerida pendiente.
func (uc *FirmaUseCase) completarSiCorresponde(ctx context.Context, saleID string) error {
	docs, err := uc.documentRepo.ListBySale(saleID)
	if err != nil {
		return err
	}
	for _, d := range docs {
		if d.RequiresSignature && d.Status != entity.DocumentFirmado {
			return nil // aún faltan firmas
		}
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return domain.ErrNotFound
	}
	if sale.Status != entity.SaleStatusEnviado {
		return nil
	}
	rec, err := workflow.Apply(sale, entity.SaleStatusFirmado,
		workflow.Actor{ID: "firma", Role: workflow.RoleSistema},
		"todas las firmas requeridas completas", nil)
	if err != nil {
		return err
	}
	if err := uc.saleRepo.Update(sale); err != nil {
		return err
	}
	if err := uc.transitionRepo.Append(rec); err != nil {
		return err
	}
	_ = uc.notifier.Notify(ctx, ports.Notification{
		UserID:   sale.SalespersonID,
		Title:    "Venta completamente firmada",
		Body:     "Todos los firmantes completaron sus documentos.",
		Category: entity.NotifFirma,
		DeepLink: "/ventas/" + saleID,
	})
	return nil
}

func (uc *FirmaUseCase) validLink(token string) (*entity.SignatureLink, error) {
	link, err := uc.linkRepo.GetByToken(token)
	if err != nil || link == nil {
		return nil, domain.ErrNotFound
	}
	if time.Now().After(link.ExpiresAt) {
		return nil, domain.ErrUnauthorized
	}
	return link, nil
}
