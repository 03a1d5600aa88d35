package documentos

import (
	"context"
	"time"

	"github.com/seguroplus/polizas-api/internal/application/dto"
	"github.com/seguroplus/polizas-api/internal/application/ports"
	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
)

// ConsultaUseCase lectura de documentos generados: listado por venta y URL
// firmada temporal para los que referencian un archivo del file store.
type ConsultaUseCase struct {
	saleRepo     repository.SaleRepository
	documentRepo repository.DocumentRepository
	fileStore    ports.FileStore
	urlTTL       time.Duration
}

// NewConsultaUseCase construye el caso de uso.
func NewConsultaUseCase(saleRepo repository.SaleRepository, documentRepo repository.DocumentRepository, fileStore ports.FileStore, urlTTL time.Duration) *ConsultaUseCase {
	return &ConsultaUseCase{saleRepo: saleRepo, documentRepo: documentRepo, fileStore: fileStore, urlTTL: urlTTL}
}

// ListBySale lista los documentos de la venta. Para los basados en archivo se
// emite una URL firmada; si la emisión falla, el documento se lista igual sin
// URL (éxito parcial visible, no silenciado).
func (uc *ConsultaUseCase) ListBySale(ctx context.Context, companyID, saleID string) ([]*dto.DocumentResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	docs, err := uc.documentRepo.ListBySale(saleID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		url := ""
		if d.FilePath != "" {
			if u, err := uc.fileStore.SignedURL(ctx, d.FilePath, uc.urlTTL); err == nil {
				url = u
			}
		}
		out = append(out, toDocumentResponse(d, url))
	}
	return out, nil
}

func toDocumentResponse(d *entity.Document, fileURL string) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:                d.ID,
		SaleID:            d.SaleID,
		TemplateID:        d.TemplateID,
		BeneficiaryID:     d.BeneficiaryID,
		Name:              d.Name,
		DocumentType:      d.DocumentType,
		Content:           d.Content,
		FileURL:           fileURL,
		RequiresSignature: d.RequiresSignature,
		IsFinal:           d.IsFinal,
		Status:            d.Status,
		SignedAt:          d.SignedAt,
		CreatedAt:         d.CreatedAt,
	}
}
