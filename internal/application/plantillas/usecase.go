package plantillas

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/seguroplus/polizas-api/internal/application/dto"
	"github.com/seguroplus/polizas-api/internal/application/ports"
	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
)

// TemplateUseCase gestión de plantillas de documentos: alta con cuerpo HTML o
// con adjuntos (exclusión que el orquestador respeta al generar), y asociación
// de plantillas a ventas.
type TemplateUseCase struct {
	templateRepo     repository.TemplateRepository
	saleTemplateRepo repository.SaleTemplateRepository
	saleRepo         repository.SaleRepository
	fileStore        ports.FileStore
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(
	templateRepo repository.TemplateRepository,
	saleTemplateRepo repository.SaleTemplateRepository,
	saleRepo repository.SaleRepository,
	fileStore ports.FileStore,
) *TemplateUseCase {
	return &TemplateUseCase{
		templateRepo:     templateRepo,
		saleTemplateRepo: saleTemplateRepo,
		saleRepo:         saleRepo,
		fileStore:        fileStore,
	}
}

// Create da de alta una plantilla. DocumentType vacío queda en la
// clasificación legada por nombre al momento de generar.
func (uc *TemplateUseCase) Create(companyID string, in dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.DocumentType {
	case "", entity.DocTypeContrato, entity.DocTypeDDJJ, entity.DocTypeAnexo:
	default:
		return nil, fmt.Errorf("%w: document_type desconocido", domain.ErrInvalidInput)
	}
	now := time.Now()
	t := &entity.Template{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		DocumentType: in.DocumentType,
		Body:         in.Body,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.templateRepo.Create(t); err != nil {
		return nil, err
	}
	return toTemplateResponse(t), nil
}

// GetByID devuelve la plantilla de la empresa, con adjuntos.
func (uc *TemplateUseCase) GetByID(companyID, templateID string) (*dto.TemplateResponse, error) {
	t, err := uc.ownedTemplate(companyID, templateID)
	if err != nil {
		return nil, err
	}
	return toTemplateResponse(t), nil
}

// List lista plantillas de la empresa.
func (uc *TemplateUseCase) List(companyID string, limit, offset int) ([]*dto.TemplateResponse, error) {
	list, err := uc.templateRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTemplateResponse(t))
	}
	return out, nil
}

// AddAttachment sube el archivo al file store y lo asocia a la plantilla.
// Una plantilla con adjuntos no debería llevar cuerpo (el orquestador emite
// contenido XOR adjuntos); se permite igual porque el cuerpo gana al generar.
func (uc *TemplateUseCase) AddAttachment(ctx context.Context, companyID, templateID, fileName string, content []byte, contentType string) (*dto.TemplateResponse, error) {
	if fileName == "" || len(content) == 0 {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.ownedTemplate(companyID, templateID)
	if err != nil {
		return nil, err
	}

	a := &entity.TemplateAttachment{
		ID:         uuid.New().String(),
		TemplateID: t.ID,
		FileName:   fileName,
		FilePath:   path.Join("plantillas", t.ID, fileName),
		CreatedAt:  time.Now(),
	}
	if err := uc.fileStore.Upload(ctx, a.FilePath, content, contentType); err != nil {
		return nil, fmt.Errorf("subir adjunto: %w", err)
	}
	if err := uc.templateRepo.AddAttachment(a); err != nil {
		return nil, err
	}

	t.Attachments = append(t.Attachments, *a)
	return toTemplateResponse(t), nil
}

// AssignToSale asocia la plantilla a la venta para la próxima generación.
func (uc *TemplateUseCase) AssignToSale(companyID, saleID, templateID string) error {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if _, err := uc.ownedTemplate(companyID, templateID); err != nil {
		return err
	}
	existentes, err := uc.saleTemplateRepo.ListBySale(saleID)
	if err != nil {
		return err
	}
	for _, st := range existentes {
		if st.TemplateID == templateID {
			return domain.ErrDuplicate
		}
	}
	return uc.saleTemplateRepo.Create(&entity.SaleTemplate{
		ID:         uuid.New().String(),
		SaleID:     saleID,
		TemplateID: templateID,
		CreatedAt:  time.Now(),
	})
}

// UnassignFromSale quita la asociación plantilla-venta.
func (uc *TemplateUseCase) UnassignFromSale(companyID, saleID, templateID string) error {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return domain.ErrForbidden
	}
	existentes, err := uc.saleTemplateRepo.ListBySale(saleID)
	if err != nil {
		return err
	}
	for _, st := range existentes {
		if st.TemplateID == templateID {
			return uc.saleTemplateRepo.Delete(st.ID)
		}
	}
	return domain.ErrNotFound
}

// Delete elimina la plantilla de la empresa.
func (uc *TemplateUseCase) Delete(companyID, templateID string) error {
	if _, err := uc.ownedTemplate(companyID, templateID); err != nil {
		return err
	}
	return uc.templateRepo.Delete(templateID)
}

func (uc *TemplateUseCase) ownedTemplate(companyID, templateID string) (*entity.Template, error) {
	t, err := uc.templateRepo.GetByID(templateID)
	if err != nil || t == nil {
		return nil, domain.ErrNotFound
	}
	if t.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

func toTemplateResponse(t *entity.Template) *dto.TemplateResponse {
	return &dto.TemplateResponse{
		ID:           t.ID,
		CompanyID:    t.CompanyID,
		Name:         t.Name,
		DocumentType: t.Type(),
		HasBody:      t.Body != "",
		Attachments:  len(t.Attachments),
		CreatedAt:    t.CreatedAt,
	}
}
