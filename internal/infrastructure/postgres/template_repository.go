package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

// TemplateRepo implementación de TemplateRepository (usable con pool o tx).
type TemplateRepo struct {
	q Querier
}

// NewTemplateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

// Create persiste una plantilla nueva (sin adjuntos; usar AddAttachment).
func (r *TemplateRepo) Create(t *entity.Template) error {
	query := `
		INSERT INTO templates (id, company_id, name, document_type, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.CompanyID, t.Name, t.DocumentType, t.Body, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

// GetByID devuelve la plantilla con sus adjuntos cargados.
func (r *TemplateRepo) GetByID(id string) (*entity.Template, error) {
	query := `
		SELECT id, company_id, name, document_type, body, created_at, updated_at
		FROM templates WHERE id = $1`
	var t entity.Template
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.DocumentType, &t.Body, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	attachments, err := r.listAttachments(id)
	if err != nil {
		return nil, err
	}
	t.Attachments = attachments
	return &t, nil
}

// ListByCompany lista plantillas de la empresa con paginación (sin adjuntos).
func (r *TemplateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Template, error) {
	query := `
		SELECT id, company_id, name, document_type, body, created_at, updated_at
		FROM templates WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.Template
	for rows.Next() {
		var t entity.Template
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.DocumentType, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza nombre, clasificación y cuerpo de la plantilla.
func (r *TemplateRepo) Update(t *entity.Template) error {
	query := `
		UPDATE templates SET name = $2, document_type = $3, body = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Name, t.DocumentType, t.Body, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// Delete elimina una plantilla y sus adjuntos (ON DELETE CASCADE).
func (r *TemplateRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// AddAttachment asocia un archivo subido a la plantilla.
func (r *TemplateRepo) AddAttachment(a *entity.TemplateAttachment) error {
	query := `
		INSERT INTO template_attachments (id, template_id, file_name, file_path, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.TemplateID, a.FileName, a.FilePath, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert template attachment: %w", err)
	}
	return nil
}

func (r *TemplateRepo) listAttachments(templateID string) ([]entity.TemplateAttachment, error) {
	query := `
		SELECT id, template_id, file_name, file_path, created_at
		FROM template_attachments WHERE template_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template attachments: %w", err)
	}
	defer rows.Close()
	var list []entity.TemplateAttachment
	for rows.Next() {
		var a entity.TemplateAttachment
		if err := rows.Scan(&a.ID, &a.TemplateID, &a.FileName, &a.FilePath, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan template attachment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
