package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, sale_id, template_id, beneficiary_id, name, document_type,
	content, file_path, requires_signature, is_final, from_template, status,
	signed_at, created_at, updated_at`

// Create persiste un documento generado.
func (r *DocumentRepo) Create(d *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.SaleID, nullable(d.TemplateID), nullable(d.BeneficiaryID), d.Name, d.DocumentType,
		d.Content, d.FilePath, d.RequiresSignature, d.IsFinal, d.FromTemplate, d.Status,
		d.SignedAt, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	d, err := scanDocument(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// ListBySale lista los documentos de la venta en orden de creación.
func (r *DocumentRepo) ListBySale(saleID string) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + `
		FROM documents WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update actualiza un documento (firma, estado).
func (r *DocumentRepo) Update(d *entity.Document) error {
	query := `
		UPDATE documents SET name = $2, content = $3, file_path = $4, status = $5,
			signed_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Name, d.Content, d.FilePath, d.Status, d.SignedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// DeleteRegenerable borra los documentos de la venta originados en plantillas
// que no están firmados ni marcados finales. Los firmados y los finales
// sobreviven a la regeneración por contrato.
func (r *DocumentRepo) DeleteRegenerable(saleID string) (int, error) {
	query := `
		DELETE FROM documents
		WHERE sale_id = $1 AND from_template AND NOT is_final AND status <> $2`
	tag, err := r.q.Exec(context.Background(), query, saleID, entity.DocumentFirmado)
	if err != nil {
		return 0, fmt.Errorf("delete regenerable documents: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var templateID, beneficiaryID *string
	err := row.Scan(
		&d.ID, &d.SaleID, &templateID, &beneficiaryID, &d.Name, &d.DocumentType,
		&d.Content, &d.FilePath, &d.RequiresSignature, &d.IsFinal, &d.FromTemplate, &d.Status,
		&d.SignedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if templateID != nil {
		d.TemplateID = *templateID
	}
	if beneficiaryID != nil {
		d.BeneficiaryID = *beneficiaryID
	}
	return &d, nil
}
