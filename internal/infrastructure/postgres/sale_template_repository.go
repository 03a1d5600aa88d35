package postgres

import (
	"context"
	"fmt"

	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
)

var _ repository.SaleTemplateRepository = (*SaleTemplateRepo)(nil)

// SaleTemplateRepo implementación de SaleTemplateRepository (usable con pool o tx).
type SaleTemplateRepo struct {
	q Querier
}

// NewSaleTemplateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleTemplateRepository(q Querier) *SaleTemplateRepo {
	return &SaleTemplateRepo{q: q}
}

// Create asocia una plantilla a la venta.
func (r *SaleTemplateRepo) Create(st *entity.SaleTemplate) error {
	query := `
		INSERT INTO sale_templates (id, sale_id, template_id, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, st.ID, st.SaleID, st.TemplateID, st.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale template: %w", err)
	}
	return nil
}

// ListBySale devuelve las asociaciones en orden de creación (orden de generación).
func (r *SaleTemplateRepo) ListBySale(saleID string) ([]*entity.SaleTemplate, error) {
	query := `
		SELECT id, sale_id, template_id, created_at
		FROM sale_templates WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleTemplate
	for rows.Next() {
		var st entity.SaleTemplate
		if err := rows.Scan(&st.ID, &st.SaleID, &st.TemplateID, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale template: %w", err)
		}
		list = append(list, &st)
	}
	return list, rows.Err()
}

// Delete quita una asociación.
func (r *SaleTemplateRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sale_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale template: %w", err)
	}
	return nil
}
