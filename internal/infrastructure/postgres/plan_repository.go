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

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implementación de PlanRepository (usable con pool o tx).
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// Create persiste un plan nuevo.
func (r *PlanRepo) Create(p *entity.Plan) error {
	query := `
		INSERT INTO plans (id, company_id, name, code, monthly_price, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CompanyID, p.Name, p.Code, p.MonthlyPrice, p.Description, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetByID obtiene un plan por ID.
func (r *PlanRepo) GetByID(id string) (*entity.Plan, error) {
	query := `
		SELECT id, company_id, name, code, monthly_price, description, is_active, created_at, updated_at
		FROM plans WHERE id = $1`
	var p entity.Plan
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Code, &p.MonthlyPrice, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// ListByCompany lista planes de la empresa con paginación.
func (r *PlanRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Plan, error) {
	query := `
		SELECT id, company_id, name, code, monthly_price, description, is_active, created_at, updated_at
		FROM plans WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Name, &p.Code, &p.MonthlyPrice, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un plan.
func (r *PlanRepo) Update(p *entity.Plan) error {
	query := `
		UPDATE plans SET name = $2, code = $3, monthly_price = $4, description = $5,
			is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Code, p.MonthlyPrice, p.Description, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update plan: %w", err)
	}
	return nil
}
