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

var _ repository.BeneficiaryRepository = (*BeneficiaryRepo)(nil)

// BeneficiaryRepo implementación de BeneficiaryRepository (usable con pool o tx).
type BeneficiaryRepo struct {
	q Querier
}

// NewBeneficiaryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBeneficiaryRepository(q Querier) *BeneficiaryRepo {
	return &BeneficiaryRepo{q: q}
}

const beneficiaryColumns = `id, sale_id, name, relationship, identity_number,
	is_primary, requires_signature, health_detail, has_preexisting, created_at, updated_at`

// Create persiste un adherente.
func (r *BeneficiaryRepo) Create(b *entity.Beneficiary) error {
	query := `
		INSERT INTO beneficiaries (` + beneficiaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.SaleID, b.Name, b.Relationship, b.IdentityNumber,
		b.IsPrimary, b.RequiresSignature, b.HealthDetail, b.HasPreexisting, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert beneficiary: %w", err)
	}
	return nil
}

// GetByID obtiene un adherente por ID.
func (r *BeneficiaryRepo) GetByID(id string) (*entity.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE id = $1`
	var b entity.Beneficiary
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.SaleID, &b.Name, &b.Relationship, &b.IdentityNumber,
		&b.IsPrimary, &b.RequiresSignature, &b.HealthDetail, &b.HasPreexisting, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get beneficiary: %w", err)
	}
	return &b, nil
}

// ListBySale lista los adherentes de la venta, titular primero.
func (r *BeneficiaryRepo) ListBySale(saleID string) ([]*entity.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + `
		FROM beneficiaries WHERE sale_id = $1
		ORDER BY is_primary DESC, created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list beneficiaries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Beneficiary
	for rows.Next() {
		var b entity.Beneficiary
		if err := rows.Scan(
			&b.ID, &b.SaleID, &b.Name, &b.Relationship, &b.IdentityNumber,
			&b.IsPrimary, &b.RequiresSignature, &b.HealthDetail, &b.HasPreexisting, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan beneficiary: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Update actualiza un adherente (incluida su declaración de salud).
func (r *BeneficiaryRepo) Update(b *entity.Beneficiary) error {
	query := `
		UPDATE beneficiaries SET name = $2, relationship = $3, identity_number = $4,
			is_primary = $5, requires_signature = $6, health_detail = $7,
			has_preexisting = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Name, b.Relationship, b.IdentityNumber,
		b.IsPrimary, b.RequiresSignature, b.HealthDetail, b.HasPreexisting, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update beneficiary: %w", err)
	}
	return nil
}

// Delete elimina un adherente por ID.
func (r *BeneficiaryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM beneficiaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete beneficiary: %w", err)
	}
	return nil
}
