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

var _ repository.SignatureLinkRepository = (*SignatureLinkRepo)(nil)

// SignatureLinkRepo implementación de SignatureLinkRepository (usable con pool o tx).
type SignatureLinkRepo struct {
	q Querier
}

// NewSignatureLinkRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSignatureLinkRepository(q Querier) *SignatureLinkRepo {
	return &SignatureLinkRepo{q: q}
}

// Create persiste un enlace de firma. El token lleva constraint único.
func (r *SignatureLinkRepo) Create(l *entity.SignatureLink) error {
	query := `
		INSERT INTO signature_links (id, sale_id, beneficiary_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.SaleID, nullable(l.BeneficiaryID), l.Token, l.ExpiresAt, l.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert signature link: %w", err)
	}
	return nil
}

// GetByToken busca el enlace por su token opaco.
func (r *SignatureLinkRepo) GetByToken(token string) (*entity.SignatureLink, error) {
	query := `
		SELECT id, sale_id, beneficiary_id, token, expires_at, created_at
		FROM signature_links WHERE token = $1`
	l, err := scanSignatureLink(r.q.QueryRow(context.Background(), query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get signature link: %w", err)
	}
	return l, nil
}

// ListBySale lista los enlaces de firma emitidos para la venta.
func (r *SignatureLinkRepo) ListBySale(saleID string) ([]*entity.SignatureLink, error) {
	query := `
		SELECT id, sale_id, beneficiary_id, token, expires_at, created_at
		FROM signature_links WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list signature links: %w", err)
	}
	defer rows.Close()
	var list []*entity.SignatureLink
	for rows.Next() {
		l, err := scanSignatureLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan signature link: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanSignatureLink(row pgx.Row) (*entity.SignatureLink, error) {
	var l entity.SignatureLink
	var beneficiaryID *string
	err := row.Scan(&l.ID, &l.SaleID, &beneficiaryID, &l.Token, &l.ExpiresAt, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	if beneficiaryID != nil {
		l.BeneficiaryID = *beneficiaryID
	}
	return &l, nil
}
