package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
)

var _ repository.InfoRequestRepository = (*InfoRequestRepo)(nil)

// InfoRequestRepo implementación de InfoRequestRepository (usable con pool o tx).
type InfoRequestRepo struct {
	q Querier
}

// NewInfoRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInfoRequestRepository(q Querier) *InfoRequestRepo {
	return &InfoRequestRepo{q: q}
}

// Create persiste una solicitud de información.
func (r *InfoRequestRepo) Create(ir *entity.InfoRequest) error {
	query := `
		INSERT INTO info_requests (id, sale_id, auditor_id, message, response, status, responded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		ir.ID, ir.SaleID, ir.AuditorID, ir.Message, ir.Response, ir.Status, ir.RespondedAt, ir.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert info request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *InfoRequestRepo) GetByID(id string) (*entity.InfoRequest, error) {
	query := `
		SELECT id, sale_id, auditor_id, message, response, status, responded_at, created_at
		FROM info_requests WHERE id = $1`
	var ir entity.InfoRequest
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ir.ID, &ir.SaleID, &ir.AuditorID, &ir.Message, &ir.Response, &ir.Status, &ir.RespondedAt, &ir.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get info request: %w", err)
	}
	return &ir, nil
}

// ListBySale lista las solicitudes de la venta, más recientes primero.
func (r *InfoRequestRepo) ListBySale(saleID string) ([]*entity.InfoRequest, error) {
	query := `
		SELECT id, sale_id, auditor_id, message, response, status, responded_at, created_at
		FROM info_requests WHERE sale_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list info requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.InfoRequest
	for rows.Next() {
		var ir entity.InfoRequest
		if err := rows.Scan(
			&ir.ID, &ir.SaleID, &ir.AuditorID, &ir.Message, &ir.Response, &ir.Status, &ir.RespondedAt, &ir.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan info request: %w", err)
		}
		list = append(list, &ir)
	}
	return list, rows.Err()
}

// Update registra la respuesta del vendedor.
func (r *InfoRequestRepo) Update(ir *entity.InfoRequest) error {
	query := `
		UPDATE info_requests SET response = $2, status = $3, responded_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, ir.ID, ir.Response, ir.Status, ir.RespondedAt)
	if err != nil {
		return fmt.Errorf("update info request: %w", err)
	}
	return nil
}
