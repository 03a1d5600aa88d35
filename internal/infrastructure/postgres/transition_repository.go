package postgres

import (
	"context"
	"fmt"

	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
)

var _ repository.TransitionRepository = (*TransitionRepo)(nil)

// TransitionRepo historial de workflow append-only: solo INSERT y SELECT,
// sin UPDATE ni DELETE a propósito.
type TransitionRepo struct {
	q Querier
}

// NewTransitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransitionRepository(q Querier) *TransitionRepo {
	return &TransitionRepo{q: q}
}

// Append agrega un registro de transición. Metadata se persiste como JSONB.
func (r *TransitionRepo) Append(t *entity.StatusTransition) error {
	query := `
		INSERT INTO status_transitions
			(id, sale_id, previous_status, new_status, actor_id, actor_role, reason, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.SaleID, t.PreviousStatus, t.NewStatus, t.ActorID, t.ActorRole, t.Reason, t.Metadata, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert status transition: %w", err)
	}
	return nil
}

// ListBySale devuelve el historial de la venta en orden cronológico.
func (r *TransitionRepo) ListBySale(saleID string) ([]*entity.StatusTransition, error) {
	query := `
		SELECT id, sale_id, previous_status, new_status, actor_id, actor_role, reason, metadata, created_at
		FROM status_transitions WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list status transitions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StatusTransition
	for rows.Next() {
		var t entity.StatusTransition
		if err := rows.Scan(
			&t.ID, &t.SaleID, &t.PreviousStatus, &t.NewStatus, &t.ActorID, &t.ActorRole, &t.Reason, &t.Metadata, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan status transition: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
