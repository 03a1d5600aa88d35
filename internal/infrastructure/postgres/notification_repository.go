package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seguroplus/polizas-api/internal/application/ports"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)
var _ ports.NotificationSink = (*NotificationRepo)(nil)

// NotificationRepo bandeja de notificaciones in-app. Implementa también el
// sink de la capa de aplicación: un Notify es un insert en la bandeja.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste una notificación.
func (r *NotificationRepo) Create(n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, body, category, deep_link, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.UserID, n.Title, n.Body, n.Category, n.DeepLink, n.ReadAt, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// Notify materializa un mensaje del núcleo como fila de la bandeja.
func (r *NotificationRepo) Notify(ctx context.Context, msg ports.Notification) error {
	return r.Create(&entity.Notification{
		ID:        uuid.New().String(),
		UserID:    msg.UserID,
		Title:     msg.Title,
		Body:      msg.Body,
		Category:  msg.Category,
		DeepLink:  msg.DeepLink,
		CreatedAt: time.Now(),
	})
}

// ListByUser lista las notificaciones del usuario, más recientes primero.
func (r *NotificationRepo) ListByUser(userID string, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, title, body, category, deep_link, read_at, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Title, &n.Body, &n.Category, &n.DeepLink, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(id string) error {
	query := `UPDATE notifications SET read_at = now() WHERE id = $1 AND read_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
