package notificaciones

import (
	"github.com/seguroplus/polizas-api/internal/application/dto"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
)

// UseCase bandeja de notificaciones del usuario autenticado.
type UseCase struct {
	repo repository.NotificationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.NotificationRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List devuelve las notificaciones del usuario, más recientes primero.
func (uc *UseCase) List(userID string, limit, offset int) ([]*dto.NotificationResponse, error) {
	list, err := uc.repo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, &dto.NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Body:      n.Body,
			Category:  n.Category,
			DeepLink:  n.DeepLink,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca una notificación como leída.
func (uc *UseCase) MarkRead(id string) error {
	return uc.repo.MarkRead(id)
}
