package repository

import "github.com/seguroplus/polizas-api/internal/domain/entity"

// TransitionRepository registro append-only del historial de workflow.
// No hay Update ni Delete: cada transición aplicada se agrega, nunca se muta.
type TransitionRepository interface {
	Append(t *entity.StatusTransition) error
	ListBySale(saleID string) ([]*entity.StatusTransition, error)
}

// InfoRequestRepository define el puerto para solicitudes de información.
type InfoRequestRepository interface {
	Create(ir *entity.InfoRequest) error
	GetByID(id string) (*entity.InfoRequest, error)
	ListBySale(saleID string) ([]*entity.InfoRequest, error)
	Update(ir *entity.InfoRequest) error
}
