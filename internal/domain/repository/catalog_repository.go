package repository

import "github.com/seguroplus/polizas-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(c *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error)
	Update(c *entity.Client) error
	Delete(id string) error
}

// PlanRepository define el puerto de persistencia para Plan.
type PlanRepository interface {
	Create(p *entity.Plan) error
	GetByID(id string) (*entity.Plan, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Plan, error)
	Update(p *entity.Plan) error
}

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	Create(c *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
	Update(c *entity.Company) error
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmailAndCompany(email, companyID string) (*entity.User, error)
	Update(user *entity.User) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.User, error)
	// FindByEmail alias semántico para uso en auth.
	FindByEmail(email string) (*entity.User, error)
}

// NotificationRepository define el puerto para la bandeja de notificaciones.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	ListByUser(userID string, limit, offset int) ([]*entity.Notification, error)
	MarkRead(id string) error
}
