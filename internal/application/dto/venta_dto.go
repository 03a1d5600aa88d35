package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest alta de venta en borrador.
type CreateSaleRequest struct {
	ClientID string          `json:"client_id"`
	PlanID   string          `json:"plan_id"`
	Total    decimal.Decimal `json:"total"`
}

// UpdateSaleRequest mutación de una venta editable (borrador o rechazada).
type UpdateSaleRequest struct {
	ClientID string          `json:"client_id"`
	PlanID   string          `json:"plan_id"`
	Total    decimal.Decimal `json:"total"`
}

// SaleResponse vista de la venta.
type SaleResponse struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"company_id"`
	ClientID          string          `json:"client_id"`
	PlanID            string          `json:"plan_id"`
	SalespersonID     string          `json:"salesperson_id"`
	AuditorID         string          `json:"auditor_id,omitempty"`
	Status            string          `json:"status"`
	AuditStatus       string          `json:"audit_status,omitempty"`
	AuditNotes        string          `json:"audit_notes,omitempty"`
	Total             decimal.Decimal `json:"total"`
	ContractStartDate *time.Time      `json:"contract_start_date,omitempty"`
	ContractNumber    string          `json:"contract_number,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// BeneficiaryRequest alta/edición de adherente.
type BeneficiaryRequest struct {
	Name              string `json:"name"`
	Relationship      string `json:"relationship"`
	IdentityNumber    string `json:"identity_number"`
	IsPrimary         bool   `json:"is_primary"`
	RequiresSignature bool   `json:"requires_signature"`
}

// HealthDeclarationRequest declaración de salud estructurada de un adherente.
type HealthDeclarationRequest struct {
	Answers      []HealthAnswer  `json:"answers"`
	Habits       map[string]bool `json:"habits"`
	Weight       string          `json:"weight"`
	Height       string          `json:"height"`
	Menstruation string          `json:"menstruation"`
}

// HealthAnswer respuesta sí/no con detalle a una pregunta fija (por índice).
type HealthAnswer struct {
	Question int    `json:"question"` // índice 1-based sobre salud.Preguntas
	Yes      bool   `json:"yes"`
	Detail   string `json:"detail"`
}

// BeneficiaryResponse vista del adherente.
type BeneficiaryResponse struct {
	ID                string    `json:"id"`
	SaleID            string    `json:"sale_id"`
	Name              string    `json:"name"`
	Relationship      string    `json:"relationship"`
	IdentityNumber    string    `json:"identity_number"`
	IsPrimary         bool      `json:"is_primary"`
	RequiresSignature bool      `json:"requires_signature"`
	HasPreexisting    bool      `json:"has_preexisting"`
	CreatedAt         time.Time `json:"created_at"`
}

// TransitionResponse entrada del historial de workflow.
type TransitionResponse struct {
	ID             string            `json:"id"`
	PreviousStatus string            `json:"previous_status"`
	NewStatus      string            `json:"new_status"`
	ActorID        string            `json:"actor_id"`
	ActorRole      string            `json:"actor_role"`
	Reason         string            `json:"reason"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
