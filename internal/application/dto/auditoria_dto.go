package dto

import "time"

// AuditDecisionRequest veredicto del auditor sobre una venta pendiente.
// Notes es obligatorio para rechazar y para solicitar información.
type AuditDecisionRequest struct {
	Notes string `json:"notes"`
}

// InfoRequestResponse vista de una solicitud de información.
type InfoRequestResponse struct {
	ID          string     `json:"id"`
	SaleID      string     `json:"sale_id"`
	AuditorID   string     `json:"auditor_id"`
	Message     string     `json:"message"`
	Response    string     `json:"response,omitempty"`
	Status      string     `json:"status"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// RespondInfoRequest respuesta del vendedor a una solicitud de información.
type RespondInfoRequest struct {
	Response string `json:"response"`
}
