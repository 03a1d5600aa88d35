package entity

import "time"

// Estados de una solicitud de información.
const (
	InfoRequestPendiente  = "pendiente"
	InfoRequestRespondida = "respondida"
)

// InfoRequest es una nota del auditor pidiendo más datos al vendedor.
// Distinta de un rechazo: espera una respuesta antes de que reenviar tenga sentido.
type InfoRequest struct {
	ID          string
	SaleID      string
	AuditorID   string
	Message     string
	Response    string
	Status      string // pendiente | respondida
	RespondedAt *time.Time
	CreatedAt   time.Time
}
