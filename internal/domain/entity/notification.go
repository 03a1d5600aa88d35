package entity

import "time"

// Categorías de notificación.
const (
	NotifAuditoria = "auditoria"
	NotifDocumento = "documento"
	NotifFirma     = "firma"
)

// Notification mensaje fire-and-forget dirigido a un usuario (bandeja in-app).
// El núcleo no garantiza entrega ni orden.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	Category  string
	DeepLink  string // opcional: ruta en la UI
	ReadAt    *time.Time
	CreatedAt time.Time
}
