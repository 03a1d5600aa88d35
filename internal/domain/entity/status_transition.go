package entity

import "time"

// StatusTransition es una entrada inmutable del historial de workflow:
// solo se agrega, nunca se muta. Da trazabilidad completa aunque la fila de
// la venta solo guarde el estado actual.
type StatusTransition struct {
	ID             string
	SaleID         string
	PreviousStatus string
	NewStatus      string
	ActorID        string
	ActorRole      string
	Reason         string
	Metadata       map[string]string // opcional: datos estructurados del evento
	CreatedAt      time.Time
}
