package entity

import "time"

// Beneficiary representa una persona cubierta por la venta (adherente).
// Exactamente uno por venta lleva IsPrimary=true (el titular), por convención.
// La declaración de salud completa vive serializada en HealthDetail (una sola
// columna de texto libre; ver internal/domain/salud).
type Beneficiary struct {
	ID                string
	SaleID            string
	Name              string
	Relationship      string // titular, cónyuge, hijo/a, etc.
	IdentityNumber    string
	IsPrimary         bool
	RequiresSignature bool
	HealthDetail      string // formato delimitado de salud.Encode
	HasPreexisting    bool   // resumen: declaró al menos una condición preexistente
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
