package entity

import "time"

// Company representa la aseguradora/organización (multi-tenant).
type Company struct {
	ID        string
	Name      string
	TaxID     string // CUIT
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
