package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan representa un plan de cobertura comercializable.
type Plan struct {
	ID           string
	CompanyID    string
	Name         string
	Code         string
	MonthlyPrice decimal.Decimal
	Description  string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
