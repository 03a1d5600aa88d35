package entity

import "time"

// Client representa el cliente/contratante de la póliza.
type Client struct {
	ID             string
	CompanyID      string
	FirstName      string
	LastName       string
	IdentityNumber string // DNI/CUIL
	Email          string
	Phone          string
	Address        string
	BirthDate      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName devuelve nombre y apellido concatenados.
func (c *Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
