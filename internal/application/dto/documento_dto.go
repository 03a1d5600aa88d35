package dto

import "time"

// GenerateRequest respuestas estructuradas del cuestionario a fusionar en el
// contexto de interpolación (opcional; si falta, la generación deriva los
// placeholders de salud desde el texto codificado del titular).
type GenerateRequest struct {
	Responses map[string]string `json:"responses"`
}

// DocumentResponse vista de un documento generado.
type DocumentResponse struct {
	ID                string     `json:"id"`
	SaleID            string     `json:"sale_id"`
	TemplateID        string     `json:"template_id,omitempty"`
	BeneficiaryID     string     `json:"beneficiary_id,omitempty"`
	Name              string     `json:"name"`
	DocumentType      string     `json:"document_type"`
	Content           string     `json:"content,omitempty"`
	FileURL           string     `json:"file_url,omitempty"` // URL firmada temporal
	RequiresSignature bool       `json:"requires_signature"`
	IsFinal           bool       `json:"is_final"`
	Status            string     `json:"status"`
	SignedAt          *time.Time `json:"signed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// GenerationResult resumen de un ciclo de generación.
type GenerationResult struct {
	SaleID         string   `json:"sale_id"`
	Documents      int      `json:"documents"`
	SignatureLinks int      `json:"signature_links"`
	Deleted        int      `json:"deleted,omitempty"` // solo en regeneración
	Unresolved     []string `json:"unresolved_placeholders,omitempty"`
}

// CreateTemplateRequest alta de plantilla.
type CreateTemplateRequest struct {
	Name         string `json:"name"`
	DocumentType string `json:"document_type"` // vacío = clasificación legada por nombre
	Body         string `json:"body"`
}

// TemplateResponse vista de plantilla.
type TemplateResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	Name         string    `json:"name"`
	DocumentType string    `json:"document_type"`
	HasBody      bool      `json:"has_body"`
	Attachments  int       `json:"attachments"`
	CreatedAt    time.Time `json:"created_at"`
}

// NotificationResponse vista de notificación in-app.
type NotificationResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Category  string     `json:"category"`
	DeepLink  string     `json:"deep_link,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
