package entity

import (
	"strings"
	"time"
)

// Clasificación de documentos/plantillas.
const (
	DocTypeContrato = "contrato"
	DocTypeDDJJ     = "ddjj_salud"
	DocTypeAnexo    = "anexo"
)

// Template es el esqueleto reutilizable de un documento: cuerpo HTML con
// placeholders más cero o más adjuntos (PDFs preexistentes) que se usan
// cuando no hay cuerpo.
type Template struct {
	ID           string
	CompanyID    string
	Name         string
	DocumentType string // contrato | ddjj_salud | anexo; vacío = clasificar por nombre (legado)
	Body         string // HTML con placeholders; vacío = solo adjuntos
	Attachments  []TemplateAttachment
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TemplateAttachment es un archivo opaco asociado a la plantilla (ej. anexo PDF).
type TemplateAttachment struct {
	ID         string
	TemplateID string
	FileName   string
	FilePath   string // ruta en el file store
	CreatedAt  time.Time
}

// Type devuelve la clasificación efectiva de la plantilla: el campo explícito
// si está presente, o la clasificación legada por subcadena del nombre.
func (t *Template) Type() string {
	if t.DocumentType != "" {
		return t.DocumentType
	}
	return ClassifyTemplateName(t.Name)
}

// ClassifyTemplateName infiere la clasificación desde el nombre de la plantilla.
// Camino de compatibilidad para plantillas legadas sin DocumentType; las nuevas
// deben llevar el campo explícito.
func ClassifyTemplateName(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "declaracion") || strings.Contains(n, "declaración") || strings.Contains(n, "ddjj") || strings.Contains(n, "salud"):
		return DocTypeDDJJ
	case strings.Contains(n, "anexo"):
		return DocTypeAnexo
	default:
		return DocTypeContrato
	}
}

// SaleTemplate asocia una plantilla a una venta: determina qué plantillas
// participan en la generación de documentos de esa venta.
type SaleTemplate struct {
	ID         string
	SaleID     string
	TemplateID string
	CreatedAt  time.Time
}
