package entity

import "time"

// Estados de un documento generado.
const (
	DocumentPendiente = "pendiente"
	DocumentFirmado   = "firmado"
)

// Document es la salida materializada de la generación: inmutable una vez firmado.
// BeneficiaryID vacío = documento del titular o compartido.
type Document struct {
	ID                string
	SaleID            string
	TemplateID        string // plantilla de origen; vacío para documentos subidos a mano
	BeneficiaryID     string
	Name              string
	DocumentType      string // contrato | ddjj_salud | anexo
	Content           string // HTML renderizado; vacío si es referencia a archivo
	FilePath          string // referencia al file store (anexos por adjunto)
	RequiresSignature bool
	IsFinal           bool // protegido contra borrado en regeneración
	FromTemplate      bool // proveniencia: emitido por el orquestador
	Status            string
	SignedAt          *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SignatureLink es el registro de enlace de firma por firmante (titular o
// adherente con firma requerida). La regeneración nunca crea enlaces nuevos
// cuando ya existen, para no invalidar los repartidos.
type SignatureLink struct {
	ID            string
	SaleID        string
	BeneficiaryID string // vacío = titular
	Token         string
	ExpiresAt     time.Time
	CreatedAt     time.Time
}
