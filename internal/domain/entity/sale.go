package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una venta.
const (
	SaleStatusBorrador   = "borrador"                // Edición por el vendedor
	SaleStatusPendiente  = "pendiente"               // Enviada a auditoría, sin auditor asignado
	SaleStatusAuditoria  = "en_auditoria"            // Auditor trabajando sobre la venta
	SaleStatusAprobado   = "aprobado_para_templates" // Aprobada; lista para generar documentos
	SaleStatusRechazado  = "rechazado"               // Rechazada o con información solicitada; vuelve al vendedor
	SaleStatusEnviado    = "enviado"                 // Documentos despachados para firma
	SaleStatusFirmado    = "firmado"                 // Todas las firmas requeridas completas
	SaleStatusCompletado = "completado"              // Cerrada
	SaleStatusCancelado  = "cancelado"               // Abortada (terminal)
)

// Veredictos de auditoría (independientes del estado, pero causalmente ligados).
const (
	AuditAprobado       = "aprobado"
	AuditRechazado      = "rechazado"
	AuditInfoSolicitada = "info_solicitada"
)

// Sale representa una venta de póliza: la unidad de trabajo del sistema.
// Status y AuditStatus se registran por separado: la aprobación fija ambos,
// pero el rechazo y la solicitud de información comparten el mismo Status
// (`rechazado`) y se distinguen solo por AuditStatus y por la razón en el
// historial de transiciones.
type Sale struct {
	ID                string
	CompanyID         string
	ClientID          string
	PlanID            string
	SalespersonID     string
	AuditorID         string // vacío hasta que un auditor toma la venta
	Status            string
	AuditStatus       string // vacío | aprobado | rechazado | info_solicitada
	AuditNotes        string
	Total             decimal.Decimal
	ContractStartDate *time.Time // primer día del mes de aprobación
	ContractNumber    string
	GenerationLocked  bool // guard de generación en curso (serializa generate/regenerate)
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Editable indica si el vendedor puede mutar la venta en su estado actual.
func (s *Sale) Editable() bool {
	return s.Status == SaleStatusBorrador || s.Status == SaleStatusRechazado
}
