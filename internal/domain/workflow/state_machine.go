// Package workflow implementa la máquina de estados del ciclo de vida de una
// venta: qué transiciones son legales, qué rol puede ejecutar cada una y el
// registro de historial append-only que acompaña a cada cambio.
package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
)

// RoleSistema es el actor interno de los subsistemas de generación y firma:
// solo él mueve aprobado→enviado y enviado→firmado.
const RoleSistema = "sistema"

// Actor es quien ejecuta una transición.
type Actor struct {
	ID   string
	Role string
}

// regla: destinos permitidos desde un estado, con los roles habilitados.
type regla struct {
	destino string
	roles   []string
}

// tabla de transiciones legales. cancelado es alcanzable como aborto terminal
// desde todo estado no terminal salvo firmado (una venta firmada solo puede
// completarse).
var tabla = map[string][]regla{
	entity.SaleStatusBorrador: {
		{entity.SaleStatusPendiente, []string{entity.RoleVendedor, entity.RoleAdmin}},
		{entity.SaleStatusCancelado, []string{entity.RoleVendedor, entity.RoleAdmin}},
	},
	entity.SaleStatusPendiente: {
		{entity.SaleStatusAuditoria, []string{entity.RoleAuditor, entity.RoleAdmin}},
		{entity.SaleStatusAprobado, []string{entity.RoleAuditor, entity.RoleAdmin}},
		{entity.SaleStatusRechazado, []string{entity.RoleAuditor, entity.RoleAdmin}},
		{entity.SaleStatusCancelado, []string{entity.RoleVendedor, entity.RoleAuditor, entity.RoleAdmin}},
	},
	entity.SaleStatusAuditoria: {
		{entity.SaleStatusAprobado, []string{entity.RoleAuditor, entity.RoleAdmin}},
		{entity.SaleStatusRechazado, []string{entity.RoleAuditor, entity.RoleAdmin}},
		{entity.SaleStatusCancelado, []string{entity.RoleAuditor, entity.RoleAdmin}},
	},
	entity.SaleStatusRechazado: {
		{entity.SaleStatusPendiente, []string{entity.RoleVendedor, entity.RoleAdmin}},
		{entity.SaleStatusCancelado, []string{entity.RoleVendedor, entity.RoleAdmin}},
	},
	entity.SaleStatusAprobado: {
		{entity.SaleStatusEnviado, []string{RoleSistema}},
		{entity.SaleStatusCancelado, []string{entity.RoleAuditor, entity.RoleAdmin}},
	},
	entity.SaleStatusEnviado: {
		{entity.SaleStatusFirmado, []string{RoleSistema}},
		{entity.SaleStatusCancelado, []string{entity.RoleAuditor, entity.RoleAdmin}},
	},
	entity.SaleStatusFirmado: {
		{entity.SaleStatusCompletado, []string{entity.RoleAuditor, entity.RoleAdmin}},
	},
	// completado y cancelado: terminales, sin salidas.
}

// Can verifica si la transición from→to está permitida para el rol.
// Devuelve ErrTransitionDenied (no permitida desde el estado) o ErrForbidden
// (permitida pero no para ese rol).
func Can(from, to, role string) error {
	reglas, ok := tabla[from]
	if !ok {
		return fmt.Errorf("%w: %s es un estado terminal", domain.ErrTransitionDenied, from)
	}
	for _, r := range reglas {
		if r.destino != to {
			continue
		}
		for _, permitido := range r.roles {
			if permitido == role {
				return nil
			}
		}
		return fmt.Errorf("%w: el rol %s no puede mover %s → %s (permitidos: %v)",
			domain.ErrForbidden, role, from, to, r.roles)
	}
	return fmt.Errorf("%w: %s → %s", domain.ErrTransitionDenied, from, to)
}

// DestinosDesde lista los estados alcanzables desde uno dado con el rol
// indicado (explicación de denegación para el actor).
func DestinosDesde(from, role string) []string {
	var out []string
	for _, r := range tabla[from] {
		if Can(from, r.destino, role) == nil {
			out = append(out, r.destino)
		}
	}
	return out
}

// Apply valida la transición y, si es legal, muta el estado de la venta y
// devuelve el registro de historial a persistir (append-only). La venta no se
// toca cuando la transición es ilegal.
func Apply(sale *entity.Sale, to string, actor Actor, reason string, meta map[string]string) (*entity.StatusTransition, error) {
	if err := Can(sale.Status, to, actor.Role); err != nil {
		return nil, err
	}
	prev := sale.Status
	now := time.Now()
	sale.Status = to
	sale.UpdatedAt = now
	return &entity.StatusTransition{
		ID:             uuid.New().String(),
		SaleID:         sale.ID,
		PreviousStatus: prev,
		NewStatus:      to,
		ActorID:        actor.ID,
		ActorRole:      actor.Role,
		Reason:         reason,
		Metadata:       meta,
		CreatedAt:      now,
	}, nil
}

// InicioContrato devuelve el primer día del mes de la fecha de aprobación.
func InicioContrato(aprobacion time.Time) time.Time {
	return time.Date(aprobacion.Year(), aprobacion.Month(), 1, 0, 0, 0, 0, aprobacion.Location())
}
