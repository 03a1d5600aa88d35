package workflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/workflow"
)

func ventaEn(status string) *entity.Sale {
	return &entity.Sale{ID: "venta-1", Status: status}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de transiciones y gating por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestCan_TransicionesLegales(t *testing.T) {
	casos := []struct {
		from, to, role string
	}{
		{entity.SaleStatusBorrador, entity.SaleStatusPendiente, entity.RoleVendedor},
		{entity.SaleStatusRechazado, entity.SaleStatusPendiente, entity.RoleVendedor},
		{entity.SaleStatusPendiente, entity.SaleStatusAprobado, entity.RoleAuditor},
		{entity.SaleStatusPendiente, entity.SaleStatusRechazado, entity.RoleAuditor},
		{entity.SaleStatusAuditoria, entity.SaleStatusAprobado, entity.RoleAuditor},
		{entity.SaleStatusAprobado, entity.SaleStatusEnviado, workflow.RoleSistema},
		{entity.SaleStatusEnviado, entity.SaleStatusFirmado, workflow.RoleSistema},
		{entity.SaleStatusFirmado, entity.SaleStatusCompletado, entity.RoleAuditor},
		{entity.SaleStatusEnviado, entity.SaleStatusCancelado, entity.RoleAdmin},
	}
	for _, c := range casos {
		assert.NoError(t, workflow.Can(c.from, c.to, c.role), "%s→%s con rol %s", c.from, c.to, c.role)
	}
}

func TestCan_RolIncorrectoEsForbidden(t *testing.T) {
	// Solo el subsistema de generación mueve aprobado→enviado.
	err := workflow.Can(entity.SaleStatusAprobado, entity.SaleStatusEnviado, entity.RoleAuditor)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El vendedor no aprueba.
	err = workflow.Can(entity.SaleStatusPendiente, entity.SaleStatusAprobado, entity.RoleVendedor)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCan_TransicionInexistenteEsDenied(t *testing.T) {
	err := workflow.Can(entity.SaleStatusBorrador, entity.SaleStatusFirmado, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrTransitionDenied)

	// Estados terminales sin salida
	err = workflow.Can(entity.SaleStatusCompletado, entity.SaleStatusBorrador, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrTransitionDenied)
	err = workflow.Can(entity.SaleStatusCancelado, entity.SaleStatusPendiente, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrTransitionDenied)
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply: mutación + registro de historial
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_MutaYDevuelveHistorial(t *testing.T) {
	venta := ventaEn(entity.SaleStatusPendiente)
	actor := workflow.Actor{ID: "aud-1", Role: entity.RoleAuditor}

	rec, err := workflow.Apply(venta, entity.SaleStatusAprobado, actor, "OK", map[string]string{"notas": "OK"})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusAprobado, venta.Status)
	assert.Equal(t, entity.SaleStatusPendiente, rec.PreviousStatus)
	assert.Equal(t, entity.SaleStatusAprobado, rec.NewStatus)
	assert.Equal(t, "aud-1", rec.ActorID)
	assert.Equal(t, entity.RoleAuditor, rec.ActorRole)
	assert.Equal(t, "OK", rec.Reason)
	assert.NotEmpty(t, rec.ID)
}

func TestApply_IlegalNoTocaLaVenta(t *testing.T) {
	venta := ventaEn(entity.SaleStatusBorrador)
	actor := workflow.Actor{ID: "vend-1", Role: entity.RoleVendedor}

	rec, err := workflow.Apply(venta, entity.SaleStatusAprobado, actor, "", nil)
	assert.Error(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, entity.SaleStatusBorrador, venta.Status, "la venta no debe mutar en transición ilegal")
}

func TestDestinosDesde_ExplicaLoPermitido(t *testing.T) {
	destinos := workflow.DestinosDesde(entity.SaleStatusPendiente, entity.RoleVendedor)
	assert.Equal(t, []string{entity.SaleStatusCancelado}, destinos,
		"el vendedor solo puede cancelar una venta pendiente")

	destinos = workflow.DestinosDesde(entity.SaleStatusPendiente, entity.RoleAuditor)
	assert.Contains(t, destinos, entity.SaleStatusAprobado)
	assert.Contains(t, destinos, entity.SaleStatusRechazado)
}

func TestInicioContrato_PrimerDiaDelMes(t *testing.T) {
	aprobacion := time.Date(2026, 9, 17, 15, 30, 0, 0, time.UTC)
	inicio := workflow.InicioContrato(aprobacion)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), inicio)
}
