package documentos_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seguroplus/polizas-api/internal/application/documentos"
	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/workflow"
)

// ─────────────────────────────────────────────────────────────────────────────
// Firma vía enlace
// ─────────────────────────────────────────────────────────────────────────────

type firmaEscenario struct {
	uc       *documentos.FirmaUseCase
	sales    *fakeSaleRepo
	docs     *fakeDocumentRepo
	trans    *fakeTransitionRepo
	notifier *fakeNotifier
}

func armarFirma(t *testing.T, docs []*entity.Document, links []*entity.SignatureLink) *firmaEscenario {
	t.Helper()
	sale := nuevaVentaAprobada()
	sale.Status = entity.SaleStatusEnviado
	e := &firmaEscenario{
		sales:    newFakeSaleRepo(sale),
		docs:     &fakeDocumentRepo{docs: docs},
		trans:    &fakeTransitionRepo{},
		notifier: &fakeNotifier{},
	}
	e.uc = documentos.NewFirmaUseCase(e.sales, e.docs, &fakeLinkRepo{links: links}, e.trans, e.notifier)
	return e
}

func enlaceTitular() *entity.SignatureLink {
	return &entity.SignatureLink{
		ID: "l-titular", SaleID: "venta-1", BeneficiaryID: "", Token: "tok-titular",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func enlaceConyuge() *entity.SignatureLink {
	return &entity.SignatureLink{
		ID: "l-conyuge", SaleID: "venta-1", BeneficiaryID: "ben-conyuge", Token: "tok-conyuge",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestPendingByToken_SoloDocumentosDelFirmante(t *testing.T) {
	e := armarFirma(t, []*entity.Document{
		{ID: "d-contrato", SaleID: "venta-1", Name: "Contrato", RequiresSignature: true, Status: entity.DocumentPendiente},
		{ID: "d-ddjj-cony", SaleID: "venta-1", BeneficiaryID: "ben-conyuge", Name: "DDJJ cónyuge", RequiresSignature: true, Status: entity.DocumentPendiente},
		{ID: "d-anexo", SaleID: "venta-1", Name: "Anexo", RequiresSignature: false, Status: entity.DocumentPendiente},
	}, []*entity.SignatureLink{enlaceTitular(), enlaceConyuge()})

	titular, err := e.uc.PendingByToken("tok-titular")
	require.NoError(t, err)
	require.Len(t, titular, 1)
	assert.Equal(t, "d-contrato", titular[0].ID)

	conyuge, err := e.uc.PendingByToken("tok-conyuge")
	require.NoError(t, err)
	require.Len(t, conyuge, 1)
	assert.Equal(t, "d-ddjj-cony", conyuge[0].ID)
}

func TestSign_EnlaceVencidoRechazado(t *testing.T) {
	vencido := enlaceTitular()
	vencido.ExpiresAt = time.Now().Add(-time.Minute)
	e := armarFirma(t, nil, []*entity.SignatureLink{vencido})

	_, err := e.uc.Sign(context.Background(), "tok-titular", "d-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSign_DocumentoDeOtroFirmanteDenegado(t *testing.T) {
	e := armarFirma(t, []*entity.Document{
		{ID: "d-ddjj-cony", SaleID: "venta-1", BeneficiaryID: "ben-conyuge", RequiresSignature: true, Status: entity.DocumentPendiente},
	}, []*entity.SignatureLink{enlaceTitular()})

	_, err := e.uc.Sign(context.Background(), "tok-titular", "d-ddjj-cony")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSign_DocumentoYaFirmado(t *testing.T) {
	firmadoEn := time.Now()
	e := armarFirma(t, []*entity.Document{
		{ID: "d-contrato", SaleID: "venta-1", RequiresSignature: true,
			Status: entity.DocumentFirmado, SignedAt: &firmadoEn},
	}, []*entity.SignatureLink{enlaceTitular()})

	_, err := e.uc.Sign(context.Background(), "tok-titular", "d-contrato")
	assert.ErrorIs(t, err, domain.ErrDocumentAlreadySigned)
}

func TestSign_UltimaFirmaCompletaLaVenta(t *testing.T) {
	e := armarFirma(t, []*entity.Document{
		{ID: "d-contrato", SaleID: "venta-1", Name: "Contrato", RequiresSignature: true, Status: entity.DocumentPendiente},
		{ID: "d-ddjj-cony", SaleID: "venta-1", BeneficiaryID: "ben-conyuge", Name: "DDJJ", RequiresSignature: true, Status: entity.DocumentPendiente},
		{ID: "d-anexo", SaleID: "venta-1", Name: "Anexo", IsFinal: true, Status: entity.DocumentPendiente},
	}, []*entity.SignatureLink{enlaceTitular(), enlaceConyuge()})

	// Primera firma: la venta sigue enviada.
	out, err := e.uc.Sign(context.Background(), "tok-titular", "d-contrato")
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentFirmado, out.Status)
	assert.NotNil(t, out.SignedAt)

	sale, _ := e.sales.GetByID("venta-1")
	assert.Equal(t, entity.SaleStatusEnviado, sale.Status)
	assert.Empty(t, e.trans.recs)

	// Última firma requerida: enviado → firmado, con historial y aviso.
	// El anexo final sin firma requerida no bloquea el cierre.
	_, err = e.uc.Sign(context.Background(), "tok-conyuge", "d-ddjj-cony")
	require.NoError(t, err)

	sale, _ = e.sales.GetByID("venta-1")
	assert.Equal(t, entity.SaleStatusFirmado, sale.Status)
	require.Len(t, e.trans.recs, 1)
	assert.Equal(t, workflow.RoleSistema, e.trans.recs[0].ActorRole)
	require.Len(t, e.notifier.sent, 1)
	assert.Equal(t, "Venta completamente firmada", e.notifier.sent[0].Title)
}

// ─────────────────────────────────────────────────────────────────────────────
// Política por defecto
// ─────────────────────────────────────────────────────────────────────────────

func TestDefaultPolicy_Reglas(t *testing.T) {
	activa := &entity.Company{ID: "empresa-1", Status: "active"}
	suspendida := &entity.Company{ID: "empresa-1", Status: "suspended"}

	casos := []struct {
		nombre   string
		total    decimal.Decimal
		company  *entity.Company
		permitido bool
	}{
		{"total positivo y empresa activa", decimal.NewFromInt(100000), activa, true},
		{"total en cero", decimal.Zero, activa, false},
		{"empresa suspendida", decimal.NewFromInt(100000), suspendida, false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			sale := nuevaVentaAprobada()
			sale.Total = c.total
			p := documentos.NewDefaultPolicy(newFakeSaleRepo(sale), &fakeCompanyRepo{c: c.company})

			check, err := p.Check(context.Background(), "venta-1", entity.SaleStatusEnviado, entity.RoleAuditor)
			require.NoError(t, err)
			assert.Equal(t, c.permitido, check.Allowed)
			if !c.permitido {
				assert.NotEmpty(t, check.Reasons)
			}
		})
	}
}
