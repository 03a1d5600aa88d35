package documentos_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seguroplus/polizas-api/internal/application/documentos"
	"github.com/seguroplus/polizas-api/internal/application/dto"
	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/salud"
	"github.com/seguroplus/polizas-api/internal/domain/workflow"
	"github.com/seguroplus/polizas-api/pkg/logger"
)

// ─────────────────────────────────────────────────────────────────────────────
// Armado del escenario
// ─────────────────────────────────────────────────────────────────────────────

type escenario struct {
	orq        *documentos.Orchestrator
	sales      *fakeSaleRepo
	docs       *fakeDocumentRepo
	links      *fakeLinkRepo
	trans      *fakeTransitionRepo
	notifier   *fakeNotifier
	templates  *fakeTemplateRepo
	saleTempls *fakeSaleTemplateRepo
	bens       *fakeBeneficiaryRepo
}

func nuevaVentaAprobada() *entity.Sale {
	return &entity.Sale{
		ID:            "venta-1",
		CompanyID:     "empresa-1",
		ClientID:      "cliente-1",
		PlanID:        "plan-1",
		SalespersonID: "vendedor-1",
		AuditorID:     "auditor-1",
		Status:        entity.SaleStatusAprobado,
		AuditStatus:   entity.AuditAprobado,
		Total:         decimal.NewFromInt(150000),
	}
}

func armarEscenario(t *testing.T, sale *entity.Sale, templates []*entity.Template, adherentes []*entity.Beneficiary) *escenario {
	t.Helper()

	e := &escenario{
		sales:     newFakeSaleRepo(sale),
		docs:      &fakeDocumentRepo{},
		links:     &fakeLinkRepo{},
		trans:     &fakeTransitionRepo{},
		notifier:  &fakeNotifier{},
		templates: &fakeTemplateRepo{templates: map[string]*entity.Template{}},
		bens:      &fakeBeneficiaryRepo{list: adherentes},
	}
	e.saleTempls = &fakeSaleTemplateRepo{}
	for _, tpl := range templates {
		e.templates.templates[tpl.ID] = tpl
		e.saleTempls.list = append(e.saleTempls.list, &entity.SaleTemplate{
			ID: "st-" + tpl.ID, SaleID: sale.ID, TemplateID: tpl.ID,
		})
	}

	e.orq = documentos.NewOrchestrator(
		e.sales,
		&fakeClientRepo{c: &entity.Client{ID: "cliente-1", CompanyID: "empresa-1", FirstName: "Ana", LastName: "García"}},
		&fakePlanRepo{p: &entity.Plan{ID: "plan-1", Name: "Plan Oro", MonthlyPrice: decimal.NewFromInt(150000)}},
		&fakeCompanyRepo{c: &entity.Company{ID: "empresa-1", Name: "Seguro Plus", Status: "active"}},
		e.bens,
		e.templates,
		e.saleTempls,
		e.docs,
		e.links,
		e.trans,
		allowAllPolicy{},
		e.notifier,
		logger.New(logger.Config{Env: "test", Level: "error"}),
	)
	return e
}

func auditor() workflow.Actor {
	return workflow.Actor{ID: "auditor-1", Role: entity.RoleAuditor}
}

func titular() *entity.Beneficiary {
	return &entity.Beneficiary{
		ID: "ben-titular", SaleID: "venta-1", Name: "Ana García",
		Relationship: "titular", IsPrimary: true, RequiresSignature: true,
		HealthDetail: salud.Encode(salud.Declaracion{
			Respuestas: map[string]salud.Respuesta{
				salud.Preguntas[2]: {Si: true, Detalle: "hipertensión controlada", Contestada: true},
			},
			Habitos: map[string]bool{"fuma": true},
			Peso:    "70 kg",
		}),
	}
}

func conyuge() *entity.Beneficiary {
	return &entity.Beneficiary{
		ID: "ben-conyuge", SaleID: "venta-1", Name: "Luis García",
		Relationship: "cónyuge", RequiresSignature: true,
		HealthDetail: salud.Encode(salud.Declaracion{
			Habitos: map[string]bool{"consume alcohol": true},
			Peso:    "82 kg",
		}),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Generación
// ─────────────────────────────────────────────────────────────────────────────

func TestGenerate_UnArtefactoPorPlantilla(t *testing.T) {
	// Tres plantillas: contrato con cuerpo, DDJJ con cuerpo, anexo solo
	// adjuntos. Cada una aporta exactamente un tipo de artefacto.
	contrato := &entity.Template{ID: "t-contrato", Name: "Contrato de afiliación",
		DocumentType: entity.DocTypeContrato, Body: "<p>Contrato de {{cliente.nombre_completo}}</p>"}
	ddjj := &entity.Template{ID: "t-ddjj", Name: "Declaración jurada de salud",
		DocumentType: entity.DocTypeDDJJ, Body: "<p>{{adherente.nombre}}: {{salud.habitos}}</p>"}
	anexo := &entity.Template{ID: "t-anexo", Name: "Anexo condiciones",
		DocumentType: entity.DocTypeAnexo,
		Attachments: []entity.TemplateAttachment{
			{ID: "a1", TemplateID: "t-anexo", FileName: "condiciones.pdf", FilePath: "plantillas/condiciones.pdf"},
			{ID: "a2", TemplateID: "t-anexo", FileName: "tarifas.pdf", FilePath: "plantillas/tarifas.pdf"},
		}}

	e := armarEscenario(t, nuevaVentaAprobada(), []*entity.Template{contrato, ddjj, anexo},
		[]*entity.Beneficiary{titular(), conyuge()})

	res, err := e.orq.Generate(context.Background(), "venta-1", auditor(), dto.GenerateRequest{})
	require.NoError(t, err)

	// contrato + DDJJ compartida + DDJJ del cónyuge + 2 anexos
	assert.Equal(t, 5, res.Documents)
	porPlantilla := map[string]int{}
	for _, d := range e.docs.docs {
		porPlantilla[d.TemplateID]++
	}
	assert.Equal(t, 1, porPlantilla["t-contrato"])
	assert.Equal(t, 2, porPlantilla["t-ddjj"], "DDJJ compartida más la dedicada del cónyuge")
	assert.Equal(t, 2, porPlantilla["t-anexo"], "un documento por adjunto, sin documento de contenido")

	for _, d := range e.docs.docs {
		if d.TemplateID == "t-anexo" {
			assert.Empty(t, d.Content)
			assert.NotEmpty(t, d.FilePath)
			assert.True(t, d.IsFinal)
			assert.False(t, d.RequiresSignature)
		}
	}
}

func TestGenerate_DDJJPorAdherenteAislada(t *testing.T) {
	ddjj := &entity.Template{ID: "t-ddjj", Name: "DDJJ salud",
		DocumentType: entity.DocTypeDDJJ, Body: "{{adherente.nombre}}: {{salud.habitos}} / {{salud.peso}}"}

	e := armarEscenario(t, nuevaVentaAprobada(), []*entity.Template{ddjj},
		[]*entity.Beneficiary{titular(), conyuge()})

	_, err := e.orq.Generate(context.Background(), "venta-1", auditor(), dto.GenerateRequest{})
	require.NoError(t, err)

	var compartida, dedicada *entity.Document
	for _, d := range e.docs.docs {
		if d.BeneficiaryID == "ben-conyuge" {
			dedicada = d
		} else if d.BeneficiaryID == "" {
			compartida = d
		}
	}
	require.NotNil(t, compartida)
	require.NotNil(t, dedicada)

	// La DDJJ compartida rinde contra el titular; la dedicada contra el cónyuge.
	assert.Contains(t, compartida.Content, "fuma")
	assert.Contains(t, compartida.Content, "70 kg")
	assert.Contains(t, dedicada.Content, "consume alcohol")
	assert.Contains(t, dedicada.Content, "82 kg")
	assert.NotContains(t, dedicada.Content, "fuma")
	assert.Equal(t, "DDJJ salud - Luis García", dedicada.Name)
}

func TestGenerate_EnlacesDeFirmaSinDuplicar(t *testing.T) {
	contrato := &entity.Template{ID: "t-contrato", Name: "Contrato",
		DocumentType: entity.DocTypeContrato, Body: "cuerpo"}
	sinFirma := &entity.Beneficiary{ID: "ben-hijo", SaleID: "venta-1", Name: "Mía García",
		Relationship: "hijo/a", RequiresSignature: false}

	e := armarEscenario(t, nuevaVentaAprobada(), []*entity.Template{contrato},
		[]*entity.Beneficiary{titular(), conyuge(), sinFirma})

	res, err := e.orq.Generate(context.Background(), "venta-1", auditor(), dto.GenerateRequest{})
	require.NoError(t, err)

	// titular ("") + cónyuge; el hijo sin firma requerida no recibe enlace
	assert.Equal(t, 2, res.SignatureLinks)
	destinatarios := map[string]bool{}
	for _, l := range e.links.links {
		assert.False(t, destinatarios[l.BeneficiaryID], "enlace duplicado para %q", l.BeneficiaryID)
		destinatarios[l.BeneficiaryID] = true
		assert.NotEmpty(t, l.Token)
		assert.True(t, l.ExpiresAt.After(time.Now()))
	}
	assert.True(t, destinatarios[""])
	assert.True(t, destinatarios["ben-conyuge"])
}

func TestGenerate_DespachaYTransiciona(t *testing.T) {
	contrato := &entity.Template{ID: "t-contrato", Name: "Contrato",
		DocumentType: entity.DocTypeContrato, Body: "cuerpo"}
	e := armarEscenario(t, nuevaVentaAprobada(), []*entity.Template{contrato},
		[]*entity.Beneficiary{titular()})

	_, err := e.orq.Generate(context.Background(), "venta-1", auditor(), dto.GenerateRequest{})
	require.NoError(t, err)

	sale, _ := e.sales.GetByID("venta-1")
	assert.Equal(t, entity.SaleStatusEnviado, sale.Status)
	assert.False(t, sale.GenerationLocked, "el guard se libera al terminar")

	require.Len(t, e.trans.recs, 1)
	assert.Equal(t, entity.SaleStatusAprobado, e.trans.recs[0].PreviousStatus)
	assert.Equal(t, entity.SaleStatusEnviado, e.trans.recs[0].NewStatus)
	assert.Equal(t, workflow.RoleSistema, e.trans.recs[0].ActorRole)

	require.Len(t, e.notifier.sent, 1)
	assert.Equal(t, "vendedor-1", e.notifier.sent[0].UserID)
}

func TestGenerate_RespuestasEstructuradasPisanCodec(t *testing.T) {
	ddjj := &entity.Template{ID: "t-ddjj", Name: "DDJJ",
		DocumentType: entity.DocTypeDDJJ, Body: "Peso: {{salud.peso}}"}
	e := armarEscenario(t, nuevaVentaAprobada(), []*entity.Template{ddjj},
		[]*entity.Beneficiary{titular()})

	res, err := e.orq.Generate(context.Background(), "venta-1", auditor(),
		dto.GenerateRequest{Responses: map[string]string{"salud.peso": "68 kg"}})
	require.NoError(t, err)
	assert.Empty(t, res.Unresolved)

	assert.Contains(t, e.docs.docs[0].Content, "68 kg", "la respuesta estructurada pisa el valor decodificado")
}

func TestGenerate_PlaceholderSinResolverQuedaLiteral(t *testing.T) {
	contrato := &entity.Template{ID: "t-contrato", Name: "Contrato",
		DocumentType: entity.DocTypeContrato, Body: "Hola {{cliente.nombre}} / {{campo.inexistente}}"}
	e := armarEscenario(t, nuevaVentaAprobada(), []*entity.Template{contrato},
		[]*entity.Beneficiary{titular()})

	res, err := e.orq.Generate(context.Background(), "venta-1", auditor(), dto.GenerateRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"campo.inexistente"}, res.Unresolved)
	assert.Contains(t, e.docs.docs[0].Content, "{{campo.inexistente}}")
	assert.Contains(t, e.docs.docs[0].Content, "Ana")
}

func TestGenerate_RequiereAuditoriaAprobada(t *testing.T) {
	sale := nuevaVentaAprobada()
	sale.AuditStatus = entity.AuditInfoSolicitada
	sale.Status = entity.SaleStatusRechazado
	e := armarEscenario(t, sale, nil, nil)

	_, err := e.orq.Generate(context.Background(), "venta-1", auditor(), dto.GenerateRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, e.docs.docs)
}

func TestGenerate_GuardDeGeneracionEnCurso(t *testing.T) {
	sale := nuevaVentaAprobada()
	sale.GenerationLocked = true
	e := armarEscenario(t, sale, nil, []*entity.Beneficiary{titular()})

	_, err := e.orq.Generate(context.Background(), "venta-1", auditor(), dto.GenerateRequest{})
	assert.ErrorIs(t, err, domain.ErrGenerationInProgress)
}

func TestGenerate_PoliticaDeniegaSinCambioDeEstado(t *testing.T) {
	contrato := &entity.Template{ID: "t-contrato", Name: "Contrato",
		DocumentType: entity.DocTypeContrato, Body: "cuerpo"}
	e := armarEscenario(t, nuevaVentaAprobada(), []*entity.Template{contrato},
		[]*entity.Beneficiary{titular()})

	orq := documentos.NewOrchestrator(
		e.sales,
		&fakeClientRepo{c: &entity.Client{ID: "cliente-1", FirstName: "Ana"}},
		&fakePlanRepo{p: &entity.Plan{ID: "plan-1"}},
		&fakeCompanyRepo{c: &entity.Company{ID: "empresa-1", Status: "active"}},
		e.bens, e.templates, e.saleTempls, e.docs, e.links, e.trans,
		denyPolicy{reasons: []string{"empresa suspendida"}},
		e.notifier,
		logger.New(logger.Config{Env: "test", Level: "error"}),
	)

	_, err := orq.Generate(context.Background(), "venta-1", auditor(), dto.GenerateRequest{})
	require.ErrorIs(t, err, domain.ErrPolicyDenied)
	assert.Contains(t, err.Error(), "empresa suspendida")

	// Sin transición: los documentos insertados quedan, el estado no cambia.
	sale, _ := e.sales.GetByID("venta-1")
	assert.Equal(t, entity.SaleStatusAprobado, sale.Status)
	assert.Empty(t, e.trans.recs)
	assert.NotEmpty(t, e.docs.docs)
}

// ─────────────────────────────────────────────────────────────────────────────
// Regeneración
// ─────────────────────────────────────────────────────────────────────────────

func TestRegenerate_PreservaFirmadosYFinales(t *testing.T) {
	contrato := &entity.Template{ID: "t-contrato", Name: "Contrato",
		DocumentType: entity.DocTypeContrato, Body: "cuerpo v2"}
	sale := nuevaVentaAprobada()
	sale.Status = entity.SaleStatusEnviado
	e := armarEscenario(t, sale, []*entity.Template{contrato},
		[]*entity.Beneficiary{titular()})

	firmadoEn := time.Now()
	e.docs.docs = []*entity.Document{
		{ID: "d-firmado", SaleID: "venta-1", TemplateID: "t-contrato", Name: "Contrato",
			FromTemplate: true, Status: entity.DocumentFirmado, SignedAt: &firmadoEn},
		{ID: "d-final", SaleID: "venta-1", TemplateID: "t-anexo-viejo", Name: "condiciones.pdf",
			FromTemplate: true, IsFinal: true, Status: entity.DocumentPendiente},
		{ID: "d-pendiente", SaleID: "venta-1", TemplateID: "t-contrato", Name: "Contrato",
			FromTemplate: true, Status: entity.DocumentPendiente},
	}
	e.links.links = []*entity.SignatureLink{
		{ID: "l1", SaleID: "venta-1", BeneficiaryID: "", Token: "tok-titular",
			ExpiresAt: time.Now().Add(time.Hour)},
	}

	res, err := e.orq.Regenerate(context.Background(), "venta-1", auditor(), dto.GenerateRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Deleted, "solo el pendiente regenerable se borra")
	assert.Equal(t, 0, res.SignatureLinks, "la regeneración nunca emite enlaces nuevos")
	assert.Len(t, e.links.links, 1)

	ids := map[string]bool{}
	for _, d := range e.docs.docs {
		ids[d.ID] = true
	}
	assert.True(t, ids["d-firmado"], "el documento firmado sobrevive")
	assert.True(t, ids["d-final"], "el documento final sobrevive")
	assert.False(t, ids["d-pendiente"])
	assert.Equal(t, 1, res.Documents)

	// La venta ya estaba enviada: la regeneración no vuelve a transicionar.
	sale, _ = e.sales.GetByID("venta-1")
	assert.Equal(t, entity.SaleStatusEnviado, sale.Status)
	assert.Empty(t, e.trans.recs)
}

func TestGenerate_VentaEnviadaExigeRegeneracion(t *testing.T) {
	sale := nuevaVentaAprobada()
	sale.Status = entity.SaleStatusEnviado
	e := armarEscenario(t, sale, nil, []*entity.Beneficiary{titular()})

	_, err := e.orq.Generate(context.Background(), "venta-1", auditor(), dto.GenerateRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
