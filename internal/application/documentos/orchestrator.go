package documentos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seguroplus/polizas-api/internal/application/dto"
	"github.com/seguroplus/polizas-api/internal/application/ports"
	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/plantilla"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
	"github.com/seguroplus/polizas-api/internal/domain/workflow"
	"github.com/seguroplus/polizas-api/pkg/logger"
)

// Orchestrator materializa el set completo de documentos firmables de una
// venta aprobada a partir de sus plantillas asociadas:
//
//	contexto titular → contrato/anexos → DDJJ por adherente → adjuntos → enlaces de firma → enviado
//
// Invariante central de deduplicación: cada plantilla aporta exactamente un
// tipo de artefacto por ciclo — documento de contenido XOR documento(s) por
// adjunto, nunca ambos. La regeneración es la vía de recuperación diseñada
// ante ciclos abortados: no hay rollback transaccional de documentos ya
// insertados.
type Orchestrator struct {
	saleRepo         repository.SaleRepository
	clientRepo       repository.ClientRepository
	planRepo         repository.PlanRepository
	companyRepo      repository.CompanyRepository
	beneficiaryRepo  repository.BeneficiaryRepository
	templateRepo     repository.TemplateRepository
	saleTemplateRepo repository.SaleTemplateRepository
	documentRepo     repository.DocumentRepository
	linkRepo         repository.SignatureLinkRepository
	transitionRepo   repository.TransitionRepository
	policy           ports.TransitionPolicy
	notifier         ports.NotificationSink
	log              *logger.Logger
}

// NewOrchestrator construye el orquestador con todas sus dependencias.
func NewOrchestrator(
	saleRepo repository.SaleRepository,
	clientRepo repository.ClientRepository,
	planRepo repository.PlanRepository,
	companyRepo repository.CompanyRepository,
	beneficiaryRepo repository.BeneficiaryRepository,
	templateRepo repository.TemplateRepository,
	saleTemplateRepo repository.SaleTemplateRepository,
	documentRepo repository.DocumentRepository,
	linkRepo repository.SignatureLinkRepository,
	transitionRepo repository.TransitionRepository,
	policy ports.TransitionPolicy,
	notifier ports.NotificationSink,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		saleRepo:         saleRepo,
		clientRepo:       clientRepo,
		planRepo:         planRepo,
		companyRepo:      companyRepo,
		beneficiaryRepo:  beneficiaryRepo,
		templateRepo:     templateRepo,
		saleTemplateRepo: saleTemplateRepo,
		documentRepo:     documentRepo,
		linkRepo:         linkRepo,
		transitionRepo:   transitionRepo,
		policy:           policy,
		notifier:         notifier,
		log:              log,
	}
}

// Vigencia de los enlaces de firma emitidos.
const signatureLinkTTL = 30 * 24 * time.Hour

// Generate ejecuta un ciclo completo de generación sobre una venta aprobada
// y despacha los documentos para firma (aprobado_para_templates → enviado).
func (o *Orchestrator) Generate(ctx context.Context, saleID string, actor workflow.Actor, in dto.GenerateRequest) (*dto.GenerationResult, error) {
	return o.run(ctx, saleID, actor, in.Responses, false)
}

// Regenerate repite el ciclo preservando lo firmado y lo final: borra primero
// los documentos regenerables, no emite enlaces de firma nuevos y no vuelve a
// transicionar una venta ya enviada.
func (o *Orchestrator) Regenerate(ctx context.Context, saleID string, actor workflow.Actor, in dto.GenerateRequest) (*dto.GenerationResult, error) {
	return o.run(ctx, saleID, actor, in.Responses, true)
}

func (o *Orchestrator) run(ctx context.Context, saleID string, actor workflow.Actor, responses map[string]string, regen bool) (*dto.GenerationResult, error) {
	// ═══════════════════════════════════════════════════════════════════════
	// 0. Venta aprobada + guard de generación en curso
	// ═══════════════════════════════════════════════════════════════════════
	sale, err := o.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.AuditStatus != entity.AuditAprobado {
		return nil, fmt.Errorf("%w: la venta no tiene auditoría aprobada", domain.ErrConflict)
	}
	switch sale.Status {
	case entity.SaleStatusAprobado:
		// generación inicial o regeneración previa al envío
	case entity.SaleStatusEnviado:
		if !regen {
			return nil, fmt.Errorf("%w: la venta ya fue enviada; use regeneración", domain.ErrConflict)
		}
	default:
		return nil, fmt.Errorf("%w: estado %s no admite generación", domain.ErrConflict, sale.Status)
	}

	ok, err := o.saleRepo.SetGenerationLock(saleID, true)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrGenerationInProgress
	}
	defer func() {
		if _, err := o.saleRepo.SetGenerationLock(saleID, false); err != nil {
			o.log.Error().Err(err).Str("sale_id", saleID).Msg("no se pudo liberar el guard de generación")
		}
	}()

	result := &dto.GenerationResult{SaleID: saleID}
	if regen {
		deleted, err := o.documentRepo.DeleteRegenerable(saleID)
		if err != nil {
			return nil, fmt.Errorf("borrar documentos regenerables: %w", err)
		}
		result.Deleted = deleted
	}

	// ═══════════════════════════════════════════════════════════════════════
	// 1. Datos frescos: venta con cliente/plan/empresa y adherentes del store
	//    (nunca estado cacheado: la DDJJ pudo cambiar desde la aprobación)
	// ═══════════════════════════════════════════════════════════════════════
	client, err := o.clientRepo.GetByID(sale.ClientID)
	if err != nil || client == nil {
		return nil, fmt.Errorf("%w: la venta no tiene cliente", domain.ErrInvalidInput)
	}
	plan, err := o.planRepo.GetByID(sale.PlanID)
	if err != nil || plan == nil {
		return nil, fmt.Errorf("%w: la venta no tiene plan", domain.ErrInvalidInput)
	}
	company, err := o.companyRepo.GetByID(sale.CompanyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	beneficiarios, err := o.beneficiaryRepo.ListBySale(saleID)
	if err != nil {
		return nil, fmt.Errorf("cargar adherentes: %w", err)
	}

	// ═══════════════════════════════════════════════════════════════════════
	// 2. Contexto base (titular). Las respuestas estructuradas del
	//    cuestionario pisan las claves derivadas; en su ausencia los
	//    placeholders de salud salen del texto codificado del titular vía el
	//    codec (único punto de parseo de la DDJJ).
	// ═══════════════════════════════════════════════════════════════════════
	baseCtx := plantilla.NuevoContexto(plantilla.DatosContexto{
		Cliente:       client,
		Plan:          plan,
		Empresa:       company,
		Venta:         sale,
		Beneficiarios: beneficiarios,
		Respuestas:    responses,
	})

	saleTemplates, err := o.saleTemplateRepo.ListBySale(saleID)
	if err != nil {
		return nil, fmt.Errorf("cargar plantillas de la venta: %w", err)
	}

	now := time.Now()
	var unresolved []string

	// ═══════════════════════════════════════════════════════════════════════
	// 3. Por plantilla: con cuerpo → documento de contenido (firmable salvo
	//    anexo). Sin cuerpo → se difiere al paso 5 (adjuntos), garantizando
	//    una sola instancia de artefacto por plantilla.
	// ═══════════════════════════════════════════════════════════════════════
	templates := make([]*entity.Template, 0, len(saleTemplates))
	conContenido := make(map[string]bool, len(saleTemplates)) // template ID → emitió contenido
	for _, st := range saleTemplates {
		t, err := o.templateRepo.GetByID(st.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("cargar plantilla %s: %w", st.TemplateID, err)
		}
		if t == nil {
			continue
		}
		templates = append(templates, t)

		if t.Body == "" {
			continue
		}
		tipo := t.Type()
		r := plantilla.Interpolar(t.Body, baseCtx)
		unresolved = append(unresolved, o.reportarSinResolver(saleID, t.Name, r.SinResolver)...)

		doc := &entity.Document{
			ID:                uuid.New().String(),
			SaleID:            saleID,
			TemplateID:        t.ID,
			Name:              t.Name,
			DocumentType:      tipo,
			Content:           r.Texto,
			RequiresSignature: tipo != entity.DocTypeAnexo,
			IsFinal:           tipo == entity.DocTypeAnexo,
			FromTemplate:      true,
			Status:            entity.DocumentPendiente,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := o.documentRepo.Create(doc); err != nil {
			return nil, fmt.Errorf("insertar documento %s: %w", t.Name, err)
		}
		conContenido[t.ID] = true
		result.Documents++
	}

	// ═══════════════════════════════════════════════════════════════════════
	// 4. DDJJ dedicadas: una por adherente no titular con firma requerida,
	//    renderizada contra la declaración de ESA persona (sin fuga de
	//    contexto entre adherentes).
	// ═══════════════════════════════════════════════════════════════════════
	for _, t := range templates {
		if t.Body == "" || t.Type() != entity.DocTypeDDJJ {
			continue
		}
		for _, b := range beneficiarios {
			if b.IsPrimary || !b.RequiresSignature {
				continue
			}
			r := plantilla.Interpolar(t.Body, baseCtx.ConBeneficiario(b, nil))
			unresolved = append(unresolved, o.reportarSinResolver(saleID, t.Name+" ("+b.Name+")", r.SinResolver)...)

			doc := &entity.Document{
				ID:                uuid.New().String(),
				SaleID:            saleID,
				TemplateID:        t.ID,
				BeneficiaryID:     b.ID,
				Name:              t.Name + " - " + b.Name,
				DocumentType:      entity.DocTypeDDJJ,
				Content:           r.Texto,
				RequiresSignature: true,
				FromTemplate:      true,
				Status:            entity.DocumentPendiente,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := o.documentRepo.Create(doc); err != nil {
				return nil, fmt.Errorf("insertar DDJJ de %s: %w", b.Name, err)
			}
			result.Documents++
		}
	}

	// ═══════════════════════════════════════════════════════════════════════
	// 5. Adjuntos: solo de plantillas que NO emitieron contenido en el paso 3.
	//    Anexos finales referenciando el archivo, nunca contenido inline.
	// ═══════════════════════════════════════════════════════════════════════
	for _, t := range templates {
		if conContenido[t.ID] {
			continue
		}
		for _, a := range t.Attachments {
			doc := &entity.Document{
				ID:           uuid.New().String(),
				SaleID:       saleID,
				TemplateID:   t.ID,
				Name:         a.FileName,
				DocumentType: entity.DocTypeAnexo,
				FilePath:     a.FilePath,
				IsFinal:      true,
				FromTemplate: true,
				Status:       entity.DocumentPendiente,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := o.documentRepo.Create(doc); err != nil {
				return nil, fmt.Errorf("insertar anexo %s: %w", a.FileName, err)
			}
			result.Documents++
		}
	}

	// ═══════════════════════════════════════════════════════════════════════
	// 6. Enlaces de firma: titular + adherentes con firma requerida. Nunca se
	//    duplican: si ya existe un enlace para la persona, se conserva.
	// ═══════════════════════════════════════════════════════════════════════
	existentes, err := o.linkRepo.ListBySale(saleID)
	if err != nil {
		return nil, fmt.Errorf("cargar enlaces de firma: %w", err)
	}
	tieneEnlace := make(map[string]bool, len(existentes))
	for _, l := range existentes {
		tieneEnlace[l.BeneficiaryID] = true
	}
	crearEnlace := func(beneficiaryID string) error {
		if regen || tieneEnlace[beneficiaryID] {
			return nil
		}
		l := &entity.SignatureLink{
			ID:            uuid.New().String(),
			SaleID:        saleID,
			BeneficiaryID: beneficiaryID,
			Token:         uuid.New().String(),
			ExpiresAt:     now.Add(signatureLinkTTL),
			CreatedAt:     now,
		}
		if err := o.linkRepo.Create(l); err != nil {
			return err
		}
		result.SignatureLinks++
		return nil
	}
	if err := crearEnlace(""); err != nil { // titular
		return nil, fmt.Errorf("crear enlace de firma del titular: %w", err)
	}
	for _, b := range beneficiarios {
		if b.IsPrimary || !b.RequiresSignature {
			continue
		}
		if err := crearEnlace(b.ID); err != nil {
			return nil, fmt.Errorf("crear enlace de firma de %s: %w", b.Name, err)
		}
	}

	// ═══════════════════════════════════════════════════════════════════════
	// 7. Política de transición y despacho. Si la política deniega, se aborta
	//    sin cambio de estado (los documentos insertados quedan; la
	//    regeneración es la vía de recuperación).
	// ═══════════════════════════════════════════════════════════════════════
	if sale.Status == entity.SaleStatusAprobado {
		check, err := o.policy.Check(ctx, saleID, entity.SaleStatusEnviado, actor.Role)
		if err != nil {
			return nil, fmt.Errorf("consultar política de transición: %w", err)
		}
		if !check.Allowed {
			return nil, fmt.Errorf("%w: %v", domain.ErrPolicyDenied, check.Reasons)
		}
		rec, err := workflow.Apply(sale, entity.SaleStatusEnviado,
			workflow.Actor{ID: actor.ID, Role: workflow.RoleSistema},
			"documentos generados y despachados para firma",
			map[string]string{"documentos": fmt.Sprint(result.Documents)})
		if err != nil {
			return nil, err
		}
		if err := o.saleRepo.Update(sale); err != nil {
			return nil, fmt.Errorf("actualizar venta: %w", err)
		}
		if err := o.transitionRepo.Append(rec); err != nil {
			return nil, fmt.Errorf("registrar transición: %w", err)
		}

		_ = o.notifier.Notify(ctx, ports.Notification{
			UserID:   sale.SalespersonID,
			Title:    "Documentos enviados para firma",
			Body:     fmt.Sprintf("Se generaron %d documentos de la venta.", result.Documents),
			Category: entity.NotifDocumento,
			DeepLink: "/ventas/" + saleID + "/documentos",
		})
	}

	result.Unresolved = unresolved
	return result, nil
}

// reportarSinResolver registra cada placeholder sin resolver como evento
// trazable asociado a la venta. El documento igual se produce con los
// marcadores visibles para que un humano corrija el dato de origen.
func (o *Orchestrator) reportarSinResolver(saleID, docName string, keys []string) []string {
	for _, k := range keys {
		o.log.Warn().
			Str("sale_id", saleID).
			Str("documento", docName).
			Str("placeholder", k).
			Msg("placeholder sin resolver en la generación")
	}
	return keys
}
