package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seguroplus/polizas-api/internal/application/auditoria"
	"github.com/seguroplus/polizas-api/internal/application/auth"
	"github.com/seguroplus/polizas-api/internal/application/documentos"
	"github.com/seguroplus/polizas-api/internal/application/notificaciones"
	"github.com/seguroplus/polizas-api/internal/application/plantillas"
	"github.com/seguroplus/polizas-api/internal/application/ventas"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	VentaUC        *ventas.SaleUseCase
	BeneficiarioUC *ventas.BeneficiaryUseCase
	AuditUC        *auditoria.AuditUseCase
	PlantillaUC    *plantillas.TemplateUseCase
	Orquestador    *documentos.Orchestrator
	ConsultaUC     *documentos.ConsultaUseCase
	FirmaUC        *documentos.FirmaUseCase
	NotificacionUC *notificaciones.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Portal de firma (público, autenticado por token de enlace)
	firmaHandler := NewFirmaHandler(deps.FirmaUC)
	firma := api.Group("/firma")
	firma.Get("/:token/documentos", firmaHandler.Pending)
	firma.Post("/:token/documentos/:documentId", firmaHandler.Sign)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	soloVendedor := RequireRole(entity.RoleVendedor, entity.RoleAdmin)
	soloAuditor := RequireRole(entity.RoleAuditor, entity.RoleAdmin)
	cualquierRol := RequireRole(entity.RoleVendedor, entity.RoleAuditor, entity.RoleAdmin)

	// Ventas (vendedor)
	ventasGroup := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentaUC, deps.BeneficiarioUC)
	ventasGroup.Post("/", soloVendedor, ventaHandler.Create)
	ventasGroup.Get("/", cualquierRol, ventaHandler.List)
	ventasGroup.Get("/:id", cualquierRol, ventaHandler.GetByID)
	ventasGroup.Put("/:id", soloVendedor, ventaHandler.Update)
	ventasGroup.Get("/:id/historial", cualquierRol, ventaHandler.History)
	ventasGroup.Post("/:id/enviar", soloVendedor, ventaHandler.Submit)
	ventasGroup.Post("/:id/cancelar", soloVendedor, ventaHandler.Cancel)

	// Adherentes de la venta (vendedor)
	ventasGroup.Post("/:id/adherentes", soloVendedor, ventaHandler.AddBeneficiary)
	ventasGroup.Get("/:id/adherentes", cualquierRol, ventaHandler.ListBeneficiaries)
	ventasGroup.Delete("/:id/adherentes/:beneficiaryId", soloVendedor, ventaHandler.RemoveBeneficiary)
	ventasGroup.Put("/:id/adherentes/:beneficiaryId/salud", soloVendedor, ventaHandler.DeclareHealth)

	// Auditoría (auditor)
	auditGroup := protected.Group("/auditoria")
	auditHandler := NewAuditoriaHandler(deps.AuditUC)
	auditGroup.Post("/:id/tomar", soloAuditor, auditHandler.Take)
	auditGroup.Post("/:id/aprobar", soloAuditor, auditHandler.Approve)
	auditGroup.Post("/:id/rechazar", soloAuditor, auditHandler.Reject)
	auditGroup.Post("/:id/solicitar-info", soloAuditor, auditHandler.RequestInfo)
	auditGroup.Get("/:id/solicitudes", cualquierRol, auditHandler.ListInfoRequests)
	auditGroup.Post("/:id/completar", soloAuditor, auditHandler.Complete)

	// Respuesta a solicitudes de información (vendedor)
	solicitudes := protected.Group("/solicitudes")
	solicitudes.Post("/:id/responder", soloVendedor, auditHandler.RespondInfo)

	// Plantillas (admin/auditor)
	plantillasGroup := protected.Group("/plantillas")
	plantillaHandler := NewPlantillaHandler(deps.PlantillaUC)
	plantillasGroup.Post("/", soloAuditor, plantillaHandler.Create)
	plantillasGroup.Get("/", cualquierRol, plantillaHandler.List)
	plantillasGroup.Get("/:id", cualquierRol, plantillaHandler.GetByID)
	plantillasGroup.Post("/:id/adjuntos", soloAuditor, plantillaHandler.AddAttachment)
	plantillasGroup.Delete("/:id", soloAuditor, plantillaHandler.Delete)

	// Asociación plantilla-venta (admin/auditor)
	ventasGroup.Post("/:id/plantillas/:templateId", soloAuditor, plantillaHandler.AssignToSale)
	ventasGroup.Delete("/:id/plantillas/:templateId", soloAuditor, plantillaHandler.UnassignFromSale)

	// Documentos (generación restringida al auditor)
	documentoHandler := NewDocumentoHandler(deps.Orquestador, deps.ConsultaUC)
	ventasGroup.Post("/:id/documentos/generar", soloAuditor, documentoHandler.Generate)
	ventasGroup.Post("/:id/documentos/regenerar", soloAuditor, documentoHandler.Regenerate)
	ventasGroup.Get("/:id/documentos", cualquierRol, documentoHandler.ListBySale)

	// Notificaciones (cualquier usuario autenticado)
	notifGroup := protected.Group("/notificaciones")
	notifHandler := NewNotificacionHandler(deps.NotificacionUC)
	notifGroup.Get("/", cualquierRol, notifHandler.List)
	notifGroup.Post("/:id/leer", cualquierRol, notifHandler.MarkRead)
}
