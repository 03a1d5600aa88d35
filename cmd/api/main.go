package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/seguroplus/polizas-api/internal/application/auditoria"
	"github.com/seguroplus/polizas-api/internal/application/auth"
	"github.com/seguroplus/polizas-api/internal/application/documentos"
	"github.com/seguroplus/polizas-api/internal/application/notificaciones"
	"github.com/seguroplus/polizas-api/internal/application/plantillas"
	"github.com/seguroplus/polizas-api/internal/application/ventas"
	"github.com/seguroplus/polizas-api/internal/infrastructure/postgres"
	"github.com/seguroplus/polizas-api/internal/infrastructure/storage"
	httpRouter "github.com/seguroplus/polizas-api/internal/interfaces/http"
	"github.com/seguroplus/polizas-api/pkg/config"
	"github.com/seguroplus/polizas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	beneficiaryRepo := postgres.NewBeneficiaryRepository(pool)
	templateRepo := postgres.NewTemplateRepository(pool)
	saleTemplateRepo := postgres.NewSaleTemplateRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	linkRepo := postgres.NewSignatureLinkRepository(pool)
	transitionRepo := postgres.NewTransitionRepository(pool)
	infoRepo := postgres.NewInfoRequestRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	fileStore, err := storage.NewS3FileStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de archivos")
	}

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	ventaUC := ventas.NewSaleUseCase(saleRepo, beneficiaryRepo, clientRepo, planRepo, transitionRepo)
	beneficiarioUC := ventas.NewBeneficiaryUseCase(saleRepo, beneficiaryRepo)
	auditUC := auditoria.NewAuditUseCase(saleRepo, transitionRepo, infoRepo, notificationRepo)
	plantillaUC := plantillas.NewTemplateUseCase(templateRepo, saleTemplateRepo, saleRepo, fileStore)

	urlTTL := time.Duration(cfg.Storage.URLTTLMinutes) * time.Minute
	policy := documentos.NewDefaultPolicy(saleRepo, companyRepo)
	orquestador := documentos.NewOrchestrator(
		saleRepo, clientRepo, planRepo, companyRepo,
		beneficiaryRepo, templateRepo, saleTemplateRepo,
		documentRepo, linkRepo, transitionRepo,
		policy, notificationRepo, log,
	)
	consultaUC := documentos.NewConsultaUseCase(saleRepo, documentRepo, fileStore, urlTTL)
	firmaUC := documentos.NewFirmaUseCase(saleRepo, documentRepo, linkRepo, transitionRepo, notificationRepo)
	notificacionUC := notificaciones.NewUseCase(notificationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pólizas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		VentaUC:        ventaUC,
		BeneficiarioUC: beneficiarioUC,
		AuditUC:        auditUC,
		PlantillaUC:    plantillaUC,
		Orquestador:    orquestador,
		ConsultaUC:     consultaUC,
		FirmaUC:        firmaUC,
		NotificacionUC: notificacionUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
