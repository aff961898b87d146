package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/tienda-admin/docs"
	appanalytics "github.com/jhoicas/tienda-admin/internal/application/analytics"
	"github.com/jhoicas/tienda-admin/internal/application/audit"
	"github.com/jhoicas/tienda-admin/internal/application/auth"
	"github.com/jhoicas/tienda-admin/internal/application/usecase"
	infrakafka "github.com/jhoicas/tienda-admin/internal/infrastructure/kafka"
	"github.com/jhoicas/tienda-admin/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/tienda-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-admin/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/tienda-admin/internal/interfaces/http"
	"github.com/jhoicas/tienda-admin/pkg/config"
	"github.com/jhoicas/tienda-admin/pkg/logger"
)

// @title       Tienda Admin API
// @version     1.0
// @description Panel administrativo: catálogo, productos, envíos, administradores y registro de acciones.
// @BasePath    /
// @securityDefinitions.apikey Bearer
// @in          header
// @name        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
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

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	metrics := observability.NewCollector("tienda_admin")

	categoryRepo := postgres.NewCategoryRepository(pool)
	subcategoryRepo := postgres.NewSubcategoryRepository(pool)
	iconRepo := postgres.NewIconRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	shippingRepo := postgres.NewShippingRepository(pool)
	adminRepo := postgres.NewAdminRepository(pool)
	adminLogRepo := postgres.NewAdminLogRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Registro de acciones: cola asíncrona, opcionalmente replicada a Kafka.
	auditOpts := []audit.Option{audit.WithMetrics(metrics)}
	var producer *infrakafka.Producer
	if cfg.Kafka.Enabled() {
		producer = infrakafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		auditOpts = append(auditOpts, audit.WithPublisher(producer))
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.AuditTopic).Msg("publicación de auditoría en Kafka activa")
	}
	auditLog := audit.NewLogger(adminLogRepo, log.Component("audit"), audit.Config{
		QueueSize:    cfg.Audit.QueueSize,
		WriteTimeout: cfg.Audit.WriteTimeout,
	}, auditOpts...)

	images, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxBytes(), metrics)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Upload.Dir).Msg("directorio de imágenes")
	}

	catalogUC := usecase.NewCatalogUseCase(categoryRepo, subcategoryRepo, iconRepo, auditLog)
	shippingUC := usecase.NewShippingUseCase(shippingRepo, auditLog)
	adminUC := usecase.NewAdminUseCase(adminRepo, auditLog)
	productUC := usecase.NewProductUseCase(productRepo, subcategoryRepo, txRunner, images, auditLog)
	adminLogUC := usecase.NewAdminLogUseCase(adminLogRepo, infrapdf.NewMarotoReportGenerator(cfg.App.Name))
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo)
	authUC := auth.NewAuthUseCase(adminRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		BodyLimit:    int(cfg.Upload.MaxBytes())*5 + 1024*1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), metrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Static("/uploads", images.Dir())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CatalogUC:   catalogUC,
		ShippingUC:  shippingUC,
		AdminUC:     adminUC,
		ProductUC:   productUC,
		AdminLogUC:  adminLogUC,
		DashboardUC: dashboardUC,
		Images:      images,
		JWTSecret:   cfg.JWT.Secret,
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
	// Después del servidor: ninguna petición nueva puede encolar entradas.
	if err := auditLog.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("vaciado de la cola de auditoría")
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error().Err(err).Msg("cierre del productor Kafka")
		}
	}

	log.Info().Msg("aplicación detenida")
}
