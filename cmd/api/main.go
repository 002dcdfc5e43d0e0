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
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/inventario-docs/docs"
	appanalytics "github.com/jhoicas/inventario-docs/internal/application/analytics"
	"github.com/jhoicas/inventario-docs/internal/application/inventory"
	"github.com/jhoicas/inventario-docs/internal/application/mobilesync"
	"github.com/jhoicas/inventario-docs/internal/application/usecase"
	"github.com/jhoicas/inventario-docs/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventario-docs/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-docs/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/inventario-docs/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/inventario-docs/internal/interfaces/http"
	"github.com/jhoicas/inventario-docs/pkg/config"
	"github.com/jhoicas/inventario-docs/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title						Inventario Docs API
// @version					1.0
// @description				Documentos de inventario: recepciones, transferencias, conteos y reportes de diferencias.
// @BasePath					/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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

	if cfg.Migrations.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	orgRepo := postgres.NewOrganizationRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	docRepo := postgres.NewDocumentRepository(pool)
	itemRepo := postgres.NewDocumentItemRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	sessionRepo := postgres.NewMobileSessionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	var recorder inventory.Recorder = inventory.NopRecorder{}
	if cfg.Metrics.Enabled {
		prom, err := metrics.NewPrometheusRecorder(prometheus.DefaultRegisterer)
		if err != nil {
			log.Fatal().Err(err).Msg("registrar métricas")
		}
		recorder = prom
	}

	organizationUC := usecase.NewOrganizationUseCase(orgRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	documentUC := inventory.NewDocumentUseCase(txRunner, docRepo, itemRepo, warehouseRepo, recorder, log.Component("documents"))

	reportUC := appanalytics.NewReportUseCase(reportRepo, orgRepo, cfg.Reports.DefaultTop, log.Component("reports"),
		appanalytics.Exporter{
			Format:      appanalytics.FormatPDF,
			ContentType: "application/pdf",
			Renderer:    infrapdf.NewMarotoPDFGenerator(),
		},
		appanalytics.Exporter{
			Format:      appanalytics.FormatXLSX,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Renderer:    infraxlsx.NewExcelizeExporter(),
		},
	)
	syncUC := mobilesync.NewUseCase(sessionRepo, orgRepo, warehouseRepo, productRepo, documentUC, cfg.Sync.DocumentLimit, log.Component("sync"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Docs API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrganizationUC: organizationUC,
		WarehouseUC:    warehouseUC,
		ProductUC:      productUC,
		DocumentUC:     documentUC,
		ReportUC:       reportUC,
		SyncUC:         syncUC,
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
