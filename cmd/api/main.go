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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tu-usuario/affiliate-portal/internal/application/auth"
	"github.com/tu-usuario/affiliate-portal/internal/application/companies"
	"github.com/tu-usuario/affiliate-portal/internal/application/conversions"
	"github.com/tu-usuario/affiliate-portal/internal/application/links"
	"github.com/tu-usuario/affiliate-portal/internal/application/reports"
	infrapdf "github.com/tu-usuario/affiliate-portal/internal/infrastructure/pdf"
	"github.com/tu-usuario/affiliate-portal/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/affiliate-portal/internal/interfaces/http"
	"github.com/tu-usuario/affiliate-portal/pkg/config"
	"github.com/tu-usuario/affiliate-portal/pkg/logger"
	"github.com/tu-usuario/affiliate-portal/pkg/metrics"
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

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	linkRepo := postgres.NewLinkRepository(pool)
	convRepo := postgres.NewConversionRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mtr := metrics.New()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := companies.NewCompanyUseCase(companyRepo)
	linkUC := links.NewLinkUseCase(linkRepo, companyRepo)
	conversionUC := conversions.NewConversionUseCase(txRunner, linkRepo, companyRepo, convRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := reports.NewReportUseCase(linkRepo, convRepo, reportRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(mtr.HTTPMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Affiliate Portal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CompanyUC:     companyUC,
		LinkUC:        linkUC,
		ConversionUC:  conversionUC,
		ReportUC:      reportUC,
		Metrics:       mtr,
		Log:           log,
		JWTSecret:     cfg.JWT.Secret,
		WebhookSecret: cfg.Webhook.Secret,
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
