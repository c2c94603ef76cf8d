package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/affiliate-portal/internal/application/auth"
	"github.com/tu-usuario/affiliate-portal/internal/application/companies"
	"github.com/tu-usuario/affiliate-portal/internal/application/conversions"
	"github.com/tu-usuario/affiliate-portal/internal/application/links"
	"github.com/tu-usuario/affiliate-portal/internal/application/reports"
	"github.com/tu-usuario/affiliate-portal/pkg/logger"
	"github.com/tu-usuario/affiliate-portal/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CompanyUC     *companies.CompanyUseCase
	LinkUC        *links.LinkUseCase
	ConversionUC  *conversions.ConversionUseCase
	ReportUC      *reports.ReportUseCase
	Metrics       *metrics.Metrics
	Log           *logger.Logger
	JWTSecret     string
	WebhookSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics, deps.Log)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Tracking de clics (público: lo invoca la página del anunciante)
	linkHandler := NewLinkHandler(deps.LinkUC, deps.Metrics, deps.Log)
	app.Post("/links/track/:trackingCode", linkHandler.Track)

	// Webhooks del anunciante (secreto compartido, sin JWT)
	webhookHandler := NewWebhookHandler(deps.ConversionUC, deps.Metrics, deps.Log)
	webhooks := app.Group("/webhooks", WebhookAuthMiddleware(deps.WebhookSecret))
	webhooks.Post("/conversions", webhookHandler.RecordConversion)
	webhooks.Patch("/conversions/:id/status", webhookHandler.UpdateStatus)

	// Rutas protegidas (requieren Bearer Token)
	protected := app.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de empresas (protegido)
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Log)
	companiesGroup := protected.Group("/companies")
	companiesGroup.Get("/", companyHandler.List)
	companiesGroup.Get("/categories", companyHandler.Categories)
	companiesGroup.Get("/:id", companyHandler.GetByID)

	// Enlaces de afiliado (protegido)
	linksGroup := protected.Group("/links")
	linksGroup.Post("/generate", linkHandler.Generate)
	linksGroup.Get("/my-links", linkHandler.MyLinks)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.ReportUC, deps.Log)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/chart-data", dashboardHandler.ChartData)

	// Reportes (protegido)
	reportHandler := NewReportHandler(deps.ReportUC, deps.Log)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/generate", reportHandler.Generate)
	reportsGroup.Get("/monthly", reportHandler.Monthly)
	reportsGroup.Get("/saved", reportHandler.Saved)
}
