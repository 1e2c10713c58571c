package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/mei-mentor-api/internal/application/auth"
	"github.com/jhoicas/mei-mentor-api/internal/application/customer"
	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/application/opportunity"
	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
	"github.com/jhoicas/mei-mentor-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OpportunityUC *opportunity.UseCase
	ReportUC      *opportunity.ReportUseCase
	CustomerUC    *customer.UseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// NewApp crea la app Fiber con el ErrorHandler común, recover, log de requests y /health.
func NewApp(appName string, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: ErrorHandler(log),
		// el análisis puede esperar al proveedor LLM (LLM_TIMEOUT_SECONDS)
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log.Named("http")))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: appName})
	})
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Análisis de oportunidad (público)
	oppHandler := NewOpportunityHandler(deps.OpportunityUC, deps.ReportUC)
	api.Get("/opportunity/:taxId", oppHandler.Analyze)

	// Rutas protegidas (requieren Bearer Token)
	authn := AuthMiddleware(deps.JWTSecret)
	anyOperator := RequireRole(entity.RoleAdmin, entity.RoleAnalyst)
	adminOnly := RequireRole(entity.RoleAdmin)

	api.Get("/opportunity/:taxId/latest", authn, anyOperator, oppHandler.Latest)
	api.Get("/opportunity/:taxId/report", authn, anyOperator, oppHandler.Report)
	api.Get("/analyses/export", authn, anyOperator, oppHandler.Export)

	customers := api.Group("/customers", authn, anyOperator)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:taxId", customerHandler.GetByTaxID)
	customers.Put("/:taxId/income", adminOnly, customerHandler.UpdateIncome)
}
