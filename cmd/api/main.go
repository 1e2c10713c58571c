// @title						MEI Mentor API
// @version					1.0
// @description				Análisis de oportunidad de formalización MEI a partir del historial transaccional.
// @BasePath					/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description				Bearer <token JWT>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/mei-mentor-api/docs"
	"github.com/jhoicas/mei-mentor-api/internal/application/auth"
	"github.com/jhoicas/mei-mentor-api/internal/application/customer"
	"github.com/jhoicas/mei-mentor-api/internal/application/enrichment"
	"github.com/jhoicas/mei-mentor-api/internal/application/opportunity"
	"github.com/jhoicas/mei-mentor-api/internal/application/ports"
	"github.com/jhoicas/mei-mentor-api/internal/application/seed"
	"github.com/jhoicas/mei-mentor-api/internal/domain/repository"
	infraai "github.com/jhoicas/mei-mentor-api/internal/infrastructure/ai"
	"github.com/jhoicas/mei-mentor-api/internal/infrastructure/cache"
	infraexcel "github.com/jhoicas/mei-mentor-api/internal/infrastructure/excel"
	"github.com/jhoicas/mei-mentor-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/mei-mentor-api/internal/infrastructure/pdf"
	"github.com/jhoicas/mei-mentor-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/mei-mentor-api/internal/interfaces/http"
	"github.com/jhoicas/mei-mentor-api/pkg/config"
	"github.com/jhoicas/mei-mentor-api/pkg/logger"
)

// storage repositorios del driver elegido.
type storage struct {
	customers    repository.CustomerRepository
	transactions repository.TransactionRepository
	analyses     repository.OpportunityAnalysisRepository
	operators    repository.OperatorRepository
	seedRunner   seed.SeedTxRunner
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("llm", cfg.LLM.Provider).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	enrichOpts := []enrichment.Option{}
	if provider := newProvider(cfg.LLM); provider != nil {
		enrichOpts = append(enrichOpts, enrichment.WithProvider(provider, cfg.LLM.Timeout()))
	} else {
		log.Warn().Msg("sin proveedor LLM: se usa el perfil de mercado simulado")
	}

	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			// la caché es opcional: el análisis sigue sin ella
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, caché deshabilitada")
		} else {
			defer func(c *redis.Client) { _ = c.Close() }(client)
			enrichOpts = append(enrichOpts, enrichment.WithCache(cache.NewRedisCache(client, cfg.Redis.CacheTTL())))
		}
	}
	enricher := enrichment.NewService(log, enrichOpts...)

	opportunityUC := opportunity.NewUseCase(store.customers, store.transactions, store.analyses, enricher, log)
	reportUC := opportunity.NewReportUseCase(
		opportunityUC, store.transactions, store.analyses,
		infrapdf.NewMarotoPDFGenerator(), infraexcel.NewExcelizeExporter(), log,
	)
	customerUC := customer.NewUseCase(store.customers)
	authUC := auth.NewAuthUseCase(store.operators, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// memoria arranca vacía: siempre se siembra
	if cfg.Seed.OnStartup || cfg.Storage.Driver == config.StorageMemory {
		seeder := seed.NewSeeder(store.seedRunner, store.customers, log)
		res, err := seeder.Run(ctx, seed.DemoProfiles())
		if err != nil {
			log.Fatal().Err(err).Msg("sembrar perfiles de demostración")
		}
		log.Info().Int("created", len(res.Created)).Int("skipped", len(res.Skipped)).Msg("siembra completada")
		if err := seeder.SeedAdmin(ctx, authUC, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("sembrar operador administrador")
		}
	}

	app := httpRouter.NewApp(cfg.App.Name, log)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MEI Mentor API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		OpportunityUC: opportunityUC,
		ReportUC:      reportUC,
		CustomerUC:    customerUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		s := memory.NewStore()
		return &storage{
			customers:    s.Customers(),
			transactions: s.Transactions(),
			analyses:     s.Analyses(),
			operators:    s.Operators(),
			seedRunner:   s,
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &storage{
		customers:    postgres.NewCustomerRepository(pool),
		transactions: postgres.NewTransactionRepository(pool),
		analyses:     postgres.NewOpportunityAnalysisRepository(pool),
		operators:    postgres.NewOperatorRepository(pool),
		seedRunner:   postgres.NewTxRunner(pool),
		close:        pool.Close,
	}, nil
}

// newProvider devuelve nil si no hay proveedor configurado con API key.
func newProvider(cfg config.LLMConfig) ports.MarketIntelligenceProvider {
	if !cfg.Enabled() {
		return nil
	}
	switch cfg.Provider {
	case config.LLMProviderOpenAI:
		return infraai.NewOpenAIService(infraai.OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.OpenAIModel,
			Temperature: cfg.OpenAITemperature,
			MaxTokens:   cfg.OpenAIMaxTokens,
			BaseURL:     cfg.OpenAIBaseURL,
		})
	case config.LLMProviderAnthropic:
		return infraai.NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.AnthropicBaseURL)
	}
	return nil
}
