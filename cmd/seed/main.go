// seed aplica el esquema y crea los clientes de demostración y el operador administrador
// en PostgreSQL. Es idempotente: los CPF ya existentes se omiten.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL o DB_*, ADMIN_EMAIL, ADMIN_PASSWORD).
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/jhoicas/mei-mentor-api/internal/application/auth"
	"github.com/jhoicas/mei-mentor-api/internal/application/seed"
	"github.com/jhoicas/mei-mentor-api/internal/infrastructure/postgres"
	"github.com/jhoicas/mei-mentor-api/pkg/config"
	"github.com/jhoicas/mei-mentor-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	customers := postgres.NewCustomerRepository(pool)
	seeder := seed.NewSeeder(postgres.NewTxRunner(pool), customers, log)
	res, err := seeder.Run(ctx, seed.DemoProfiles())
	if err != nil {
		log.Error().Err(err).Msg("sembrar perfiles")
		os.Exit(1)
	}
	log.Info().
		Str("created", strings.Join(res.Created, ",")).
		Str("skipped", strings.Join(res.Skipped, ",")).
		Msg("perfiles de demostración")

	authUC := auth.NewAuthUseCase(postgres.NewOperatorRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err := seeder.SeedAdmin(ctx, authUC, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
		log.Error().Err(err).Msg("sembrar operador")
		os.Exit(1)
	}
}
