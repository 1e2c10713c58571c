// Package seed carga los perfiles de demostración y el operador inicial.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
	"github.com/jhoicas/mei-mentor-api/internal/domain/repository"
	"github.com/jhoicas/mei-mentor-api/pkg/logger"
)

// SeedTxRunner ejecuta fn con repositorios atados a una misma transacción.
type SeedTxRunner interface {
	RunSeed(ctx context.Context, fn func(
		customers repository.CustomerRepository,
		transactions repository.TransactionRepository,
	) error) error
}

// OperatorRegistrar registra el operador inicial (implementado por auth.AuthUseCase).
type OperatorRegistrar interface {
	RegisterOperator(ctx context.Context, email, password, name, role string) (*dto.OperatorResponse, error)
}

// Profile cliente de demostración con sus transacciones.
type Profile struct {
	Name           string
	TaxID          string
	DeclaredIncome decimal.Decimal
	Transactions   func(customerID string, now time.Time) []*entity.Transaction
}

// Seeder crea los perfiles de demostración de forma idempotente.
type Seeder struct {
	runner    SeedTxRunner
	customers repository.CustomerRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewSeeder construye el seeder.
func NewSeeder(runner SeedTxRunner, customers repository.CustomerRepository, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{runner: runner, customers: customers, log: log.Named("seed"), now: time.Now}
}

// Result resumen de la siembra.
type Result struct {
	Created []string
	Skipped []string
}

// Run crea cada perfil (cliente + transacciones en una transacción) si su CPF no existe.
func (s *Seeder) Run(ctx context.Context, profiles []Profile) (*Result, error) {
	res := &Result{}
	now := s.now().UTC()
	for _, p := range profiles {
		exists, err := s.customers.ExistsByTaxID(ctx, p.TaxID)
		if err != nil {
			return res, fmt.Errorf("verificar %s: %w", p.TaxID, err)
		}
		if exists {
			res.Skipped = append(res.Skipped, p.TaxID)
			continue
		}

		err = s.runner.RunSeed(ctx, func(customers repository.CustomerRepository, txRepo repository.TransactionRepository) error {
			c := &entity.Customer{
				ID:             uuid.New().String(),
				Name:           p.Name,
				TaxID:          p.TaxID,
				DeclaredIncome: p.DeclaredIncome,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := customers.Create(ctx, c); err != nil {
				return err
			}
			return txRepo.CreateBatch(ctx, p.Transactions(c.ID, now))
		})
		if errors.Is(err, domain.ErrDuplicate) {
			// otro proceso sembró el mismo CPF entre la verificación y la inserción
			res.Skipped = append(res.Skipped, p.TaxID)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("sembrar %s: %w", p.TaxID, err)
		}
		res.Created = append(res.Created, p.TaxID)
		s.log.Info().Str("tax_id", p.TaxID).Str("name", p.Name).Msg("perfil de demostración creado")
	}
	return res, nil
}

// SeedAdmin crea el operador administrador si email y password están definidos.
// Un operador ya existente no es error.
func (s *Seeder) SeedAdmin(ctx context.Context, registrar OperatorRegistrar, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := registrar.RegisterOperator(ctx, email, password, "Administrador", entity.RoleAdmin)
	if errors.Is(err, domain.ErrDuplicate) {
		s.log.Debug().Str("email", email).Msg("operador administrador ya existe")
		return nil
	}
	if err != nil {
		return fmt.Errorf("sembrar operador: %w", err)
	}
	s.log.Info().Str("email", email).Msg("operador administrador creado")
	return nil
}
