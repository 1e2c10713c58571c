package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
	"github.com/jhoicas/mei-mentor-api/internal/infrastructure/postgres"
	"github.com/jhoicas/mei-mentor-api/pkg/config"
)

// withTx abre una transacción contra TEST_DATABASE_URL y la revierte al terminar.
func withTx(t *testing.T, fn func(ctx context.Context, tx pgx.Tx)) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, postgres.Migrate(ctx, pool))

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(context.Background()) }()

	fn(ctx, tx)
}

func newCustomer(taxID string) *entity.Customer {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &entity.Customer{
		ID:             uuid.New().String(),
		Name:           "Maria Doceira " + taxID,
		TaxID:          taxID,
		DeclaredIncome: decimal.RequireFromString("1500.50"),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestCustomerRepo_CRUD(t *testing.T) {
	withTx(t, func(ctx context.Context, tx pgx.Tx) {
		repo := postgres.NewCustomerRepository(tx)
		c := newCustomer("90000000001")
		require.NoError(t, repo.Create(ctx, c))

		got, err := repo.GetByTaxID(ctx, c.TaxID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, c.ID, got.ID)
		assert.True(t, c.DeclaredIncome.Equal(got.DeclaredIncome))

		missing, err := repo.GetByTaxID(ctx, "90000000099")
		require.NoError(t, err)
		assert.Nil(t, missing)

		exists, err := repo.ExistsByTaxID(ctx, c.TaxID)
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, repo.UpdateDeclaredIncome(ctx, c.ID, decimal.RequireFromString("4200.5")))
		got, err = repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "4200.50", got.DeclaredIncome.StringFixed(2))

		err = repo.UpdateDeclaredIncome(ctx, uuid.New().String(), decimal.Zero)
		assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

		// el duplicado aborta la transacción: se aísla en un savepoint
		sp, err := tx.Begin(ctx)
		require.NoError(t, err)
		dup := newCustomer(c.TaxID)
		assert.ErrorIs(t, postgres.NewCustomerRepository(sp).Create(ctx, dup), domain.ErrDuplicate)
		require.NoError(t, sp.Rollback(ctx))
	})
}

func TestTransactionRepo_BatchYOrden(t *testing.T) {
	withTx(t, func(ctx context.Context, tx pgx.Tx) {
		c := newCustomer("90000000002")
		require.NoError(t, postgres.NewCustomerRepository(tx).Create(ctx, c))

		base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		txs := []*entity.Transaction{
			{ID: uuid.New().String(), CustomerID: c.ID, Date: base.AddDate(0, 0, 2), Amount: decimal.NewFromInt(200), Type: entity.TransactionCredit, Description: "Pix recebido"},
			{ID: uuid.New().String(), CustomerID: c.ID, Date: base, Amount: decimal.NewFromInt(80), Type: entity.TransactionDebit, Description: "Compra de ingredientes"},
			{ID: uuid.New().String(), CustomerID: c.ID, Date: base.AddDate(0, 0, 5), Amount: decimal.NewFromInt(150), Type: entity.TransactionCredit, Description: "Venda de bolo"},
		}
		repo := postgres.NewTransactionRepository(tx)
		require.NoError(t, repo.CreateBatch(ctx, txs))

		all, err := repo.ListByCustomer(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Compra de ingredientes", all[0].Description)
		assert.Equal(t, entity.TransactionDebit, all[0].Type)
		assert.Equal(t, "Venda de bolo", all[2].Description)

		window, err := repo.ListByCustomerBetween(ctx, c.ID, base, base.AddDate(0, 0, 2))
		require.NoError(t, err)
		assert.Len(t, window, 2)

		sp, err := tx.Begin(ctx)
		require.NoError(t, err)
		orphan := []*entity.Transaction{{ID: uuid.New().String(), CustomerID: uuid.New().String(), Date: base, Amount: decimal.NewFromInt(1), Type: entity.TransactionCredit}}
		assert.ErrorIs(t, postgres.NewTransactionRepository(sp).CreateBatch(ctx, orphan), domain.ErrCustomerNotFound)
		require.NoError(t, sp.Rollback(ctx))
	})
}

func TestAnalysisRepo_UpsertConservaID(t *testing.T) {
	withTx(t, func(ctx context.Context, tx pgx.Tx) {
		c := newCustomer("90000000003")
		require.NoError(t, postgres.NewCustomerRepository(tx).Create(ctx, c))
		repo := postgres.NewOpportunityAnalysisRepository(tx)

		none, err := repo.GetByCustomerID(ctx, c.ID)
		require.NoError(t, err)
		assert.Nil(t, none)

		score, niche := 80, "Confeitaria/Alimentação"
		first := &entity.OpportunityAnalysis{
			ID:                 uuid.New().String(),
			CustomerID:         c.ID,
			PotentialScore:     90,
			MonthlyLoss:        decimal.RequireFromString("915"),
			ShadowLimit:        decimal.RequireFromString("10800"),
			IdentifiedRevenue:  decimal.RequireFromString("3600"),
			Recommendation:     "Alta oportunidade!",
			MarketIntelligence: &entity.MarketIntelligence{ID: uuid.New().String(), CustomerID: c.ID, BusinessNiche: &niche, DigitalPresenceScore: &score},
			CreatedAt:          time.Now().UTC(),
		}
		require.NoError(t, repo.Upsert(ctx, first))
		firstID := first.ID

		second := &entity.OpportunityAnalysis{
			ID:                uuid.New().String(),
			CustomerID:        c.ID,
			PotentialScore:    10,
			MonthlyLoss:       decimal.Zero,
			ShadowLimit:       decimal.Zero,
			IdentifiedRevenue: decimal.RequireFromString("150"),
			Recommendation:    "Análise concluída.",
			CreatedAt:         time.Now().UTC(),
		}
		require.NoError(t, repo.Upsert(ctx, second))
		assert.Equal(t, firstID, second.ID)

		got, err := repo.GetByCustomerID(ctx, c.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, firstID, got.ID)
		assert.Equal(t, 10, got.PotentialScore)
		assert.Nil(t, got.MarketIntelligence)

		items, err := repo.ListWithCustomer(ctx)
		require.NoError(t, err)
		var found bool
		for _, it := range items {
			if it.TaxID == c.TaxID {
				found = true
				assert.Equal(t, c.Name, it.CustomerName)
			}
		}
		assert.True(t, found)
	})
}

func TestOperatorRepo_EmailSinMayusculas(t *testing.T) {
	withTx(t, func(ctx context.Context, tx pgx.Tx) {
		repo := postgres.NewOperatorRepository(tx)
		now := time.Now().UTC()
		op := &entity.Operator{
			ID: uuid.New().String(), Email: "analista@mei.test", PasswordHash: "hash",
			Name: "Analista", Role: entity.RoleAnalyst, Status: entity.OperatorActive,
			CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, repo.Create(ctx, op))

		got, err := repo.GetByEmail(ctx, "ANALISTA@mei.test")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, op.ID, got.ID)

		missing, err := repo.GetByEmail(ctx, "nadie@mei.test")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}
