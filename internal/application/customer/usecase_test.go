package customer

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
	"github.com/jhoicas/mei-mentor-api/internal/infrastructure/memory"
)

func seeded(t *testing.T) (*UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, c := range []*entity.Customer{
		{ID: "c1", Name: "João Silva", TaxID: "12345678901", DeclaredIncome: decimal.NewFromInt(2000), CreatedAt: created, UpdatedAt: created},
		{ID: "c2", Name: "Maria Santos", TaxID: "98765432100", DeclaredIncome: decimal.NewFromInt(3500), CreatedAt: created, UpdatedAt: created},
	} {
		require.NoError(t, store.Customers().Create(ctx, c))
	}
	return NewUseCase(store.Customers()), store
}

func TestList_AplicaPaginaPorDefecto(t *testing.T) {
	uc, _ := seeded(t)
	resp, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Page.Limit)
	assert.Equal(t, 2, resp.Page.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "João Silva", resp.Items[0].Name)
}

func TestGetByTaxID(t *testing.T) {
	uc, _ := seeded(t)
	resp, err := uc.GetByTaxID(context.Background(), "987.654.321-00")
	require.NoError(t, err)
	assert.Equal(t, "c2", resp.ID)

	_, err = uc.GetByTaxID(context.Background(), "00000000000")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	_, err = uc.GetByTaxID(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateDeclaredIncome(t *testing.T) {
	uc, store := seeded(t)
	income := decimal.RequireFromString("4200.555")

	resp, err := uc.UpdateDeclaredIncome(context.Background(), "12345678901", dto.UpdateIncomeRequest{DeclaredIncome: &income})
	require.NoError(t, err)
	assert.Equal(t, "4200.56", resp.DeclaredIncome.StringFixed(2))

	stored, _ := store.Customers().GetByID(context.Background(), "c1")
	assert.Equal(t, "4200.56", stored.DeclaredIncome.StringFixed(2))
}

func TestUpdateDeclaredIncome_Rechazos(t *testing.T) {
	uc, store := seeded(t)
	negative := decimal.NewFromInt(-1)

	_, err := uc.UpdateDeclaredIncome(context.Background(), "12345678901", dto.UpdateIncomeRequest{DeclaredIncome: &negative})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "declaredIncome")

	_, err = uc.UpdateDeclaredIncome(context.Background(), "12345678901", dto.UpdateIncomeRequest{})
	require.ErrorAs(t, err, &verr)

	stored, _ := store.Customers().GetByID(context.Background(), "c1")
	assert.Equal(t, "2000.00", stored.DeclaredIncome.StringFixed(2), "sin cambios")
}
