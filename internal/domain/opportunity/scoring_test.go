package opportunity_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
	"github.com/jhoicas/mei-mentor-api/internal/domain/opportunity"
)

func credit(amount string, description string) *entity.Transaction {
	return &entity.Transaction{
		ID:          "tx",
		Date:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString(amount),
		Type:        entity.TransactionCredit,
		Description: description,
	}
}

func debit(amount string, description string) *entity.Transaction {
	tx := credit(amount, description)
	tx.Type = entity.TransactionDebit
	return tx
}

func TestIdentifiedRevenue_SoloCreditosComerciales(t *testing.T) {
	txs := []*entity.Transaction{
		credit("100.005", "Pix recebido"),
		credit("50", "Venda de bolo"),
		// crédito no comercial
		credit("3500", "Salário mensal"),
		// débito comercial: no suma ni resta
		debit("500", "Pagamento de fornecedor"),
		debit("80", "Compra no supermercado"),
	}
	assert.Equal(t, "150.01", opportunity.IdentifiedRevenue(txs).StringFixed(2))
	assert.Equal(t, 2, opportunity.CommercialCreditCount(txs))
}

func TestIdentifiedRevenue_ListaVacia(t *testing.T) {
	assert.True(t, opportunity.IdentifiedRevenue(nil).IsZero())
	assert.Equal(t, 0, opportunity.CommercialCreditCount(nil))
	assert.Equal(t, 0, opportunity.PotentialScore(nil, decimal.Zero))
}

func TestSubScores_Escalones(t *testing.T) {
	freq := map[int]int{0: 0, 1: 2, 10: 20, 20: 40, 30: 40}
	for n, want := range freq {
		assert.Equal(t, want, opportunity.FrequencyScore(n), "frecuencia n=%d", n)
	}

	rev := map[string]int{"0": 0, "499.99": 0, "500": 10, "999.99": 10, "1000": 20, "2000": 30, "4999.99": 30, "5000": 40, "100000": 40}
	for r, want := range rev {
		assert.Equal(t, want, opportunity.RevenueScore(decimal.RequireFromString(r)), "ingreso=%s", r)
	}

	cons := map[int]int{0: 0, 1: 5, 2: 5, 3: 10, 4: 10, 5: 15, 9: 15, 10: 20, 50: 20}
	for n, want := range cons {
		assert.Equal(t, want, opportunity.ConsistencyScore(n), "consistencia n=%d", n)
	}
}

func TestComputeScore_TopeEn100(t *testing.T) {
	b := opportunity.ComputeScore(30, decimal.NewFromInt(6000))
	assert.Equal(t, opportunity.ScoreBreakdown{Frequency: 40, Revenue: 40, Consistency: 20, Total: 100}, b)
}

// El puntaje es monótono no decreciente en cantidad e ingreso y siempre está en [0,100].
func TestPotentialScore_MonotonoYAcotado(t *testing.T) {
	revenues := []int64{0, 100, 499, 500, 999, 1000, 1999, 2000, 4999, 5000, 20000}
	for count := 0; count <= 40; count++ {
		prev := -1
		for _, r := range revenues {
			s := opportunity.ComputeScore(count, decimal.NewFromInt(r)).Total
			assert.GreaterOrEqual(t, s, 0)
			assert.LessOrEqual(t, s, 100)
			assert.GreaterOrEqual(t, s, prev, fmt.Sprintf("no monótono en ingreso: count=%d r=%d", count, r))
			prev = s
		}
	}
	for _, r := range revenues {
		prev := -1
		for count := 0; count <= 40; count++ {
			s := opportunity.ComputeScore(count, decimal.NewFromInt(r)).Total
			assert.GreaterOrEqual(t, s, prev, fmt.Sprintf("no monótono en cantidad: count=%d r=%d", count, r))
			prev = s
		}
	}
}

func TestApplyDigitalPresenceBonus(t *testing.T) {
	high, low := 70, 69
	assert.Equal(t, 60, opportunity.ApplyDigitalPresenceBonus(50, &entity.MarketIntelligence{DigitalPresenceScore: &high}))
	assert.Equal(t, 100, opportunity.ApplyDigitalPresenceBonus(95, &entity.MarketIntelligence{DigitalPresenceScore: &high}))
	assert.Equal(t, 50, opportunity.ApplyDigitalPresenceBonus(50, &entity.MarketIntelligence{DigitalPresenceScore: &low}))
	assert.Equal(t, 50, opportunity.ApplyDigitalPresenceBonus(50, nil))
}
