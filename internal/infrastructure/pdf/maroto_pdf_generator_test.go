package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
)

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,00", formatBRL(decimal.Zero))
	assert.Equal(t, "R$ 915,00", formatBRL(decimal.NewFromInt(915)))
	assert.Equal(t, "R$ 1.234,50", formatBRL(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "R$ 1.000.000,01", formatBRL(decimal.RequireFromString("1000000.005")))
	assert.Equal(t, "R$ -10,00", formatBRL(decimal.NewFromInt(-10)))
}

func TestGenerateOpportunityReport(t *testing.T) {
	niche, score := "Confeitaria", 80
	report := &dto.OpportunityReport{
		CustomerName:       "Maria Silva",
		TaxID:              "12345678901",
		DeclaredIncome:     decimal.Zero,
		RecentTransactions: 18,
		RecentCredits:      15,
		Analysis: dto.OpportunityAnalysisResponse{
			PotentialScore:    100,
			MonthlyLoss:       decimal.NewFromInt(915),
			ShadowLimit:       decimal.NewFromInt(10800),
			IdentifiedRevenue: decimal.NewFromInt(3600),
			Recommendation:    "Alta oportunidade!",
			MarketIntelligence: &dto.MarketIntelligenceResponse{
				BusinessNiche:        &niche,
				DigitalPresenceScore: &score,
			},
		},
		AnnualLoss:      decimal.NewFromInt(10980),
		PresenceSummary: "Presença em Instagram",
		Maturity:        "Em Expansão",
		GeneratedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	out, err := NewMarotoPDFGenerator().GenerateOpportunityReport(context.Background(), report)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateOpportunityReport_Nil(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateOpportunityReport(context.Background(), nil)
	assert.Error(t, err)
}
