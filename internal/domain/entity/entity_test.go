package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestFormatFollowers(t *testing.T) {
	assert.Equal(t, "0", entity.FormatFollowers(0))
	assert.Equal(t, "999", entity.FormatFollowers(999))
	assert.Equal(t, "1.0k", entity.FormatFollowers(1000))
	assert.Equal(t, "2.5k", entity.FormatFollowers(2500))
	assert.Equal(t, "3.5k", entity.FormatFollowers(3499))
}

func TestDigitalPresenceSummary_PlataformaSeguidoresYMaps(t *testing.T) {
	mi := &entity.MarketIntelligence{
		DigitalPresenceScore:  intPtr(100),
		SocialMediaPlatform:   strPtr("Instagram"),
		SocialMediaFollowers:  intPtr(2500),
		HasGoogleMapsPresence: boolPtr(true),
	}
	assert.Equal(t, "Presença em Instagram com 2.5k seguidores e cadastro no Google Maps", mi.DigitalPresenceSummary())
}

func TestDigitalPresenceSummary_SoloPlataforma(t *testing.T) {
	mi := &entity.MarketIntelligence{
		DigitalPresenceScore:  intPtr(70),
		SocialMediaPlatform:   strPtr("LinkedIn/GitHub"),
		HasGoogleMapsPresence: boolPtr(false),
	}
	assert.Equal(t, "Presença em LinkedIn/GitHub", mi.DigitalPresenceSummary())
}

func TestDigitalPresenceSummary_SoloMaps(t *testing.T) {
	mi := &entity.MarketIntelligence{
		DigitalPresenceScore:  intPtr(20),
		HasGoogleMapsPresence: boolPtr(true),
	}
	assert.Equal(t, "cadastro no Google Maps", mi.DigitalPresenceSummary())
}

func TestDigitalPresenceSummary_SinDatos(t *testing.T) {
	withScore := &entity.MarketIntelligence{DigitalPresenceScore: intPtr(15)}
	assert.Equal(t, "Presença digital identificada", withScore.DigitalPresenceSummary())

	none := &entity.MarketIntelligence{DigitalPresenceScore: intPtr(0)}
	assert.Equal(t, "Sem presença digital identificada", none.DigitalPresenceSummary())

	var nilMI *entity.MarketIntelligence
	assert.False(t, nilMI.HasDigitalPresence())
	assert.False(t, nilMI.HasHighDigitalPresence())
}

func TestMarketIntelligence_Umbrales(t *testing.T) {
	assert.True(t, (&entity.MarketIntelligence{DigitalPresenceScore: intPtr(70)}).HasHighDigitalPresence())
	assert.False(t, (&entity.MarketIntelligence{DigitalPresenceScore: intPtr(69)}).HasHighDigitalPresence())
	assert.Equal(t, "Não identificado", (&entity.MarketIntelligence{}).MaturityDescription())
	assert.Equal(t, "Freelancer", (&entity.MarketIntelligence{EstimatedMaturity: strPtr("Freelancer")}).MaturityDescription())
}

func TestCustomer_UpdateDeclaredIncome(t *testing.T) {
	c := &entity.Customer{TaxID: "123.456.789-01", DeclaredIncome: decimal.NewFromInt(2000)}
	assert.True(t, c.HasValidTaxID())
	assert.True(t, c.HasDeclaredIncome())

	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.UpdateDeclaredIncome(decimal.RequireFromString("3100.555"), now))
	assert.True(t, decimal.RequireFromString("3100.56").Equal(c.DeclaredIncome))
	assert.Equal(t, now, c.UpdatedAt)

	err := c.UpdateDeclaredIncome(decimal.NewFromInt(-1), now)
	assert.ErrorIs(t, err, domain.ErrNegativeIncome)
	assert.True(t, decimal.RequireFromString("3100.56").Equal(c.DeclaredIncome), "no debe mutar ante error")

	require.NoError(t, c.UpdateDeclaredIncome(decimal.Zero, now))
	assert.False(t, c.HasDeclaredIncome())
}

func TestOpportunityAnalysis_Helpers(t *testing.T) {
	a := &entity.OpportunityAnalysis{PotentialScore: 70, MonthlyLoss: decimal.RequireFromString("100.01")}
	assert.True(t, a.HasHighPotential())
	assert.True(t, a.HasSignificantLoss())
	assert.Equal(t, "1200.12", a.AnnualLoss().StringFixed(2))

	b := &entity.OpportunityAnalysis{PotentialScore: 69, MonthlyLoss: decimal.NewFromInt(100)}
	assert.False(t, b.HasHighPotential())
	assert.False(t, b.HasSignificantLoss())
}
