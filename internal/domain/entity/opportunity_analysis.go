package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// HighPotentialThreshold puntaje mínimo para ofrecer límite de crédito sombra.
const HighPotentialThreshold = 70

var significantLoss = decimal.NewFromInt(100)

// OpportunityAnalysis resultado del análisis de oportunidad de formalización MEI.
// Un análisis por cliente: re-analizar reemplaza el anterior.
//
// Invariantes:
//   - ShadowLimit > 0 implica PotentialScore >= 70.
//   - MonthlyLoss = max(0, round(IdentifiedRevenue * 0.275, 2) - 75.00).
type OpportunityAnalysis struct {
	ID                 string
	CustomerID         string
	PotentialScore     int
	MonthlyLoss        decimal.Decimal
	ShadowLimit        decimal.Decimal
	IdentifiedRevenue  decimal.Decimal
	Recommendation     string
	MarketIntelligence *MarketIntelligence
	CreatedAt          time.Time
}

// HasHighPotential puntaje >= 70.
func (a *OpportunityAnalysis) HasHighPotential() bool {
	return a.PotentialScore >= HighPotentialThreshold
}

// HasSignificantLoss pérdida mensual > R$ 100,00.
func (a *OpportunityAnalysis) HasSignificantLoss() bool {
	return a.MonthlyLoss.GreaterThan(significantLoss)
}

// AnnualLoss proyección anual de la pérdida (mensual * 12).
func (a *OpportunityAnalysis) AnnualLoss() decimal.Decimal {
	return a.MonthlyLoss.Mul(decimal.NewFromInt(12)).Round(2)
}
