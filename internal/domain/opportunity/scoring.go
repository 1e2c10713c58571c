package opportunity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
)

const (
	maxScore          = 100
	maxFrequencyScore = 40
	pointsPerCredit   = 2

	// DigitalPresenceBonus puntos extra por presencia digital alta.
	DigitalPresenceBonus = 10
)

// revenueTiers escalones de ingreso identificado, de mayor a menor.
var revenueTiers = []struct {
	min    decimal.Decimal
	points int
}{
	{decimal.NewFromInt(5000), 40},
	{decimal.NewFromInt(2000), 30},
	{decimal.NewFromInt(1000), 20},
	{decimal.NewFromInt(500), 10},
}

// consistencyTiers escalones por cantidad de créditos comerciales.
var consistencyTiers = []struct {
	min    int
	points int
}{
	{10, 20},
	{5, 15},
	{3, 10},
	{1, 5},
}

// ScoreBreakdown desglose del puntaje de potencial.
type ScoreBreakdown struct {
	Frequency   int // 0..40
	Revenue     int // 0..40
	Consistency int // 0..20
	Total       int // 0..100
}

// FrequencyScore min(40, créditos comerciales * 2).
func FrequencyScore(commercialCredits int) int {
	if commercialCredits <= 0 {
		return 0
	}
	return min(maxFrequencyScore, commercialCredits*pointsPerCredit)
}

// RevenueScore función escalonada sobre el ingreso identificado.
func RevenueScore(identifiedRevenue decimal.Decimal) int {
	for _, tier := range revenueTiers {
		if identifiedRevenue.GreaterThanOrEqual(tier.min) {
			return tier.points
		}
	}
	return 0
}

// ConsistencyScore función escalonada sobre la cantidad de créditos comerciales.
func ConsistencyScore(commercialCredits int) int {
	for _, tier := range consistencyTiers {
		if commercialCredits >= tier.min {
			return tier.points
		}
	}
	return 0
}

// ComputeScore combina los tres sub-puntajes, con tope en 100.
func ComputeScore(commercialCredits int, identifiedRevenue decimal.Decimal) ScoreBreakdown {
	b := ScoreBreakdown{
		Frequency:   FrequencyScore(commercialCredits),
		Revenue:     RevenueScore(identifiedRevenue),
		Consistency: ConsistencyScore(commercialCredits),
	}
	b.Total = min(maxScore, b.Frequency+b.Revenue+b.Consistency)
	return b
}

// PotentialScore puntaje base (0..100) antes del bono de presencia digital.
func PotentialScore(txs []*entity.Transaction, identifiedRevenue decimal.Decimal) int {
	return ComputeScore(CommercialCreditCount(txs), identifiedRevenue).Total
}

// ApplyDigitalPresenceBonus suma 10 puntos (tope 100) si la presencia digital es alta (>= 70).
func ApplyDigitalPresenceBonus(baseScore int, mi *entity.MarketIntelligence) int {
	if !mi.HasHighDigitalPresence() {
		return baseScore
	}
	return min(maxScore, baseScore+DigitalPresenceBonus)
}
