package opportunity

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
)

var (
	// PFTaxRate alícuota de IRPF (27,5%) usada para estimar el impuesto como persona física.
	PFTaxRate = decimal.RequireFromString("0.275")
	// MEIMonthlyFee cuota mensual fija del MEI (DAS).
	MEIMonthlyFee = decimal.RequireFromString("75.00")
	// ShadowLimitMultiplier múltiplo del ingreso ofrecido como límite sombra.
	ShadowLimitMultiplier = decimal.RequireFromString("3.0")
	// MEIAnnualRevenueCap tope anual de facturación MEI (R$ 81.000).
	MEIAnnualRevenueCap = decimal.RequireFromString("81000.00")
	// MEIMonthlyRevenueCap tope mensual equivalente (R$ 6.750).
	MEIMonthlyRevenueCap = MEIAnnualRevenueCap.Div(decimal.NewFromInt(12)).Round(2)

	highOpportunityLoss = decimal.NewFromInt(100)
)

// Mensajes de recomendación.
const (
	OverLimitAlert = "Alerta: Faturamento identificado acima do limite MEI (R$ 6.750/mês). " +
		"Considere formalização como ME ou EPP."
	consultAccountant = "Análise concluída. Consulte um contador para avaliar a melhor opção de formalização."
)

// MonthlyLoss = max(0, round(ingreso * 0.275, 2) - 75.00). Ingreso <= 0 => 0.
func MonthlyLoss(identifiedRevenue decimal.Decimal) decimal.Decimal {
	if !identifiedRevenue.IsPositive() {
		return decimal.Zero
	}
	loss := identifiedRevenue.Mul(PFTaxRate).Round(2).Sub(MEIMonthlyFee)
	if !loss.IsPositive() {
		return decimal.Zero
	}
	return loss.Round(2)
}

// ShadowLimit = round(ingreso * 3, 2) solo si score >= 70 y ingreso > 0; si no, 0.
func ShadowLimit(identifiedRevenue decimal.Decimal, potentialScore int) decimal.Decimal {
	if potentialScore < entity.HighPotentialThreshold || !identifiedRevenue.IsPositive() {
		return decimal.Zero
	}
	return identifiedRevenue.Mul(ShadowLimitMultiplier).Round(2)
}

// Recommendation arma el mensaje para el cliente.
// El ingreso identificado se toma como equivalente mensual; por encima del tope MEI
// la alerta reemplaza cualquier otra lógica (incluido el resumen de presencia digital).
func Recommendation(
	identifiedRevenue decimal.Decimal,
	potentialScore int,
	monthlyLoss decimal.Decimal,
	mi *entity.MarketIntelligence,
) string {
	if identifiedRevenue.GreaterThan(MEIMonthlyRevenueCap) {
		return OverLimitAlert
	}

	var sb strings.Builder
	switch {
	case potentialScore >= entity.HighPotentialThreshold && monthlyLoss.GreaterThan(highOpportunityLoss):
		sb.WriteString("Alta oportunidade! Você pode economizar R$ ")
		sb.WriteString(monthlyLoss.StringFixed(2))
		sb.WriteString(" por mês formalizando como MEI. Limite de crédito pré-aprovado disponível.")
	case monthlyLoss.IsPositive():
		sb.WriteString("Oportunidade identificada. Economia estimada de R$ ")
		sb.WriteString(monthlyLoss.StringFixed(2))
		sb.WriteString(" por mês com formalização MEI.")
	default:
		sb.WriteString(consultAccountant)
	}

	if mi.HasDigitalPresence() {
		sb.WriteString(" Presença digital confirmada: ")
		sb.WriteString(mi.DigitalPresenceSummary())
		sb.WriteString(".")
	}
	return sb.String()
}
