package opportunity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
)

// isCommercialCredit crédito cuya descripción coincide con el patrón comercial.
func isCommercialCredit(tx *entity.Transaction) bool {
	return tx != nil && tx.IsCredit() && IsCommercialPattern(tx.Description)
}

// IdentifiedRevenue suma los créditos comerciales, redondeado a 2 decimales (half-up).
// Débitos y créditos no comerciales se excluyen por completo (no restan).
func IdentifiedRevenue(txs []*entity.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if isCommercialCredit(tx) {
			total = total.Add(tx.Amount)
		}
	}
	return total.Round(2)
}

// CommercialCreditCount cantidad de créditos comerciales.
func CommercialCreditCount(txs []*entity.Transaction) int {
	n := 0
	for _, tx := range txs {
		if isCommercialCredit(tx) {
			n++
		}
	}
	return n
}
