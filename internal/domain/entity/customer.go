package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/pkg/taxid"
)

// Customer representa una persona física (titular de CPF) analizada para formalización MEI.
type Customer struct {
	ID             string
	Name           string
	TaxID          string // CPF normalizado (11 dígitos)
	DeclaredIncome decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasValidTaxID indica si el CPF normaliza a exactamente 11 dígitos.
func (c *Customer) HasValidTaxID() bool {
	return taxid.IsValidCPF(c.TaxID)
}

// HasDeclaredIncome indica si la renta declarada es mayor que cero.
func (c *Customer) HasDeclaredIncome() bool {
	return c.DeclaredIncome.IsPositive()
}

// UpdateDeclaredIncome es la única mutación permitida después de la creación.
func (c *Customer) UpdateDeclaredIncome(income decimal.Decimal, now time.Time) error {
	if income.IsNegative() {
		return domain.ErrNegativeIncome
	}
	c.DeclaredIncome = income.Round(2)
	c.UpdatedAt = now
	return nil
}
