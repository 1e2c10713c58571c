package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	TaxID          string          `json:"taxId"`
	DeclaredIncome decimal.Decimal `json:"declaredIncome"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// UpdateIncomeRequest body para PUT /api/customers/{taxId}/income.
type UpdateIncomeRequest struct {
	DeclaredIncome *decimal.Decimal `json:"declaredIncome"`
}
