package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType dirección del movimiento financiero.
type TransactionType string

const (
	TransactionCredit TransactionType = "CREDIT" // dinero recibido
	TransactionDebit  TransactionType = "DEBIT"  // dinero gastado
)

// Valid indica si el tipo es CREDIT o DEBIT.
func (t TransactionType) Valid() bool {
	return t == TransactionCredit || t == TransactionDebit
}

// Transaction movimiento financiero del cliente. Inmutable una vez creado.
// Amount siempre es positivo; la dirección la determina Type.
type Transaction struct {
	ID          string
	CustomerID  string
	Date        time.Time
	Amount      decimal.Decimal
	Type        TransactionType
	Description string
}

// IsCredit indica si es un ingreso.
func (t *Transaction) IsCredit() bool { return t.Type == TransactionCredit }

// IsDebit indica si es un egreso.
func (t *Transaction) IsDebit() bool { return t.Type == TransactionDebit }
