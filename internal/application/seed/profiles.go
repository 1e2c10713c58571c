package seed

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
)

// DemoProfiles los tres perfiles de demostración:
// emprendedora de dulces (alto potencial), asalariada (sin oportunidad) y
// prestador de servicios por encima del tope MEI.
func DemoProfiles() []Profile {
	return []Profile{
		{
			Name:           "João Silva",
			TaxID:          "12345678901",
			DeclaredIncome: decimal.RequireFromString("2000.00"),
			Transactions:   sweetsEntrepreneur,
		},
		{
			Name:           "Maria Santos",
			TaxID:          "98765432100",
			DeclaredIncome: decimal.RequireFromString("3500.00"),
			Transactions:   salaried,
		},
		{
			Name:           "Carlos Oliveira",
			TaxID:          "11122233344",
			DeclaredIncome: decimal.RequireFromString("5000.00"),
			Transactions:   overLimitProvider,
		},
	}
}

func newTx(customerID string, date time.Time, amount int64, kind entity.TransactionType, desc string) *entity.Transaction {
	return &entity.Transaction{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		Date:        date,
		Amount:      decimal.NewFromInt(amount),
		Type:        kind,
		Description: desc,
	}
}

// 30 créditos diarios de 50 + (i % 15) * 10 y 10 débitos de insumos.
func sweetsEntrepreneur(customerID string, now time.Time) []*entity.Transaction {
	start := now.AddDate(0, -3, 0)
	txs := make([]*entity.Transaction, 0, 40)
	for i := 0; i < 30; i++ {
		txs = append(txs, newTx(customerID, start.AddDate(0, 0, i), 50+int64(i%15)*10,
			entity.TransactionCredit, "Pix recebido - venda de doces"))
	}
	for i := 0; i < 10; i++ {
		txs = append(txs, newTx(customerID, start.AddDate(0, 0, i*3), 100,
			entity.TransactionDebit, "Compra de ingredientes"))
	}
	return txs
}

// Tres salarios (día 5 de meses consecutivos) y 15 compras de supermercado.
func salaried(customerID string, now time.Time) []*entity.Transaction {
	txs := make([]*entity.Transaction, 0, 18)
	for i := 0; i < 3; i++ {
		month := now.AddDate(0, -3+i, 0)
		payday := time.Date(month.Year(), month.Month(), 5, 12, 0, 0, 0, time.UTC)
		txs = append(txs, newTx(customerID, payday, 3500, entity.TransactionCredit, "Salário mensal"))
	}
	start := now.AddDate(0, -3, 0)
	for i := 0; i < 15; i++ {
		txs = append(txs, newTx(customerID, start.AddDate(0, 0, i*6), 50,
			entity.TransactionDebit, "Compra no supermercado"))
	}
	return txs
}

// 20 créditos de 800 + (i % 5) * 200 (R$ 24.000 en total) y 5 pagos a proveedores.
func overLimitProvider(customerID string, now time.Time) []*entity.Transaction {
	start := now.AddDate(0, -3, 0)
	txs := make([]*entity.Transaction, 0, 25)
	for i := 0; i < 20; i++ {
		txs = append(txs, newTx(customerID, start.AddDate(0, 0, i*4), 800+int64(i%5)*200,
			entity.TransactionCredit, "Pix recebido - serviço prestado"))
	}
	for i := 0; i < 5; i++ {
		txs = append(txs, newTx(customerID, start.AddDate(0, 0, i*15), 500,
			entity.TransactionDebit, "Pagamento de fornecedor"))
	}
	return txs
}
