package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para Transaction.
// Las transacciones son inmutables: no hay Update ni Delete.
type TransactionRepository interface {
	CreateBatch(ctx context.Context, txs []*entity.Transaction) error
	// ListByCustomer devuelve las transacciones ordenadas por fecha ascendente.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Transaction, error)
	// ListByCustomerBetween filtra por fecha, ambos extremos inclusivos.
	ListByCustomerBetween(ctx context.Context, customerID string, from, to time.Time) ([]*entity.Transaction, error)
}
