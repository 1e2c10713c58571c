package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
	"github.com/jhoicas/mei-mentor-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, customer_id, date, amount, type, description`

// TransactionRepo implementación de TransactionRepository (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// CreateBatch inserta las transacciones en un único batch.
func (r *TransactionRepo) CreateBatch(ctx context.Context, txs []*entity.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	batch := &pgx.Batch{}
	for _, tx := range txs {
		batch.Queue(query, tx.ID, tx.CustomerID, tx.Date, tx.Amount, string(tx.Type), tx.Description)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range txs {
		if _, err := br.Exec(); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrCustomerNotFound
			}
			return fmt.Errorf("insert transaction: %w", err)
		}
	}
	return br.Close()
}

// ListByCustomer devuelve las transacciones del cliente por fecha ascendente.
func (r *TransactionRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE customer_id = $1 ORDER BY date, id`
	return r.list(ctx, query, customerID)
}

// ListByCustomerBetween filtra por fecha (extremos inclusivos).
func (r *TransactionRepo) ListByCustomerBetween(ctx context.Context, customerID string, from, to time.Time) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE customer_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, id`
	return r.list(ctx, query, customerID, from, to)
}

func (r *TransactionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var tx entity.Transaction
		var kind string
		if err := rows.Scan(&tx.ID, &tx.CustomerID, &tx.Date, &tx.Amount, &kind, &tx.Description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Type = entity.TransactionType(kind)
		list = append(list, &tx)
	}
	return list, rows.Err()
}
