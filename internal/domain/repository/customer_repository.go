package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Las búsquedas devuelven (nil, nil) cuando no existe el registro.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Customer, error)
	ExistsByTaxID(ctx context.Context, taxID string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, int, error)
	// UpdateDeclaredIncome persiste la única mutación permitida del cliente.
	UpdateDeclaredIncome(ctx context.Context, id string, income decimal.Decimal) error
}
