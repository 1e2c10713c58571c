package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
	"github.com/jhoicas/mei-mentor-api/internal/domain/repository"
)

var _ repository.OperatorRepository = (*OperatorRepo)(nil)

const operatorColumns = `id, email, password_hash, name, role, status, created_at, updated_at`

// OperatorRepo implementación de OperatorRepository.
type OperatorRepo struct {
	q Querier
}

// NewOperatorRepository construye el adaptador.
func NewOperatorRepository(q Querier) *OperatorRepo {
	return &OperatorRepo{q: q}
}

// Create persiste un operador; email duplicado devuelve domain.ErrDuplicate.
func (r *OperatorRepo) Create(ctx context.Context, o *entity.Operator) error {
	query := `INSERT INTO operators (` + operatorColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, o.ID, o.Email, o.PasswordHash, o.Name, o.Role, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert operator: %w", err)
	}
	return nil
}

// GetByID obtiene un operador por ID.
func (r *OperatorRepo) GetByID(ctx context.Context, id string) (*entity.Operator, error) {
	return r.getOne(ctx, `SELECT `+operatorColumns+` FROM operators WHERE id = $1`, id)
}

// GetByEmail obtiene un operador por email (sin distinguir mayúsculas).
func (r *OperatorRepo) GetByEmail(ctx context.Context, email string) (*entity.Operator, error) {
	return r.getOne(ctx, `SELECT `+operatorColumns+` FROM operators WHERE lower(email) = lower($1)`, email)
}

func (r *OperatorRepo) getOne(ctx context.Context, query string, arg any) (*entity.Operator, error) {
	var o entity.Operator
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&o.ID, &o.Email, &o.PasswordHash, &o.Name, &o.Role, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operator: %w", err)
	}
	return &o, nil
}
