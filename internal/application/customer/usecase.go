// Package customer casos de uso de administración de clientes del back-office.
package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
	"github.com/jhoicas/mei-mentor-api/internal/domain/repository"
	"github.com/jhoicas/mei-mentor-api/pkg/taxid"
)

// UseCase listado, detalle y actualización de renta declarada.
type UseCase struct {
	repo repository.CustomerRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CustomerRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// List lista clientes paginados.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// GetByTaxID detalle de un cliente por CPF.
func (uc *UseCase) GetByTaxID(ctx context.Context, rawTaxID string) (*dto.CustomerResponse, error) {
	c, err := uc.find(ctx, rawTaxID)
	if err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// UpdateDeclaredIncome valida y persiste la nueva renta declarada.
func (uc *UseCase) UpdateDeclaredIncome(ctx context.Context, rawTaxID string, in dto.UpdateIncomeRequest) (*dto.CustomerResponse, error) {
	if in.DeclaredIncome == nil {
		return nil, domain.NewValidationError("declaredIncome", "obligatorio")
	}
	c, err := uc.find(ctx, rawTaxID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateDeclaredIncome(*in.DeclaredIncome, uc.now().UTC()); err != nil {
		return nil, &domain.ValidationError{Fields: map[string]string{"declaredIncome": err.Error()}}
	}
	if err := uc.repo.UpdateDeclaredIncome(ctx, c.ID, c.DeclaredIncome); err != nil {
		return nil, fmt.Errorf("actualizar renta: %w", err)
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

func (uc *UseCase) find(ctx context.Context, rawTaxID string) (*entity.Customer, error) {
	cpf, err := taxid.ValidateCPF(rawTaxID)
	if err != nil {
		return nil, domain.NewValidationError("taxId", strings.TrimPrefix(err.Error(), "taxid: "))
	}
	c, err := uc.repo.GetByTaxID(ctx, cpf)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, cpf)
	}
	return c, nil
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		TaxID:          c.TaxID,
		DeclaredIncome: c.DeclaredIncome.Round(2),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
