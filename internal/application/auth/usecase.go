package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
	"github.com/jhoicas/mei-mentor-api/internal/domain/repository"
	"github.com/jhoicas/mei-mentor-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación de operadores del back-office.
type AuthUseCase struct {
	operators repository.OperatorRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(operators repository.OperatorRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{operators: operators, jwtCfg: jwtCfg}
}

// RegisterOperator crea un operador con password hasheado (bcrypt). Rol vacío = analyst.
func (uc *AuthUseCase) RegisterOperator(ctx context.Context, email, password, name, role string) (*dto.OperatorResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	fields := map[string]string{}
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "email inválido"
	}
	if len(password) < 8 {
		fields["password"] = "mínimo 8 caracteres"
	}
	if role == "" {
		role = entity.RoleAnalyst
	}
	if role != entity.RoleAdmin && role != entity.RoleAnalyst {
		fields["role"] = "debe ser admin o analyst"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	existing, err := uc.operators.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar operador: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = email
	}
	now := time.Now().UTC()
	op := &entity.Operator{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.OperatorActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.operators.Create(ctx, op); err != nil {
		return nil, err
	}
	resp := toOperatorResponse(op)
	return &resp, nil
}

// Login verifica email/password, genera JWT y retorna token + operador.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"credentials": "email y password son obligatorios"}}
	}
	op, err := uc.operators.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(in.Email)))
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !op.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, op.ID, op.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Operator: toOperatorResponse(op),
	}, nil
}

func toOperatorResponse(o *entity.Operator) dto.OperatorResponse {
	return dto.OperatorResponse{
		ID:        o.ID,
		Email:     o.Email,
		Name:      o.Name,
		Role:      o.Role,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}
