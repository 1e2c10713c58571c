package entity

import "time"

// Roles válidos para Operator.
const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"
)

// Estados de Operator.
const (
	OperatorActive   = "active"
	OperatorInactive = "inactive"
)

// Operator usuario del back-office (gerente de relación, analista de crédito).
type Operator struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el operador puede autenticarse.
func (o *Operator) IsActive() bool { return o.Status == OperatorActive }
