package repository

import (
	"context"

	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
)

// AnalysisListItem modelo de lectura para la exportación de la cartera.
type AnalysisListItem struct {
	CustomerName string
	TaxID        string
	Analysis     *entity.OpportunityAnalysis
}

// OpportunityAnalysisRepository define el puerto de persistencia del análisis de oportunidad.
// Hay a lo sumo un análisis (y una inteligencia de mercado) por cliente.
type OpportunityAnalysisRepository interface {
	// Upsert reemplaza el análisis y la inteligencia de mercado del cliente en una sola transacción.
	// Conserva el ID existente; sobre el cliente gana la última escritura.
	Upsert(ctx context.Context, analysis *entity.OpportunityAnalysis) error
	GetByCustomerID(ctx context.Context, customerID string) (*entity.OpportunityAnalysis, error)
	ListWithCustomer(ctx context.Context) ([]*AnalysisListItem, error)
}
