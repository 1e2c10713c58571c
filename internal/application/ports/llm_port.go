package ports

import (
	"context"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
)

// MarketIntelligenceProvider define el puerto de salida hacia el servicio de inteligencia de mercado.
// Cualquier adaptador (OpenAI, Anthropic, mock de tests) debe implementar esta interfaz.
type MarketIntelligenceProvider interface {
	// SuggestMarketIntelligence analiza el nombre del cliente y su actividad probable y devuelve
	// una sugerencia ya validada contra el esquema. El contexto debe llevar un timeout.
	SuggestMarketIntelligence(
		ctx context.Context,
		customerName string,
		activity string,
	) (*dto.MarketIntelligenceSuggestion, error)
}

// SuggestionCache guarda sugerencias validadas para no repetir llamadas al proveedor.
// Get devuelve (nil, nil) si la clave no existe.
type SuggestionCache interface {
	Get(ctx context.Context, key string) (*dto.MarketIntelligenceSuggestion, error)
	Set(ctx context.Context, key string, suggestion *dto.MarketIntelligenceSuggestion) error
}
