package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa el puerto.
var _ ports.MarketIntelligenceProvider = (*AnthropicService)(nil)

const anthropicVersion = "2023-06-01"

// AnthropicService adaptador de MarketIntelligenceProvider sobre la Messages API de Anthropic (Claude).
// Claude no tiene modo JSON estricto: el prompt exige solo JSON y la respuesta se limpia con extractJSON.
type AnthropicService struct {
	apiKey string
	model  string
	client *resty.Client
}

// NewAnthropicService construye el adaptador. model suele ser "claude-3-5-haiku-20241022".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model, baseURL string) *AnthropicService {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(25*time.Second).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("content-type", "application/json")
	if apiKey != "" {
		client.SetHeader("x-api-key", apiKey)
	}
	return &AnthropicService{apiKey: apiKey, model: model, client: client}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// SuggestMarketIntelligence envía nombre y actividad a Claude y parsea el JSON devuelto.
func (s *AnthropicService) SuggestMarketIntelligence(ctx context.Context, customerName, activity string) (*dto.MarketIntelligenceSuggestion, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: userPrompt(customerName, activity)},
		},
	}

	var out anthropicResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		SetError(&out).
		Post("/messages")
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	if resp.IsError() {
		if out.Error != nil {
			return nil, fmt.Errorf("AI: Anthropic error (%s): %s", out.Error.Type, out.Error.Message)
		}
		return nil, fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode(), truncate(resp.String()))
	}

	for _, block := range out.Content {
		if block.Type == "text" || block.Type == "" {
			return decodeSuggestion(block.Text)
		}
	}
	return nil, fmt.Errorf("AI: Claude devolvió respuesta vacía")
}
