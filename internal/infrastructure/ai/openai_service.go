package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/application/ports"
)

var _ ports.MarketIntelligenceProvider = (*OpenAIService)(nil)

// OpenAIConfig parámetros del adaptador de OpenAI Chat Completions.
type OpenAIConfig struct {
	APIKey      string
	Model       string // ej: "gpt-4o-mini"
	Temperature float64
	MaxTokens   int
	BaseURL     string // ej: "https://api.openai.com/v1"
}

// OpenAIService adaptador de MarketIntelligenceProvider sobre la API de OpenAI.
// Usa response_format json_schema (strict) para obligar al modelo a respetar el esquema.
type OpenAIService struct {
	cfg    OpenAIConfig
	client *resty.Client
}

// NewOpenAIService construye el adaptador. Si APIKey está vacío las llamadas devuelven error.
func NewOpenAIService(cfg OpenAIConfig) *OpenAIService {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 500
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		// timeout de red; el servicio de enriquecimiento impone además su propio context.WithTimeout
		SetTimeout(45*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	return &OpenAIService{cfg: cfg, client: client}
}

type openAIRequest struct {
	Model          string               `json:"model"`
	Messages       []openAIMessage      `json:"messages"`
	Temperature    float64              `json:"temperature"`
	MaxTokens      int                  `json:"max_tokens"`
	ResponseFormat openAIResponseFormat `json:"response_format"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type       string           `json:"type"`
	JSONSchema openAIJSONSchema `json:"json_schema"`
}

type openAIJSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// SuggestMarketIntelligence pide al modelo el perfil de mercado del cliente.
func (s *OpenAIService) SuggestMarketIntelligence(ctx context.Context, customerName, activity string) (*dto.MarketIntelligenceSuggestion, error) {
	if s.cfg.APIKey == "" {
		return nil, fmt.Errorf("AI: OPENAI_API_KEY no configurado")
	}

	payload := openAIRequest{
		Model: s.cfg.Model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(customerName, activity)},
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
		ResponseFormat: openAIResponseFormat{
			Type: "json_schema",
			JSONSchema: openAIJSONSchema{
				Name:   "market_intelligence",
				Strict: true,
				Schema: suggestionSchema(),
			},
		},
	}

	var out openAIResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	if resp.IsError() {
		if out.Error != nil {
			return nil, fmt.Errorf("AI: OpenAI error (%s): %s", out.Error.Type, out.Error.Message)
		}
		return nil, fmt.Errorf("AI: OpenAI HTTP %d: %s", resp.StatusCode(), truncate(resp.String()))
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("AI: OpenAI devolvió respuesta vacía")
	}
	choice := out.Choices[0]
	if choice.Message.Refusal != "" {
		return nil, fmt.Errorf("AI: el modelo rechazó la solicitud: %s", choice.Message.Refusal)
	}
	return decodeSuggestion(choice.Message.Content)
}

func truncate(s string) string {
	const limit = 512
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
