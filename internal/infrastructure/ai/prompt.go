package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
)

const (
	systemPrompt = `Você é um analista de inteligência de mercado especializado em microempreendedores brasileiros.
Responda ÚNICAMENTE com um objeto JSON válido (sem markdown, sem texto adicional) com esta estrutura exata:
{
  "businessNiche": "<nicho do negócio, ex: Confeitaria, Desenvolvimento de Software>",
  "digitalPresenceScore": <inteiro entre 0 e 100>,
  "estimatedMaturity": "<ex: Iniciante, Em Expansão, Freelancer>",
  "socialMediaPlatform": "<ex: Instagram, LinkedIn> ou null",
  "socialMediaFollowers": <inteiro ou null>,
  "hasGoogleMapsPresence": <true ou false>,
  "recommendedApproach": "<recomendação de abordagem para o cliente>"
}
Seja realista e baseado em padrões de mercado brasileiro.`

	userPromptFormat = "Analise o perfil de um cliente chamado %s que tem atividade provável de: %s."
)

// suggestionFields campos obligatorios de la respuesta (todos, incluso los que admiten null).
var suggestionFields = []string{
	"businessNiche",
	"digitalPresenceScore",
	"estimatedMaturity",
	"socialMediaPlatform",
	"socialMediaFollowers",
	"hasGoogleMapsPresence",
	"recommendedApproach",
}

// suggestionSchema JSON Schema estricto para response_format de OpenAI.
func suggestionSchema() map[string]any {
	nullableString := map[string]any{"type": []string{"string", "null"}}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"businessNiche":         map[string]any{"type": "string"},
			"digitalPresenceScore":  map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"estimatedMaturity":     map[string]any{"type": "string"},
			"socialMediaPlatform":   nullableString,
			"socialMediaFollowers":  map[string]any{"type": []string{"integer", "null"}, "minimum": 0},
			"hasGoogleMapsPresence": map[string]any{"type": "boolean"},
			"recommendedApproach":   map[string]any{"type": "string"},
		},
		"required":             suggestionFields,
		"additionalProperties": false,
	}
}

func userPrompt(customerName, activity string) string {
	return fmt.Sprintf(userPromptFormat, customerName, activity)
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON quita bloques ```json ... ``` y devuelve el objeto { ... } del texto.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

// decodeSuggestion parsea la respuesta del modelo: exige todos los campos y rechaza campos desconocidos.
func decodeSuggestion(raw string) (*dto.MarketIntelligenceSuggestion, error) {
	clean := extractJSON(raw)
	if clean == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON en la respuesta del modelo")
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &present); err != nil {
		return nil, fmt.Errorf("AI: JSON inválido: %w", err)
	}
	for _, f := range suggestionFields {
		if _, ok := present[f]; !ok {
			return nil, fmt.Errorf("AI: falta el campo %q", f)
		}
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(clean)))
	dec.DisallowUnknownFields()
	var s dto.MarketIntelligenceSuggestion
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("AI: respuesta fuera de esquema: %w", err)
	}
	return &s, nil
}
