package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSuggestion = `{
  "businessNiche": "Confeitaria",
  "digitalPresenceScore": 80,
  "estimatedMaturity": "Em Expansão",
  "socialMediaPlatform": "Instagram",
  "socialMediaFollowers": 2500,
  "hasGoogleMapsPresence": true,
  "recommendedApproach": "Oferecer formalização MEI"
}`

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON(`Claro! {"a":1} Espero ter ajudado.`))
	assert.Equal(t, `{"a":1}`, extractJSON(`  {"a":1}  `))
	assert.Equal(t, "", extractJSON("sem json"))
}

func TestDecodeSuggestion(t *testing.T) {
	s, err := decodeSuggestion(validSuggestion)
	require.NoError(t, err)
	assert.Equal(t, "Confeitaria", s.BusinessNiche)
	assert.Equal(t, 80, s.DigitalPresenceScore)
	require.NotNil(t, s.SocialMediaFollowers)
	assert.Equal(t, 2500, *s.SocialMediaFollowers)

	_, err = decodeSuggestion(`{"businessNiche": "Confeitaria"}`)
	assert.ErrorContains(t, err, "falta el campo")

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(validSuggestion), &m))
	m["extra"] = "x"
	raw, _ := json.Marshal(m)
	_, err = decodeSuggestion(string(raw))
	assert.ErrorContains(t, err, "fuera de esquema")

	_, err = decodeSuggestion("não sei")
	assert.Error(t, err)
}

func TestOpenAIService_Suggest(t *testing.T) {
	var got openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": validSuggestion}}},
		})
	}))
	defer srv.Close()

	svc := NewOpenAIService(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", MaxTokens: 300, BaseURL: srv.URL})
	s, err := svc.SuggestMarketIntelligence(context.Background(), "Maria Silva", "Alimentação/Doces")
	require.NoError(t, err)
	assert.Equal(t, "Confeitaria", s.BusinessNiche)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, 300, got.MaxTokens)
	assert.Equal(t, "json_schema", got.ResponseFormat.Type)
	assert.True(t, got.ResponseFormat.JSONSchema.Strict)
	require.Len(t, got.Messages, 2)
	assert.Contains(t, got.Messages[1].Content, "Maria Silva")
	assert.Contains(t, got.Messages[1].Content, "Alimentação/Doces")
}

func TestOpenAIService_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error": map[string]any{"type": "rate_limit", "message": "slow down"},
		})
	}))
	defer srv.Close()

	svc := NewOpenAIService(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := svc.SuggestMarketIntelligence(context.Background(), "Maria", "Tecnologia")
	assert.ErrorContains(t, err, "rate_limit")
}

func TestOpenAIService_SinAPIKey(t *testing.T) {
	_, err := NewOpenAIService(OpenAIConfig{BaseURL: "http://127.0.0.1:1"}).
		SuggestMarketIntelligence(context.Background(), "Maria", "Tecnologia")
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestOpenAIService_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	svc := NewOpenAIService(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := svc.SuggestMarketIntelligence(ctx, "Maria", "Tecnologia")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAnthropicService_Suggest(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "key-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{
			"content": []map[string]any{{"type": "text", "text": "```json\n" + validSuggestion + "\n```"}},
		})
	}))
	defer srv.Close()

	svc := NewAnthropicService("key-test", "claude-3-5-haiku-20241022", srv.URL)
	s, err := svc.SuggestMarketIntelligence(context.Background(), "João Santos", "Comércio")
	require.NoError(t, err)
	assert.True(t, s.HasGoogleMapsPresence)
	assert.Equal(t, systemPrompt, got.System)
	assert.Contains(t, got.Messages[0].Content, "João Santos")
}

func TestAnthropicService_ErrorAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "authentication_error", "message": "invalid x-api-key"},
		})
	}))
	defer srv.Close()

	_, err := NewAnthropicService("bad", "m", srv.URL).
		SuggestMarketIntelligence(context.Background(), "João", "Comércio")
	assert.ErrorContains(t, err, "authentication_error")
}
