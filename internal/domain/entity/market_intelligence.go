package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// HighDigitalPresenceThreshold puntaje a partir del cual la presencia digital se considera alta.
const HighDigitalPresenceThreshold = 70

// MarketIntelligence datos externos de mercado que enriquecen el perfil del cliente.
// Los campos opcionales son punteros: nil significa "no identificado".
// Se persiste por CustomerID (el último análisis sobrescribe al anterior).
type MarketIntelligence struct {
	ID                    string
	CustomerID            string
	BusinessNiche         *string
	DigitalPresenceScore  *int
	EstimatedMaturity     *string
	RecommendedApproach   *string
	SocialMediaPlatform   *string
	SocialMediaFollowers  *int
	HasGoogleMapsPresence *bool
}

// HasHighDigitalPresence puntaje >= 70.
func (m *MarketIntelligence) HasHighDigitalPresence() bool {
	return m != nil && m.DigitalPresenceScore != nil && *m.DigitalPresenceScore >= HighDigitalPresenceThreshold
}

// HasDigitalPresence puntaje > 0.
func (m *MarketIntelligence) HasDigitalPresence() bool {
	return m != nil && m.DigitalPresenceScore != nil && *m.DigitalPresenceScore > 0
}

// MaturityDescription madurez legible ("Não identificado" si no hay dato).
func (m *MarketIntelligence) MaturityDescription() string {
	if m == nil || m.EstimatedMaturity == nil || strings.TrimSpace(*m.EstimatedMaturity) == "" {
		return "Não identificado"
	}
	return *m.EstimatedMaturity
}

// DigitalPresenceSummary resume plataforma, seguidores y Google Maps en una frase.
func (m *MarketIntelligence) DigitalPresenceSummary() string {
	if !m.HasDigitalPresence() {
		return "Sem presença digital identificada"
	}

	var sb strings.Builder
	if m.SocialMediaPlatform != nil && strings.TrimSpace(*m.SocialMediaPlatform) != "" {
		sb.WriteString("Presença em ")
		sb.WriteString(*m.SocialMediaPlatform)
		if m.SocialMediaFollowers != nil && *m.SocialMediaFollowers > 0 {
			sb.WriteString(" com ")
			sb.WriteString(FormatFollowers(*m.SocialMediaFollowers))
			sb.WriteString(" seguidores")
		}
	}
	if m.HasGoogleMapsPresence != nil && *m.HasGoogleMapsPresence {
		if sb.Len() > 0 {
			sb.WriteString(" e ")
		}
		sb.WriteString("cadastro no Google Maps")
	}

	if sb.Len() == 0 {
		return "Presença digital identificada"
	}
	return sb.String()
}

// FormatFollowers 950 -> "950", 2500 -> "2.5k".
func FormatFollowers(followers int) string {
	if followers >= 1000 {
		return fmt.Sprintf("%.1fk", float64(followers)/1000.0)
	}
	return strconv.Itoa(followers)
}
