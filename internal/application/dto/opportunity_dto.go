package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpportunityAnalysisResponse salida de GET /api/opportunity/{taxId}.
type OpportunityAnalysisResponse struct {
	ID                 string                      `json:"id"`
	CustomerID         string                      `json:"customerId"`
	PotentialScore     int                         `json:"potentialScore"`
	MonthlyLoss        decimal.Decimal             `json:"monthlyLoss"`
	ShadowLimit        decimal.Decimal             `json:"shadowLimit"`
	IdentifiedRevenue  decimal.Decimal             `json:"identifiedRevenue"`
	Recommendation     string                      `json:"recommendation"`
	MarketIntelligence *MarketIntelligenceResponse `json:"marketIntelligence"`
	CreatedAt          time.Time                   `json:"createdAt"`
}

// MarketIntelligenceResponse inteligencia de mercado; los campos nil se serializan como null.
type MarketIntelligenceResponse struct {
	ID                    string  `json:"id"`
	CustomerID            string  `json:"customerId"`
	BusinessNiche         *string `json:"businessNiche"`
	DigitalPresenceScore  *int    `json:"digitalPresenceScore"`
	EstimatedMaturity     *string `json:"estimatedMaturity"`
	RecommendedApproach   *string `json:"recommendedApproach"`
	SocialMediaPlatform   *string `json:"socialMediaPlatform"`
	SocialMediaFollowers  *int    `json:"socialMediaFollowers"`
	HasGoogleMapsPresence *bool   `json:"hasGoogleMapsPresence"`
}

// MarketIntelligenceSuggestion respuesta validada de un proveedor externo (LLM).
// Es también el formato que se guarda en caché.
type MarketIntelligenceSuggestion struct {
	BusinessNiche         string  `json:"businessNiche"`
	DigitalPresenceScore  int     `json:"digitalPresenceScore"`
	EstimatedMaturity     string  `json:"estimatedMaturity"`
	SocialMediaPlatform   *string `json:"socialMediaPlatform"`
	SocialMediaFollowers  *int    `json:"socialMediaFollowers"`
	HasGoogleMapsPresence bool    `json:"hasGoogleMapsPresence"`
	RecommendedApproach   string  `json:"recommendedApproach"`
}

// AnalysisExportRow fila de la exportación XLSX de la cartera.
type AnalysisExportRow struct {
	CustomerName         string
	TaxID                string
	PotentialScore       int
	IdentifiedRevenue    decimal.Decimal
	MonthlyLoss          decimal.Decimal
	AnnualLoss           decimal.Decimal
	ShadowLimit          decimal.Decimal
	BusinessNiche        string
	DigitalPresenceScore int
	Recommendation       string
	AnalyzedAt           time.Time
}

// OpportunityReport datos del informe PDF de oportunidad.
type OpportunityReport struct {
	CustomerName       string
	TaxID              string
	DeclaredIncome     decimal.Decimal
	RecentTransactions int
	RecentCredits      int
	Analysis           OpportunityAnalysisResponse
	AnnualLoss         decimal.Decimal
	PresenceSummary    string
	Maturity           string
	GeneratedAt        time.Time
}
