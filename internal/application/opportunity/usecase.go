// Package opportunity orquesta el análisis de oportunidad MEI: carga el cliente y sus
// transacciones, aplica las reglas de puntaje y finanzas, enriquece con inteligencia de
// mercado y persiste el resultado.
package opportunity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/application/enrichment"
	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
	rules "github.com/jhoicas/mei-mentor-api/internal/domain/opportunity"
	"github.com/jhoicas/mei-mentor-api/internal/domain/repository"
	"github.com/jhoicas/mei-mentor-api/pkg/logger"
	"github.com/jhoicas/mei-mentor-api/pkg/taxid"
)

// Enricher obtiene la inteligencia de mercado para la actividad inferida.
type Enricher interface {
	Enrich(ctx context.Context, customer *entity.Customer, activity enrichment.Activity) *entity.MarketIntelligence
}

// UseCase orquestador del análisis de oportunidad.
type UseCase struct {
	customers    repository.CustomerRepository
	transactions repository.TransactionRepository
	analyses     repository.OpportunityAnalysisRepository
	enricher     Enricher
	log          *logger.Logger
	now          func() time.Time
}

// NewUseCase construye el orquestador inyectando los puertos.
func NewUseCase(
	customers repository.CustomerRepository,
	transactions repository.TransactionRepository,
	analyses repository.OpportunityAnalysisRepository,
	enricher Enricher,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		customers:    customers,
		transactions: transactions,
		analyses:     analyses,
		enricher:     enricher,
		log:          log.Named("opportunity"),
		now:          time.Now,
	}
}

// AnalyzeByTaxID valida el CPF, busca el cliente y ejecuta el análisis completo.
func (uc *UseCase) AnalyzeByTaxID(ctx context.Context, rawTaxID string) (*dto.OpportunityAnalysisResponse, error) {
	customer, err := uc.findCustomer(ctx, rawTaxID)
	if err != nil {
		return nil, err
	}
	analysis, err := uc.Analyze(ctx, customer)
	if err != nil {
		return nil, err
	}
	return ToResponse(analysis), nil
}

// Analyze ejecuta el pipeline sobre un cliente ya cargado y persiste el resultado.
//
// Dos análisis simultáneos del mismo cliente compiten en el upsert sin bloqueo ni
// versionado: queda el último que escribe.
func (uc *UseCase) Analyze(ctx context.Context, customer *entity.Customer) (*entity.OpportunityAnalysis, error) {
	txs, err := uc.transactions.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("listar transacciones: %w", err)
	}

	revenue := rules.IdentifiedRevenue(txs)
	baseScore := rules.PotentialScore(txs, revenue)

	activity := enrichment.InferActivity(descriptions(txs))
	mi := uc.enricher.Enrich(ctx, customer, activity)
	mi.CustomerID = customer.ID

	score := rules.ApplyDigitalPresenceBonus(baseScore, mi)
	loss := rules.MonthlyLoss(revenue)

	analysis := &entity.OpportunityAnalysis{
		ID:                 uuid.New().String(),
		CustomerID:         customer.ID,
		PotentialScore:     score,
		MonthlyLoss:        loss,
		ShadowLimit:        rules.ShadowLimit(revenue, score),
		IdentifiedRevenue:  revenue,
		Recommendation:     rules.Recommendation(revenue, score, loss, mi),
		MarketIntelligence: mi,
		CreatedAt:          uc.now().UTC(),
	}

	if err := uc.analyses.Upsert(ctx, analysis); err != nil {
		return nil, fmt.Errorf("guardar análisis: %w", err)
	}

	uc.log.Info().
		Str("customer_id", customer.ID).
		Int("transactions", len(txs)).
		Str("activity", activity.String()).
		Int("base_score", baseScore).
		Int("score", score).
		Str("identified_revenue", revenue.StringFixed(2)).
		Msg("análisis de oportunidad concluido")
	return analysis, nil
}

// GetLatest devuelve el último análisis persistido sin recalcular.
func (uc *UseCase) GetLatest(ctx context.Context, rawTaxID string) (*dto.OpportunityAnalysisResponse, error) {
	customer, err := uc.findCustomer(ctx, rawTaxID)
	if err != nil {
		return nil, err
	}
	analysis, err := uc.analyses.GetByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("obtener análisis: %w", err)
	}
	if analysis == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAnalysisNotFound, customer.TaxID)
	}
	return ToResponse(analysis), nil
}

func (uc *UseCase) findCustomer(ctx context.Context, rawTaxID string) (*entity.Customer, error) {
	cpf, err := ValidateTaxID(rawTaxID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByTaxID(ctx, cpf)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, cpf)
	}
	return customer, nil
}

// ValidateTaxID normaliza el CPF o devuelve un ValidationError sobre el campo taxId.
func ValidateTaxID(raw string) (string, error) {
	cpf, err := taxid.ValidateCPF(raw)
	if err != nil {
		return "", domain.NewValidationError("taxId", strings.TrimPrefix(err.Error(), "taxid: "))
	}
	return cpf, nil
}

func descriptions(txs []*entity.Transaction) []string {
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		if strings.TrimSpace(tx.Description) != "" {
			out = append(out, tx.Description)
		}
	}
	return out
}

// ToResponse convierte el análisis a su representación HTTP.
func ToResponse(a *entity.OpportunityAnalysis) *dto.OpportunityAnalysisResponse {
	if a == nil {
		return nil
	}
	return &dto.OpportunityAnalysisResponse{
		ID:                 a.ID,
		CustomerID:         a.CustomerID,
		PotentialScore:     a.PotentialScore,
		MonthlyLoss:        a.MonthlyLoss,
		ShadowLimit:        a.ShadowLimit,
		IdentifiedRevenue:  a.IdentifiedRevenue,
		Recommendation:     a.Recommendation,
		MarketIntelligence: toMarketIntelligenceResponse(a.MarketIntelligence),
		CreatedAt:          a.CreatedAt,
	}
}

func toMarketIntelligenceResponse(mi *entity.MarketIntelligence) *dto.MarketIntelligenceResponse {
	if mi == nil {
		return nil
	}
	return &dto.MarketIntelligenceResponse{
		ID:                    mi.ID,
		CustomerID:            mi.CustomerID,
		BusinessNiche:         mi.BusinessNiche,
		DigitalPresenceScore:  mi.DigitalPresenceScore,
		EstimatedMaturity:     mi.EstimatedMaturity,
		RecommendedApproach:   mi.RecommendedApproach,
		SocialMediaPlatform:   mi.SocialMediaPlatform,
		SocialMediaFollowers:  mi.SocialMediaFollowers,
		HasGoogleMapsPresence: mi.HasGoogleMapsPresence,
	}
}
