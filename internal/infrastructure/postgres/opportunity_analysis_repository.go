package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
	"github.com/jhoicas/mei-mentor-api/internal/domain/repository"
)

var _ repository.OpportunityAnalysisRepository = (*AnalysisRepo)(nil)

const analysisSelect = `
	SELECT a.id, a.customer_id, a.potential_score, a.monthly_loss, a.shadow_limit,
	       a.identified_revenue, a.recommendation, a.created_at,
	       mi.id, mi.business_niche, mi.digital_presence_score, mi.estimated_maturity,
	       mi.recommended_approach, mi.social_media_platform, mi.social_media_followers,
	       mi.has_google_maps_presence
	FROM opportunity_analyses a
	LEFT JOIN market_intelligence mi ON mi.id = a.market_intelligence_id`

// AnalysisRepo implementación de OpportunityAnalysisRepository.
type AnalysisRepo struct {
	q Querier
}

// NewOpportunityAnalysisRepository construye el adaptador.
func NewOpportunityAnalysisRepository(q Querier) *AnalysisRepo {
	return &AnalysisRepo{q: q}
}

// Upsert guarda inteligencia de mercado y análisis en una transacción (ON CONFLICT por customer_id).
// Los IDs persistidos se copian de vuelta a a y a.MarketIntelligence.
func (r *AnalysisRepo) Upsert(ctx context.Context, a *entity.OpportunityAnalysis) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		var miID *string
		if mi := a.MarketIntelligence; mi != nil {
			mi.CustomerID = a.CustomerID
			err := tx.QueryRow(ctx, `
				INSERT INTO market_intelligence (
					id, customer_id, business_niche, digital_presence_score, estimated_maturity,
					recommended_approach, social_media_platform, social_media_followers, has_google_maps_presence)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				ON CONFLICT (customer_id) DO UPDATE SET
					business_niche = EXCLUDED.business_niche,
					digital_presence_score = EXCLUDED.digital_presence_score,
					estimated_maturity = EXCLUDED.estimated_maturity,
					recommended_approach = EXCLUDED.recommended_approach,
					social_media_platform = EXCLUDED.social_media_platform,
					social_media_followers = EXCLUDED.social_media_followers,
					has_google_maps_presence = EXCLUDED.has_google_maps_presence
				RETURNING id`,
				mi.ID, mi.CustomerID, mi.BusinessNiche, mi.DigitalPresenceScore, mi.EstimatedMaturity,
				mi.RecommendedApproach, mi.SocialMediaPlatform, mi.SocialMediaFollowers, mi.HasGoogleMapsPresence,
			).Scan(&mi.ID)
			if err != nil {
				return mapAnalysisErr("upsert market intelligence", err)
			}
			miID = &mi.ID
		}

		err := tx.QueryRow(ctx, `
			INSERT INTO opportunity_analyses (
				id, customer_id, potential_score, monthly_loss, shadow_limit,
				identified_revenue, recommendation, market_intelligence_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (customer_id) DO UPDATE SET
				potential_score = EXCLUDED.potential_score,
				monthly_loss = EXCLUDED.monthly_loss,
				shadow_limit = EXCLUDED.shadow_limit,
				identified_revenue = EXCLUDED.identified_revenue,
				recommendation = EXCLUDED.recommendation,
				market_intelligence_id = EXCLUDED.market_intelligence_id,
				created_at = EXCLUDED.created_at
			RETURNING id`,
			a.ID, a.CustomerID, a.PotentialScore, a.MonthlyLoss, a.ShadowLimit,
			a.IdentifiedRevenue, a.Recommendation, miID, a.CreatedAt,
		).Scan(&a.ID)
		if err != nil {
			return mapAnalysisErr("upsert opportunity analysis", err)
		}
		return nil
	})
}

func mapAnalysisErr(op string, err error) error {
	if isForeignKeyViolation(err) {
		return domain.ErrCustomerNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// GetByCustomerID devuelve el análisis vigente del cliente o (nil, nil).
func (r *AnalysisRepo) GetByCustomerID(ctx context.Context, customerID string) (*entity.OpportunityAnalysis, error) {
	row := r.q.QueryRow(ctx, analysisSelect+` WHERE a.customer_id = $1`, customerID)
	a, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get opportunity analysis: %w", err)
	}
	return a, nil
}

// ListWithCustomer análisis de la cartera con nombre y CPF, por puntaje descendente.
func (r *AnalysisRepo) ListWithCustomer(ctx context.Context) ([]*repository.AnalysisListItem, error) {
	query := `
		SELECT c.name, c.tax_id, q.* FROM (` + analysisSelect + `) q
		JOIN customers c ON c.id = q.customer_id
		ORDER BY q.potential_score DESC, c.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list opportunity analyses: %w", err)
	}
	defer rows.Close()

	var list []*repository.AnalysisListItem
	for rows.Next() {
		var item repository.AnalysisListItem
		a, err := scanAnalysis(rows, &item.CustomerName, &item.TaxID)
		if err != nil {
			return nil, fmt.Errorf("scan opportunity analysis: %w", err)
		}
		item.Analysis = a
		list = append(list, &item)
	}
	return list, rows.Err()
}

// scanAnalysis lee las columnas de analysisSelect, precedidas por prefix si se indica.
func scanAnalysis(row pgx.Row, prefix ...any) (*entity.OpportunityAnalysis, error) {
	var (
		a    entity.OpportunityAnalysis
		miID *string
		mi   entity.MarketIntelligence
	)
	dest := append(prefix,
		&a.ID, &a.CustomerID, &a.PotentialScore, &a.MonthlyLoss, &a.ShadowLimit,
		&a.IdentifiedRevenue, &a.Recommendation, &a.CreatedAt,
		&miID, &mi.BusinessNiche, &mi.DigitalPresenceScore, &mi.EstimatedMaturity,
		&mi.RecommendedApproach, &mi.SocialMediaPlatform, &mi.SocialMediaFollowers,
		&mi.HasGoogleMapsPresence,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if miID != nil {
		mi.ID = *miID
		mi.CustomerID = a.CustomerID
		a.MarketIntelligence = &mi
	}
	return &a, nil
}
