package enrichment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/application/ports"
	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
	"github.com/jhoicas/mei-mentor-api/pkg/logger"
)

const defaultTimeout = 30 * time.Second

// Service enriquece el perfil del cliente. Nunca devuelve error: toda falla del proveedor
// externo se registra y se reemplaza por el perfil simulado.
type Service struct {
	provider ports.MarketIntelligenceProvider
	cache    ports.SuggestionCache
	random   Randomizer
	timeout  time.Duration
	log      *logger.Logger
}

// Option configura el Service.
type Option func(*Service)

// WithProvider habilita la ruta externa con el límite de tiempo indicado.
func WithProvider(p ports.MarketIntelligenceProvider, timeout time.Duration) Option {
	return func(s *Service) {
		s.provider = p
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithCache guarda las sugerencias validadas del proveedor.
func WithCache(c ports.SuggestionCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithRandomizer reemplaza la fuente aleatoria del perfil simulado.
func WithRandomizer(r Randomizer) Option {
	return func(s *Service) { s.random = r }
}

// NewService construye el servicio; sin WithProvider solo usa el perfil simulado.
func NewService(log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		random:  DefaultRandomizer(),
		timeout: defaultTimeout,
		log:     log.Named("enrichment"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enrich devuelve la inteligencia de mercado del cliente para la actividad inferida.
func (s *Service) Enrich(ctx context.Context, customer *entity.Customer, activity Activity) *entity.MarketIntelligence {
	if activity == ActivityNone {
		s.log.Debug().Str("customer_id", customer.ID).Msg("sin actividad identificada, perfil sin presencia")
		return NoPresenceProfile(customer.ID)
	}

	if s.provider != nil {
		suggestion, err := s.suggest(ctx, customer, activity)
		if err == nil {
			return toMarketIntelligence(customer.ID, suggestion)
		}
		s.log.Warn().Err(err).
			Str("customer_id", customer.ID).
			Str("activity", activity.Label()).
			Msg("enriquecimiento externo fallido, usando perfil simulado")
	}

	s.log.Debug().Str("customer_id", customer.ID).Str("activity", activity.Label()).Msg("perfil simulado")
	return MockProfile(customer, activity, s.random)
}

func (s *Service) suggest(ctx context.Context, customer *entity.Customer, activity Activity) (*dto.MarketIntelligenceSuggestion, error) {
	key := CacheKey(customer.ID, activity)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
		} else if cached != nil && ValidateSuggestion(cached) == nil {
			return cached, nil
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	suggestion, err := s.provider.SuggestMarketIntelligence(callCtx, customer.Name, activity.Label())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timeout tras %s", domain.ErrEnrichmentUnavailable, s.timeout)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrEnrichmentUnavailable, err)
	}
	if err := ValidateSuggestion(suggestion); err != nil {
		return nil, fmt.Errorf("%w: respuesta fuera de esquema: %v", domain.ErrEnrichmentUnavailable, err)
	}
	s.log.Info().
		Str("customer_id", customer.ID).
		Str("activity", activity.Label()).
		Dur("latency", time.Since(start)).
		Msg("enriquecimiento externo concluido")

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, suggestion); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("escritura de caché fallida")
		}
	}
	return suggestion, nil
}

// CacheKey clave de caché por cliente y actividad.
func CacheKey(customerID string, activity Activity) string {
	return fmt.Sprintf("enrichment:%s:%d", customerID, int(activity))
}

// ValidateSuggestion verifica el esquema de la respuesta del proveedor.
func ValidateSuggestion(s *dto.MarketIntelligenceSuggestion) error {
	if s == nil {
		return domain.NewValidationError("suggestion", "respuesta vacía")
	}
	fields := map[string]string{}
	if strings.TrimSpace(s.BusinessNiche) == "" {
		fields["businessNiche"] = "obligatorio"
	}
	if s.DigitalPresenceScore < 0 || s.DigitalPresenceScore > 100 {
		fields["digitalPresenceScore"] = "debe estar entre 0 y 100"
	}
	if strings.TrimSpace(s.EstimatedMaturity) == "" {
		fields["estimatedMaturity"] = "obligatorio"
	}
	if strings.TrimSpace(s.RecommendedApproach) == "" {
		fields["recommendedApproach"] = "obligatorio"
	}
	if s.SocialMediaFollowers != nil && *s.SocialMediaFollowers < 0 {
		fields["socialMediaFollowers"] = "no puede ser negativo"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func toMarketIntelligence(customerID string, s *dto.MarketIntelligenceSuggestion) *entity.MarketIntelligence {
	mi := &entity.MarketIntelligence{
		ID:                    uuid.New().String(),
		CustomerID:            customerID,
		BusinessNiche:         ptr(strings.TrimSpace(s.BusinessNiche)),
		DigitalPresenceScore:  ptr(s.DigitalPresenceScore),
		EstimatedMaturity:     ptr(strings.TrimSpace(s.EstimatedMaturity)),
		RecommendedApproach:   ptr(strings.TrimSpace(s.RecommendedApproach)),
		HasGoogleMapsPresence: ptr(s.HasGoogleMapsPresence),
	}
	if s.SocialMediaPlatform != nil && strings.TrimSpace(*s.SocialMediaPlatform) != "" {
		mi.SocialMediaPlatform = ptr(strings.TrimSpace(*s.SocialMediaPlatform))
	}
	if s.SocialMediaFollowers != nil {
		mi.SocialMediaFollowers = ptr(*s.SocialMediaFollowers)
	}
	return mi
}
