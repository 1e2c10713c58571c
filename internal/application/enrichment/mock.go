package enrichment

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
)

// Randomizer fuente de aleatoriedad del perfil simulado. *rand.Rand (math/rand/v2) la satisface.
type Randomizer interface {
	// IntN devuelve un entero en [0, n).
	IntN(n int) int
}

type globalRandomizer struct{}

func (globalRandomizer) IntN(n int) int { return rand.IntN(n) }

// DefaultRandomizer usa la fuente global de math/rand/v2 (sin semilla fija).
func DefaultRandomizer() Randomizer { return globalRandomizer{} }

// between entero en [lo, hi).
func between(r Randomizer, lo, hi int) int {
	return lo + r.IntN(hi-lo)
}

func coinFlip(r Randomizer) bool {
	return r.IntN(2) == 1
}

const (
	nicheFood     = "Confeitaria/Alimentação"
	nicheTech     = "Desenvolvimento de Software/Serviços Tech"
	nicheCommerce = "Comércio/Serviços Gerais"

	maturityExpanding  = "Em Expansão"
	maturityFreelancer = "Freelancer"
	maturityBeginner   = "Iniciante"

	platformInstagram = "Instagram"
	platformTech      = "LinkedIn/GitHub"

	googleMapsPoints = 30

	approachFood = "Cliente identificado com presença ativa no Instagram (@%s) com %d seguidores. " +
		"Negócio de confeitaria em expansão com cadastro no Google Maps. " +
		"Abordagem recomendada: Destacar economia tributária e facilidade de emissão de notas fiscais " +
		"para aumentar credibilidade com clientes. Oferecer limite de crédito como diferencial competitivo."
	approachTech = "Perfil identificado como prestador de serviços tech (freelancer). " +
		"Presença em plataformas profissionais (LinkedIn/GitHub). " +
		"Abordagem recomendada: Enfatizar benefícios fiscais do MEI para profissionais de TI, " +
		"possibilidade de trabalhar com empresas maiores que exigem CNPJ, e acesso a crédito para " +
		"investimento em equipamentos e cursos de capacitação."
	approachCommerce = "Atividade comercial identificada através de análise de transações. " +
		"Abordagem recomendada: Apresentar os benefícios da formalização MEI de forma educativa, " +
		"destacando economia tributária, acesso a crédito e maior credibilidade no mercado."
	approachNoPresence = "Sem presença digital encontrada. " +
		"Abordagem recomendada: Focar em educação sobre os benefícios da formalização MEI, " +
		"destacando economia tributária e acesso a crédito como principais vantagens."
)

// followerTiers puntos de presencia por cantidad de seguidores (máximo 70).
var followerTiers = []struct {
	min    int
	points int
}{
	{2000, 70},
	{1000, 50},
	{500, 30},
	{100, 15},
}

// PresenceScore puntaje de presencia digital a partir de seguidores y Google Maps, tope 100.
func PresenceScore(followers int, hasGoogleMaps bool) int {
	score := 0
	for _, tier := range followerTiers {
		if followers >= tier.min {
			score = tier.points
			break
		}
	}
	if hasGoogleMaps {
		score += googleMapsPoints
	}
	return min(100, score)
}

// InstagramHandle nombre en minúsculas sin espacios ("Joao Silva" -> "joaosilva").
func InstagramHandle(customerName string) string {
	return strings.ReplaceAll(strings.ToLower(customerName), " ", "")
}

// MockProfile genera el perfil simulado según la actividad. La elección del perfil es
// determinística; solo los valores numéricos y las monedas dependen de r.
func MockProfile(customer *entity.Customer, activity Activity, r Randomizer) *entity.MarketIntelligence {
	switch activity {
	case ActivityFood:
		return foodProfile(customer, r)
	case ActivityTech:
		return techProfile(customer, r)
	case ActivityCommerce:
		return commerceProfile(customer, r)
	default:
		return NoPresenceProfile(customer.ID)
	}
}

func foodProfile(customer *entity.Customer, r Randomizer) *entity.MarketIntelligence {
	followers := between(r, 1500, 3500)
	return &entity.MarketIntelligence{
		ID:                    uuid.New().String(),
		CustomerID:            customer.ID,
		BusinessNiche:         ptr(nicheFood),
		DigitalPresenceScore:  ptr(PresenceScore(followers, true)),
		EstimatedMaturity:     ptr(maturityExpanding),
		RecommendedApproach:   ptr(fmt.Sprintf(approachFood, InstagramHandle(customer.Name), followers)),
		SocialMediaPlatform:   ptr(platformInstagram),
		SocialMediaFollowers:  ptr(followers),
		HasGoogleMapsPresence: ptr(true),
	}
}

func techProfile(customer *entity.Customer, r Randomizer) *entity.MarketIntelligence {
	return &entity.MarketIntelligence{
		ID:                    uuid.New().String(),
		CustomerID:            customer.ID,
		BusinessNiche:         ptr(nicheTech),
		DigitalPresenceScore:  ptr(between(r, 60, 85)),
		EstimatedMaturity:     ptr(maturityFreelancer),
		RecommendedApproach:   ptr(approachTech),
		SocialMediaPlatform:   ptr(platformTech),
		HasGoogleMapsPresence: ptr(false),
	}
}

func commerceProfile(customer *entity.Customer, r Randomizer) *entity.MarketIntelligence {
	mi := &entity.MarketIntelligence{
		ID:                  uuid.New().String(),
		CustomerID:          customer.ID,
		BusinessNiche:       ptr(nicheCommerce),
		EstimatedMaturity:   ptr(maturityBeginner),
		RecommendedApproach: ptr(approachCommerce),
	}
	if coinFlip(r) {
		mi.DigitalPresenceScore = ptr(between(r, 30, 60))
		mi.SocialMediaPlatform = ptr(platformInstagram)
		mi.SocialMediaFollowers = ptr(between(r, 100, 800))
	} else {
		mi.DigitalPresenceScore = ptr(between(r, 10, 30))
	}
	mi.HasGoogleMapsPresence = ptr(coinFlip(r))
	return mi
}

// NoPresenceProfile perfil sin presencia digital: puntaje 0 y enfoque educativo.
func NoPresenceProfile(customerID string) *entity.MarketIntelligence {
	return &entity.MarketIntelligence{
		ID:                    uuid.New().String(),
		CustomerID:            customerID,
		DigitalPresenceScore:  ptr(0),
		RecommendedApproach:   ptr(approachNoPresence),
		HasGoogleMapsPresence: ptr(false),
	}
}

func ptr[T any](v T) *T { return &v }
