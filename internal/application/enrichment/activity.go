// Package enrichment obtiene la inteligencia de mercado de un cliente: infiere la actividad
// probable a partir de sus transacciones, consulta un proveedor externo (LLM) si está
// configurado y, ante cualquier falla, genera un perfil simulado determinístico.
package enrichment

import (
	"strings"

	"github.com/jhoicas/mei-mentor-api/internal/domain/opportunity"
)

// Activity actividad comercial probable del cliente.
type Activity int

const (
	ActivityNone Activity = iota
	ActivityFood
	ActivityTech
	ActivityCommerce
)

// Label etiqueta usada en el prompt y en los logs.
func (a Activity) Label() string {
	switch a {
	case ActivityFood:
		return "Alimentação/Doces"
	case ActivityTech:
		return "Serviços/Tech"
	case ActivityCommerce:
		return "Comércio/Serviços"
	default:
		return ""
	}
}

func (a Activity) String() string {
	if a == ActivityNone {
		return "none"
	}
	return a.Label()
}

// Palabras clave sin acentos; se comparan contra el texto plegado.
// El orden de evaluación importa: alimentación antes que servicios, servicios antes que comercio.
var activityRules = []struct {
	activity Activity
	keywords []string
}{
	{ActivityFood, []string{"doce", "alimentacao", "comida", "venda"}},
	{ActivityTech, []string{"servico", "tech", "software", "desenvolvimento"}},
	{ActivityCommerce, []string{"pix", "recebimento", "pagamento"}},
}

// InferActivity deduce la actividad a partir de las descripciones de las transacciones.
func InferActivity(descriptions []string) Activity {
	if len(descriptions) == 0 {
		return ActivityNone
	}
	text := opportunity.FoldText(strings.Join(descriptions, " "))
	for _, rule := range activityRules {
		if opportunity.ContainsAny(text, rule.keywords) {
			return rule.activity
		}
	}
	return ActivityNone
}
