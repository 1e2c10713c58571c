// Package opportunity contiene las reglas puras del análisis de oportunidad MEI:
// clasificación de transacciones, ingreso identificado, puntaje de potencial y
// fórmulas financieras (pérdida mensual, límite sombra y recomendación).
//
// Ninguna función de este paquete devuelve error: las entradas numéricas bien
// formadas (ingreso >= 0) siempre producen un resultado.
package opportunity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// commercialKeywords se comparan contra la descripción en minúsculas y sin acentos,
// por eso "servico" cubre tanto "serviço" como "servico".
var commercialKeywords = []string{
	"pix",
	"servico",
	"venda",
	"pagamento",
	"recebimento",
	"cliente",
	"fornecedor",
}

// IsCommercialPattern indica si la descripción sugiere actividad comercial.
// Es contención de subcadena pura, sin límites de palabra: "clientela" también coincide.
func IsCommercialPattern(description string) bool {
	if strings.TrimSpace(description) == "" {
		return false
	}
	return ContainsAny(FoldText(description), commercialKeywords)
}

// FoldText pasa a minúsculas y elimina marcas diacríticas ("Serviço" -> "servico").
func FoldText(s string) string {
	lower := strings.ToLower(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lower)
	if err != nil {
		return lower
	}
	return folded
}

// ContainsAny indica si text contiene alguna de las subcadenas.
func ContainsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
