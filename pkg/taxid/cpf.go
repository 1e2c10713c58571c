// Package taxid normaliza y valida documentos de persona física brasileña (CPF).
package taxid

import "fmt"

// CPFLength cantidad de dígitos de un CPF normalizado.
const CPFLength = 11

// NormalizeCPF elimina todo lo que no sea dígito: "123.456.789-01" -> "12345678901".
func NormalizeCPF(raw string) string {
	return string(extractDigits(raw))
}

// IsValidCPF indica si el documento, una vez normalizado, tiene exactamente 11 dígitos.
// No se verifica el dígito verificador: los perfiles de demostración usan CPFs sintéticos.
func IsValidCPF(raw string) bool {
	return len(extractDigits(raw)) == CPFLength
}

// ValidateCPF devuelve el CPF normalizado o un error descriptivo.
func ValidateCPF(raw string) (string, error) {
	digits := extractDigits(raw)
	if len(digits) == 0 {
		return "", fmt.Errorf("taxid: CPF vacío")
	}
	if len(digits) != CPFLength {
		return "", fmt.Errorf("taxid: CPF debe tener %d dígitos, se encontraron %d", CPFLength, len(digits))
	}
	return string(digits), nil
}

func extractDigits(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return out
}

// FormatCPF "12345678901" -> "123.456.789-01". Si no tiene 11 dígitos lo devuelve sin cambios.
func FormatCPF(raw string) string {
	d := extractDigits(raw)
	if len(d) != CPFLength {
		return raw
	}
	return fmt.Sprintf("%s.%s.%s-%s", d[0:3], d[3:6], d[6:9], d[9:11])
}
