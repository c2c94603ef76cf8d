// Package tracking implementa la emisión de tracking codes y el
// enmascaramiento de números telefónicos por enlace.
//
// El tracking code es el token opaco que identifica un enlace de afiliado;
// viaja en la URL generada (?ref=<code>) y deriva el sufijo del número
// enmascarado cuando la empresa usa telefonía IP (prefijo 050).
package tracking

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// CodeLength longitud del tracking code en caracteres hex.
const CodeLength = 8

// NewCode genera un tracking code aleatorio de 8 caracteres hexadecimales.
// La unicidad global la garantiza el constraint UNIQUE de la tabla; ante
// colisión el caso de uso reintenta con un código fresco.
func NewCode() (string, error) {
	buf := make([]byte, CodeLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("tracking: generar code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// MaskPhone deriva el número telefónico por enlace a partir del número base
// de la empresa y el tracking code:
//
//   - Prefijos free-call no geográficos (0120/0800): el número no admite
//     sufijo por enlace; se devuelve limpio tal cual.
//   - Telefonía IP (050): se conservan los 3 + 4 primeros dígitos y el grupo
//     final se reemplaza por los 4 primeros caracteres del code, mapeando
//     cada letra hex a su charcode módulo 10. Extensión distinta y atribuible
//     por enlace, con pinta de número real.
//   - Cualquier otro número: limpio tal cual.
//
// Devuelve cadena vacía si el número base está vacío.
func MaskPhone(base, code string) string {
	clean := cleanDigits(base)
	if clean == "" {
		return ""
	}

	if strings.HasPrefix(clean, "0120") || strings.HasPrefix(clean, "0800") {
		return clean
	}

	if strings.HasPrefix(clean, "050") && len(clean) >= 7 && len(code) >= 4 {
		prefix := clean[0:3]
		middle := clean[3:7]
		suffix := digitsFromCode(code[0:4])
		return prefix + "-" + middle + "-" + suffix
	}

	return clean
}

// cleanDigits elimina todo carácter no numérico (guiones, espacios, paréntesis).
func cleanDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// digitsFromCode convierte un fragmento hex en dígitos decimales: las letras
// a-f se reemplazan por su charcode % 10, los dígitos quedan intactos.
func digitsFromCode(frag string) string {
	out := []byte(frag)
	for i, c := range out {
		if c >= 'a' && c <= 'f' {
			out[i] = '0' + byte(int(c)%10)
		}
	}
	return string(out)
}
