package plantilla

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// quitaAcentos descompone a NFD, elimina marcas diacríticas y recompone.
var quitaAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey lleva un placeholder escrito como "{{Nombre}}", "nombre" o
// "Cliente.Número_Documento" a su clave canónica: minúsculas, sin llaves,
// sin acentos, espacios como guión bajo. El namespace (token antes del punto)
// se conserva; el fallback sin namespace lo aplica Contexto.Resolver.
func NormalizeKey(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "{{")
	s = strings.TrimSuffix(s, "}}")
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	if out, _, err := transform.String(quitaAcentos, s); err == nil {
		s = out
	}
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
