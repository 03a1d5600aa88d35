package plantilla

import (
	"regexp"
	"strings"
)

// Marcadores de bloque de adherentes en el cuerpo de la plantilla.
const (
	bloqueInicio = "{{#beneficiarios}}"
	bloqueFin    = "{{/beneficiarios}}"
)

var rePlaceholder = regexp.MustCompile(`\{\{([^{}#/]+)\}\}`)

// Resultado de una interpolación: el texto final y las claves que quedaron
// sin resolver (los marcadores literales permanecen en el texto; es una
// condición diagnosticable, no un error).
type Resultado struct {
	Texto       string
	SinResolver []string
}

// Interpolar expande el cuerpo contra el contexto: primero los bloques de
// adherentes (una iteración por miembro de la colección, con contexto
// propio), luego los placeholders escalares. Determinista: misma plantilla y
// mismo contexto producen salida idéntica byte a byte.
func Interpolar(body string, ctx *Contexto) Resultado {
	body = expandirBloques(body, ctx)
	return sustituir(body, ctx)
}

// expandirBloques repite cada sección {{#beneficiarios}}...{{/beneficiarios}}
// por adherente, con las claves adherente.* y salud.* de esa persona.
func expandirBloques(body string, ctx *Contexto) string {
	for {
		start := strings.Index(body, bloqueInicio)
		if start < 0 {
			return body
		}
		rest := body[start+len(bloqueInicio):]
		end := strings.Index(rest, bloqueFin)
		if end < 0 {
			// Bloque sin cierre: se deja tal cual, el marcador quedará visible.
			return body
		}
		inner := rest[:end]

		var sb strings.Builder
		for _, b := range ctx.Beneficiarios() {
			iterCtx := ctx.ConBeneficiario(b, nil)
			r := sustituir(inner, iterCtx)
			sb.WriteString(r.Texto)
		}
		body = body[:start] + sb.String() + rest[end+len(bloqueFin):]
	}
}

// sustituir reemplaza cada placeholder escalar resuelto; los no resueltos
// quedan literales y se reportan.
func sustituir(body string, ctx *Contexto) Resultado {
	var sinResolver []string
	out := rePlaceholder.ReplaceAllStringFunc(body, func(m string) string {
		if v, ok := ctx.Resolver(m); ok {
			return v
		}
		sinResolver = append(sinResolver, NormalizeKey(m))
		return m
	})
	return Resultado{Texto: out, SinResolver: sinResolver}
}
