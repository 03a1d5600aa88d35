// Package salud serializa y deserializa la declaración jurada de salud de un
// adherente hacia y desde la única columna de texto libre que ofrece el esquema
// (beneficiaries.health_detail). El formato es una lista de cláusulas unidas
// por "; "; la decodificación es tolerante: una cláusula irreconocible se
// descarta, nunca falla el decode completo.
package salud

import (
	"strconv"
	"strings"
)

// Preguntas fijas de la declaración jurada, en orden de emisión.
// El texto es parte del formato persistido: no cambiar sin migrar los datos.
var Preguntas = []string{
	"¿Tiene o tuvo alguna enfermedad cardíaca?",
	"¿Tiene o tuvo diabetes?",
	"¿Tiene o tuvo hipertensión arterial?",
	"¿Fue sometido a alguna cirugía?",
	"¿Toma medicación de forma habitual?",
	"¿Tiene o tuvo alguna enfermedad oncológica?",
	"¿Padece enfermedades respiratorias crónicas?",
	"¿Tiene alergias de importancia?",
}

// Hábitos fijos; solo los marcados en true aparecen en la cláusula "Hábitos: ".
var Habitos = []string{
	"fuma",
	"consume alcohol",
	"realiza actividad física",
}

// Prefijos de cláusulas no-pregunta. También parte del formato persistido.
const (
	prefHabitos      = "Hábitos: "
	prefPeso         = "Peso: "
	prefEstatura     = "Estatura: "
	prefMenstruacion = "Última menstruación/embarazo: "

	// Detalle por defecto cuando una respuesta afirmativa no trae texto.
	detalleDefault = "sin detalle"

	separador = "; "
)

// Respuesta a una pregunta sí/no con detalle libre.
type Respuesta struct {
	Si         bool
	Detalle    string
	Contestada bool // false solo cuando no existe declaración alguna
}

// Declaracion es la vista estructurada de la declaración jurada de una persona.
type Declaracion struct {
	Respuestas   map[string]Respuesta // clave: texto exacto de la pregunta
	Habitos      map[string]bool      // clave: texto exacto del hábito
	Peso         string
	Estatura     string
	Menstruacion string
}

// Vacia devuelve una declaración sin respuestas (ninguna pregunta contestada).
func Vacia() Declaracion {
	return Declaracion{
		Respuestas: make(map[string]Respuesta, len(Preguntas)),
		Habitos:    make(map[string]bool, len(Habitos)),
	}
}

// TieneCondiciones indica si la declaración contiene al menos una respuesta
// afirmativa (resumen para Beneficiary.HasPreexisting).
func (d Declaracion) TieneCondiciones() bool {
	for _, r := range d.Respuestas {
		if r.Si {
			return true
		}
	}
	return false
}

// Encode serializa la declaración al formato delimitado de una sola columna.
// Emite solo lo presente: respuestas afirmativas, hábitos marcados y campos
// biométricos no vacíos. Determinista: el orden sigue Preguntas y Habitos.
func Encode(d Declaracion) string {
	var clauses []string
	for _, p := range Preguntas {
		r, ok := d.Respuestas[p]
		if !ok || !r.Si {
			continue
		}
		detalle := strings.TrimSpace(r.Detalle)
		if detalle == "" {
			detalle = detalleDefault
		}
		clauses = append(clauses, p+": "+detalle)
	}
	var marcados []string
	for _, h := range Habitos {
		if d.Habitos[h] {
			marcados = append(marcados, h)
		}
	}
	if len(marcados) > 0 {
		clauses = append(clauses, prefHabitos+strings.Join(marcados, ", "))
	}
	if strings.TrimSpace(d.Peso) != "" {
		clauses = append(clauses, prefPeso+strings.TrimSpace(d.Peso))
	}
	if strings.TrimSpace(d.Estatura) != "" {
		clauses = append(clauses, prefEstatura+strings.TrimSpace(d.Estatura))
	}
	if strings.TrimSpace(d.Menstruacion) != "" {
		clauses = append(clauses, prefMenstruacion+strings.TrimSpace(d.Menstruacion))
	}
	return strings.Join(clauses, separador)
}

// Decode reconstruye la declaración desde el texto persistido. Nunca falla:
// segmentos con prefijo desconocido se descartan. Si el texto está vacío no
// hay declaración y todas las preguntas quedan sin contestar; si hay algo de
// texto, toda pregunta no mencionada se considera contestada en "no" (el
// formato solo persiste las afirmativas).
func Decode(text string) Declaracion {
	d := Vacia()
	text = strings.TrimSpace(text)
	if text == "" {
		return d
	}

	// Hubo declaración: las preguntas ausentes son "no" explícitos.
	for _, p := range Preguntas {
		d.Respuestas[p] = Respuesta{Si: false, Contestada: true}
	}

	for _, seg := range strings.Split(text, separador) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if matchPregunta(&d, seg) {
			continue
		}
		switch {
		case strings.HasPrefix(seg, prefHabitos):
			for _, h := range strings.Split(strings.TrimPrefix(seg, prefHabitos), ", ") {
				h = strings.TrimSpace(h)
				if h != "" {
					d.Habitos[h] = true
				}
			}
		case strings.HasPrefix(seg, prefPeso):
			d.Peso = strings.TrimSpace(strings.TrimPrefix(seg, prefPeso))
		case strings.HasPrefix(seg, prefEstatura):
			d.Estatura = strings.TrimSpace(strings.TrimPrefix(seg, prefEstatura))
		case strings.HasPrefix(seg, prefMenstruacion):
			d.Menstruacion = strings.TrimSpace(strings.TrimPrefix(seg, prefMenstruacion))
		}
		// Prefijo desconocido: se ignora (texto legado o editado a mano).
	}
	return d
}

// matchPregunta intenta interpretar el segmento como respuesta afirmativa a
// una pregunta fija. El detalle es lo que sigue al primer ": " después del
// texto de la pregunta.
func matchPregunta(d *Declaracion, seg string) bool {
	for _, p := range Preguntas {
		if !strings.HasPrefix(seg, p) {
			continue
		}
		resto := seg[len(p):]
		detalle := strings.TrimSpace(strings.TrimPrefix(resto, ":"))
		if detalle == "" {
			detalle = detalleDefault
		}
		d.Respuestas[p] = Respuesta{Si: true, Detalle: detalle, Contestada: true}
		return true
	}
	return false
}

// Placeholders deriva los valores de interpolación de la declaración, con una
// clave por pregunta (pregunta_1..pregunta_n) más habitos, peso, estatura y
// ultima_menstruacion. Único punto de derivación: la generación de documentos
// consume este mapa en lugar de parsear el texto por su cuenta.
func Placeholders(d Declaracion) map[string]string {
	out := make(map[string]string, len(Preguntas)+4)
	for i, p := range Preguntas {
		key := "pregunta_" + strconv.Itoa(i+1)
		r := d.Respuestas[p]
		switch {
		case !r.Contestada:
			out[key] = ""
		case r.Si:
			out[key] = "Sí - " + r.Detalle
		default:
			out[key] = "No"
		}
	}
	var marcados []string
	for _, h := range Habitos {
		if d.Habitos[h] {
			marcados = append(marcados, h)
		}
	}
	out["habitos"] = strings.Join(marcados, ", ")
	out["peso"] = d.Peso
	out["estatura"] = d.Estatura
	out["ultima_menstruacion"] = d.Menstruacion
	return out
}
