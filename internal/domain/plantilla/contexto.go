package plantilla

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/salud"
)

// Contexto es el resolutor de placeholders: un mapa plano de claves
// normalizadas a valores ya formateados, más la colección de adherentes para
// la expansión de bloques. Se construye una vez por ciclo de generación.
type Contexto struct {
	valores       map[string]string
	beneficiarios []*entity.Beneficiary
}

// DatosContexto insumos para construir el contexto base (titular).
type DatosContexto struct {
	Cliente       *entity.Client
	Plan          *entity.Plan
	Empresa       *entity.Company
	Venta         *entity.Sale
	Beneficiarios []*entity.Beneficiary
	// Respuestas libres del cuestionario, clave por nombre de placeholder.
	// Se normalizan al cargarse y pisan cualquier clave derivada de entidades.
	Respuestas map[string]string
}

// NuevoContexto arma el resolutor con las claves de cliente, plan, empresa y
// venta, los placeholders de salud del titular y las respuestas libres.
func NuevoContexto(in DatosContexto) *Contexto {
	c := &Contexto{
		valores:       make(map[string]string, 64),
		beneficiarios: in.Beneficiarios,
	}

	if cl := in.Cliente; cl != nil {
		c.set("cliente.nombre", cl.FirstName)
		c.set("cliente.apellido", cl.LastName)
		c.set("cliente.nombre_completo", cl.FullName())
		c.set("cliente.documento", cl.IdentityNumber)
		c.set("cliente.email", cl.Email)
		c.set("cliente.telefono", cl.Phone)
		c.set("cliente.domicilio", cl.Address)
		if cl.BirthDate != nil {
			c.set("cliente.fecha_nacimiento", FormatearFecha(*cl.BirthDate))
		}
		// Alias en inglés: plantillas legadas importadas usan client.*
		c.set("client.first_name", cl.FirstName)
		c.set("client.last_name", cl.LastName)
		c.set("client.full_name", cl.FullName())
	}
	if p := in.Plan; p != nil {
		c.set("plan.nombre", p.Name)
		c.set("plan.codigo", p.Code)
		c.set("plan.precio_mensual", FormatearMoneda(p.MonthlyPrice))
		c.set("plan.descripcion", p.Description)
	}
	if e := in.Empresa; e != nil {
		c.set("empresa.nombre", e.Name)
		c.set("empresa.cuit", e.TaxID)
		c.set("empresa.domicilio", e.Address)
		c.set("empresa.telefono", e.Phone)
		c.set("empresa.email", e.Email)
	}
	if v := in.Venta; v != nil {
		c.set("venta.numero_contrato", v.ContractNumber)
		c.set("venta.total", FormatearMoneda(v.Total))
		if v.ContractStartDate != nil {
			c.set("venta.fecha_inicio", FormatearFecha(*v.ContractStartDate))
		}
	}

	// Titular: claves adherente.* apuntan al titular hasta que un bloque o un
	// override por adherente las pise.
	if titular := titularDe(in.Beneficiarios); titular != nil {
		c.cargarBeneficiario(titular)
	}

	for k, v := range in.Respuestas {
		c.set(k, v)
	}
	return c
}

// ConBeneficiario devuelve una copia del contexto con las claves adherente.*
// y los placeholders de salud apuntando a ese adherente (aislamiento por
// persona: las DDJJ de dos adherentes nunca comparten datos).
func (c *Contexto) ConBeneficiario(b *entity.Beneficiary, respuestasSalud map[string]string) *Contexto {
	out := c.clonar()
	out.cargarBeneficiario(b)
	for k, v := range respuestasSalud {
		out.set(k, v)
	}
	return out
}

// ConValores devuelve una copia con claves adicionales (override por iteración).
func (c *Contexto) ConValores(extra map[string]string) *Contexto {
	out := c.clonar()
	for k, v := range extra {
		out.set(k, v)
	}
	return out
}

// Resolver busca la clave normalizada; si trae namespace y no matchea, cae al
// nombre pelado (las respuestas libres se guardan sin namespace).
func (c *Contexto) Resolver(raw string) (string, bool) {
	k := NormalizeKey(raw)
	if v, ok := c.valores[k]; ok {
		return v, true
	}
	if i := strings.Index(k, "."); i >= 0 {
		if v, ok := c.valores[k[i+1:]]; ok {
			return v, true
		}
	}
	return "", false
}

// Beneficiarios expone la colección para la expansión de bloques.
func (c *Contexto) Beneficiarios() []*entity.Beneficiary {
	return c.beneficiarios
}

func (c *Contexto) set(key, value string) {
	c.valores[NormalizeKey(key)] = value
}

func (c *Contexto) clonar() *Contexto {
	out := &Contexto{
		valores:       make(map[string]string, len(c.valores)),
		beneficiarios: c.beneficiarios,
	}
	for k, v := range c.valores {
		out.valores[k] = v
	}
	return out
}

func (c *Contexto) cargarBeneficiario(b *entity.Beneficiary) {
	c.set("adherente.nombre", b.Name)
	c.set("adherente.parentesco", b.Relationship)
	c.set("adherente.documento", b.IdentityNumber)
	// Declaración de salud decodificada por el codec (único punto de parseo).
	for k, v := range salud.Placeholders(salud.Decode(b.HealthDetail)) {
		c.set("salud."+k, v)
	}
}

func titularDe(list []*entity.Beneficiary) *entity.Beneficiary {
	for _, b := range list {
		if b.IsPrimary {
			return b
		}
	}
	return nil
}

// FormatearMoneda formatea un monto en pesos: miles con punto, decimales con
// coma, dos decimales fijos.
func FormatearMoneda(v decimal.Decimal) string {
	fixed := v.StringFixed(2) // ej. "12345.60"
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")
	entero, dec, _ := strings.Cut(fixed, ".")

	var sb strings.Builder
	for i, r := range entero {
		if i > 0 && (len(entero)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}
	out := "$ " + sb.String() + "," + dec
	if neg {
		out = "-" + out
	}
	return out
}

// FormatearFecha formatea una fecha como dd/mm/aaaa.
func FormatearFecha(t time.Time) string {
	return t.Format("02/01/2006")
}
