package ventas_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seguroplus/polizas-api/internal/application/dto"
	"github.com/seguroplus/polizas-api/internal/application/ventas"
	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/salud"
	"github.com/seguroplus/polizas-api/internal/domain/workflow"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ─────────────────────────────────────────────────────────────────────────────

type saleStore struct{ sales map[string]*entity.Sale }

func newSaleStore(sales ...*entity.Sale) *saleStore {
	s := &saleStore{sales: map[string]*entity.Sale{}}
	for _, v := range sales {
		copia := *v
		s.sales[v.ID] = &copia
	}
	return s
}

func (s *saleStore) Create(v *entity.Sale) error { s.sales[v.ID] = v; return nil }
func (s *saleStore) GetByID(id string) (*entity.Sale, error) {
	v, ok := s.sales[id]
	if !ok {
		return nil, nil
	}
	copia := *v
	return &copia, nil
}
func (s *saleStore) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, v := range s.sales {
		if v.CompanyID == companyID && (status == "" || v.Status == status) {
			out = append(out, v)
		}
	}
	return out, nil
}
func (s *saleStore) ListBySalesperson(id string, limit, offset int) ([]*entity.Sale, error) {
	return nil, nil
}
func (s *saleStore) Update(v *entity.Sale) error {
	copia := *v
	s.sales[v.ID] = &copia
	return nil
}
func (s *saleStore) Delete(id string) error                              { delete(s.sales, id); return nil }
func (s *saleStore) SetGenerationLock(id string, locked bool) (bool, error) { return true, nil }

type benStore struct{ list []*entity.Beneficiary }

func (s *benStore) Create(b *entity.Beneficiary) error { s.list = append(s.list, b); return nil }
func (s *benStore) GetByID(id string) (*entity.Beneficiary, error) {
	for _, b := range s.list {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}
func (s *benStore) ListBySale(saleID string) ([]*entity.Beneficiary, error) {
	var out []*entity.Beneficiary
	for _, b := range s.list {
		if b.SaleID == saleID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (s *benStore) Update(b *entity.Beneficiary) error { return nil }
func (s *benStore) Delete(id string) error {
	for i, b := range s.list {
		if b.ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return nil
		}
	}
	return nil
}

type clientStore struct{ clients map[string]*entity.Client }

func (s *clientStore) Create(c *entity.Client) error { return nil }
func (s *clientStore) GetByID(id string) (*entity.Client, error) {
	return s.clients[id], nil
}
func (s *clientStore) ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error) {
	return nil, nil
}
func (s *clientStore) Update(c *entity.Client) error { return nil }
func (s *clientStore) Delete(id string) error        { return nil }

type planStore struct{ plans map[string]*entity.Plan }

func (s *planStore) Create(p *entity.Plan) error { return nil }
func (s *planStore) GetByID(id string) (*entity.Plan, error) {
	return s.plans[id], nil
}
func (s *planStore) ListByCompany(companyID string, limit, offset int) ([]*entity.Plan, error) {
	return nil, nil
}
func (s *planStore) Update(p *entity.Plan) error { return nil }

type transStore struct{ recs []*entity.StatusTransition }

func (s *transStore) Append(t *entity.StatusTransition) error { s.recs = append(s.recs, t); return nil }
func (s *transStore) ListBySale(saleID string) ([]*entity.StatusTransition, error) {
	return s.recs, nil
}

func armarUseCase(sales *saleStore, bens *benStore, trans *transStore) *ventas.SaleUseCase {
	return ventas.NewSaleUseCase(
		sales,
		bens,
		&clientStore{clients: map[string]*entity.Client{
			"cliente-1": {ID: "cliente-1", CompanyID: "empresa-1", FirstName: "Ana", LastName: "García"},
		}},
		&planStore{plans: map[string]*entity.Plan{
			"plan-1": {ID: "plan-1", CompanyID: "empresa-1", Name: "Plan Oro"},
		}},
		trans,
	)
}

func elVendedor() workflow.Actor {
	return workflow.Actor{ID: "vendedor-1", Role: entity.RoleVendedor}
}

func borrador() *entity.Sale {
	return &entity.Sale{
		ID:            "venta-1",
		CompanyID:     "empresa-1",
		ClientID:      "cliente-1",
		PlanID:        "plan-1",
		SalespersonID: "vendedor-1",
		Status:        entity.SaleStatusBorrador,
		Total:         decimal.NewFromInt(100000),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Alta y edición
// ─────────────────────────────────────────────────────────────────────────────

func TestCreate_VentaEnBorrador(t *testing.T) {
	sales := newSaleStore()
	uc := armarUseCase(sales, &benStore{}, &transStore{})

	out, err := uc.Create("empresa-1", "vendedor-1", dto.CreateSaleRequest{
		ClientID: "cliente-1", PlanID: "plan-1", Total: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusBorrador, out.Status)
	assert.Equal(t, "vendedor-1", out.SalespersonID)
	assert.NotEmpty(t, out.ID)
}

func TestCreate_ClienteDeOtraEmpresaDenegado(t *testing.T) {
	uc := armarUseCase(newSaleStore(), &benStore{}, &transStore{})

	_, err := uc.Create("otra-empresa", "vendedor-1", dto.CreateSaleRequest{
		ClientID: "cliente-1", PlanID: "plan-1",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdate_SoloMientrasEditable(t *testing.T) {
	casos := []struct {
		estado   string
		editable bool
	}{
		{entity.SaleStatusBorrador, true},
		{entity.SaleStatusRechazado, true},
		{entity.SaleStatusPendiente, false},
		{entity.SaleStatusAuditoria, false},
		{entity.SaleStatusAprobado, false},
		{entity.SaleStatusEnviado, false},
		{entity.SaleStatusFirmado, false},
		{entity.SaleStatusCompletado, false},
		{entity.SaleStatusCancelado, false},
	}
	for _, c := range casos {
		t.Run(c.estado, func(t *testing.T) {
			sale := borrador()
			sale.Status = c.estado
			uc := armarUseCase(newSaleStore(sale), &benStore{}, &transStore{})

			_, err := uc.Update("venta-1", elVendedor(), dto.UpdateSaleRequest{
				Total: decimal.NewFromInt(200000),
			})
			if c.editable {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrSaleNotEditable)
			}
		})
	}
}

func TestUpdate_OtroVendedorDenegado(t *testing.T) {
	uc := armarUseCase(newSaleStore(borrador()), &benStore{}, &transStore{})

	_, err := uc.Update("venta-1",
		workflow.Actor{ID: "otro-vendedor", Role: entity.RoleVendedor},
		dto.UpdateSaleRequest{Total: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ─────────────────────────────────────────────────────────────────────────────
// Envío a auditoría
// ─────────────────────────────────────────────────────────────────────────────

func TestSubmit_RequiereTitular(t *testing.T) {
	uc := armarUseCase(newSaleStore(borrador()), &benStore{}, &transStore{})

	_, err := uc.Submit("venta-1", elVendedor())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmit_PasaAPendienteConHistorial(t *testing.T) {
	bens := &benStore{list: []*entity.Beneficiary{
		{ID: "ben-1", SaleID: "venta-1", Name: "Ana García", IsPrimary: true},
	}}
	trans := &transStore{}
	uc := armarUseCase(newSaleStore(borrador()), bens, trans)

	out, err := uc.Submit("venta-1", elVendedor())
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPendiente, out.Status)

	require.Len(t, trans.recs, 1)
	assert.Equal(t, entity.SaleStatusBorrador, trans.recs[0].PreviousStatus)
	assert.Equal(t, entity.SaleStatusPendiente, trans.recs[0].NewStatus)
}

func TestSubmit_ReenvioTrasRechazo(t *testing.T) {
	rechazada := borrador()
	rechazada.Status = entity.SaleStatusRechazado
	rechazada.AuditStatus = entity.AuditInfoSolicitada
	bens := &benStore{list: []*entity.Beneficiary{
		{ID: "ben-1", SaleID: "venta-1", Name: "Ana García", IsPrimary: true},
	}}
	uc := armarUseCase(newSaleStore(rechazada), bens, &transStore{})

	out, err := uc.Submit("venta-1", elVendedor())
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPendiente, out.Status)
}

func TestCancel_TerminaLaVenta(t *testing.T) {
	trans := &transStore{}
	uc := armarUseCase(newSaleStore(borrador()), &benStore{}, trans)

	out, err := uc.Cancel("venta-1", elVendedor(), "el cliente desistió")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelado, out.Status)
	require.Len(t, trans.recs, 1)
	assert.Contains(t, trans.recs[0].Reason, "desistió")
}

// ─────────────────────────────────────────────────────────────────────────────
// Adherentes y declaración de salud
// ─────────────────────────────────────────────────────────────────────────────

func TestAdherente_AltaYBajaSoloEditable(t *testing.T) {
	bens := &benStore{}
	uc := ventas.NewBeneficiaryUseCase(newSaleStore(borrador()), bens)

	out, err := uc.Add("venta-1", elVendedor(), dto.BeneficiaryRequest{
		Name: "Luis García", Relationship: "cónyuge", IdentityNumber: "28111222",
		RequiresSignature: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Luis García", out.Name)

	require.NoError(t, uc.Remove("venta-1", out.ID, elVendedor()))
	assert.Empty(t, bens.list)
}

func TestAdherente_AltaDenegadaFueraDeEdicion(t *testing.T) {
	enviada := borrador()
	enviada.Status = entity.SaleStatusEnviado
	uc := ventas.NewBeneficiaryUseCase(newSaleStore(enviada), &benStore{})

	_, err := uc.Add("venta-1", elVendedor(), dto.BeneficiaryRequest{
		Name: "Luis García", IdentityNumber: "28111222",
	})
	assert.ErrorIs(t, err, domain.ErrSaleNotEditable)
}

func TestDeclareHealth_CodificaYResume(t *testing.T) {
	bens := &benStore{list: []*entity.Beneficiary{
		{ID: "ben-1", SaleID: "venta-1", Name: "Ana García", IsPrimary: true},
	}}
	uc := ventas.NewBeneficiaryUseCase(newSaleStore(borrador()), bens)

	out, err := uc.DeclareHealth("venta-1", "ben-1", dto.HealthDeclarationRequest{
		Answers: []dto.HealthAnswer{
			{Question: 3, Yes: true, Detail: "hipertensión controlada"},
			{Question: 2, Yes: false},
			{Question: 99, Yes: true}, // fuera de rango: se descarta
		},
		Habits: map[string]bool{"fuma": true, "realiza actividad física": false},
		Weight: "70 kg",
		Height: "1,68 m",
	})
	require.NoError(t, err)
	assert.True(t, out.HasPreexisting)

	b, _ := bens.GetByID("ben-1")
	d := salud.Decode(b.HealthDetail)
	assert.True(t, d.Respuestas[salud.Preguntas[2]].Si)
	assert.Equal(t, "hipertensión controlada", d.Respuestas[salud.Preguntas[2]].Detalle)
	assert.False(t, d.Respuestas[salud.Preguntas[1]].Si)
	assert.True(t, d.Habitos["fuma"])
	assert.False(t, d.Habitos["realiza actividad física"])
	assert.Equal(t, "70 kg", d.Peso)
	assert.False(t, strings.Contains(b.HealthDetail, "pregunta 99"))
}

func TestDeclareHealth_BloqueadaTrasElEnvio(t *testing.T) {
	enviada := borrador()
	enviada.Status = entity.SaleStatusEnviado
	bens := &benStore{list: []*entity.Beneficiary{
		{ID: "ben-1", SaleID: "venta-1", IsPrimary: true},
	}}
	uc := ventas.NewBeneficiaryUseCase(newSaleStore(enviada), bens)

	_, err := uc.DeclareHealth("venta-1", "ben-1", dto.HealthDeclarationRequest{Weight: "70 kg"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
