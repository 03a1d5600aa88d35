package documentos_test

import (
	"context"
	"errors"
	"sync"

	"github.com/seguroplus/polizas-api/internal/application/ports"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
)

// Fakes en memoria de los puertos de persistencia, suficientes para ejercitar
// el orquestador sin PostgreSQL.

type fakeSaleRepo struct {
	mu    sync.Mutex
	sales map[string]*entity.Sale
}

func newFakeSaleRepo(sales ...*entity.Sale) *fakeSaleRepo {
	r := &fakeSaleRepo{sales: map[string]*entity.Sale{}}
	for _, s := range sales {
		copia := *s
		r.sales[s.ID] = &copia
	}
	return r
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error { r.sales[s.ID] = s; return nil }
func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	copia := *s
	return &copia, nil
}
func (r *fakeSaleRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Sale, error) {
	return nil, nil
}
func (r *fakeSaleRepo) ListBySalesperson(id string, limit, offset int) ([]*entity.Sale, error) {
	return nil, nil
}
func (r *fakeSaleRepo) Update(s *entity.Sale) error {
	copia := *s
	r.sales[s.ID] = &copia
	return nil
}
func (r *fakeSaleRepo) Delete(id string) error { delete(r.sales, id); return nil }
func (r *fakeSaleRepo) SetGenerationLock(saleID string, locked bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[saleID]
	if !ok {
		return false, errors.New("venta inexistente")
	}
	if s.GenerationLocked == locked {
		return false, nil
	}
	s.GenerationLocked = locked
	return true, nil
}

type fakeBeneficiaryRepo struct{ list []*entity.Beneficiary }

func (r *fakeBeneficiaryRepo) Create(b *entity.Beneficiary) error { r.list = append(r.list, b); return nil }
func (r *fakeBeneficiaryRepo) GetByID(id string) (*entity.Beneficiary, error) {
	for _, b := range r.list {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}
func (r *fakeBeneficiaryRepo) ListBySale(saleID string) ([]*entity.Beneficiary, error) {
	var out []*entity.Beneficiary
	for _, b := range r.list {
		if b.SaleID == saleID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *fakeBeneficiaryRepo) Update(b *entity.Beneficiary) error { return nil }
func (r *fakeBeneficiaryRepo) Delete(id string) error             { return nil }

type fakeClientRepo struct{ c *entity.Client }

func (r *fakeClientRepo) Create(c *entity.Client) error          { return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) { return r.c, nil }
func (r *fakeClientRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error) {
	return nil, nil
}
func (r *fakeClientRepo) Update(c *entity.Client) error { return nil }
func (r *fakeClientRepo) Delete(id string) error        { return nil }

type fakePlanRepo struct{ p *entity.Plan }

func (r *fakePlanRepo) Create(p *entity.Plan) error          { return nil }
func (r *fakePlanRepo) GetByID(id string) (*entity.Plan, error) { return r.p, nil }
func (r *fakePlanRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Plan, error) {
	return nil, nil
}
func (r *fakePlanRepo) Update(p *entity.Plan) error { return nil }

type fakeCompanyRepo struct{ c *entity.Company }

func (r *fakeCompanyRepo) Create(c *entity.Company) error          { return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) { return r.c, nil }
func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) { return nil, nil }
func (r *fakeCompanyRepo) Update(c *entity.Company) error          { return nil }

type fakeTemplateRepo struct{ templates map[string]*entity.Template }

func (r *fakeTemplateRepo) Create(t *entity.Template) error { return nil }
func (r *fakeTemplateRepo) GetByID(id string) (*entity.Template, error) {
	return r.templates[id], nil
}
func (r *fakeTemplateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Template, error) {
	return nil, nil
}
func (r *fakeTemplateRepo) Update(t *entity.Template) error              { return nil }
func (r *fakeTemplateRepo) Delete(id string) error                       { return nil }
func (r *fakeTemplateRepo) AddAttachment(a *entity.TemplateAttachment) error { return nil }

type fakeSaleTemplateRepo struct{ list []*entity.SaleTemplate }

func (r *fakeSaleTemplateRepo) Create(st *entity.SaleTemplate) error { return nil }
func (r *fakeSaleTemplateRepo) ListBySale(saleID string) ([]*entity.SaleTemplate, error) {
	return r.list, nil
}
func (r *fakeSaleTemplateRepo) Delete(id string) error { return nil }

type fakeDocumentRepo struct{ docs []*entity.Document }

func (r *fakeDocumentRepo) Create(d *entity.Document) error { r.docs = append(r.docs, d); return nil }
func (r *fakeDocumentRepo) GetByID(id string) (*entity.Document, error) {
	for _, d := range r.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}
func (r *fakeDocumentRepo) ListBySale(saleID string) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range r.docs {
		if d.SaleID == saleID {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *fakeDocumentRepo) Update(d *entity.Document) error {
	for i, x := range r.docs {
		if x.ID == d.ID {
			r.docs[i] = d
		}
	}
	return nil
}
func (r *fakeDocumentRepo) DeleteRegenerable(saleID string) (int, error) {
	var kept []*entity.Document
	deleted := 0
	for _, d := range r.docs {
		if d.SaleID == saleID && d.FromTemplate && !d.IsFinal && d.Status != entity.DocumentFirmado {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	r.docs = kept
	return deleted, nil
}

type fakeLinkRepo struct{ links []*entity.SignatureLink }

func (r *fakeLinkRepo) Create(l *entity.SignatureLink) error { r.links = append(r.links, l); return nil }
func (r *fakeLinkRepo) GetByToken(token string) (*entity.SignatureLink, error) {
	for _, l := range r.links {
		if l.Token == token {
			return l, nil
		}
	}
	return nil, nil
}
func (r *fakeLinkRepo) ListBySale(saleID string) ([]*entity.SignatureLink, error) {
	var out []*entity.SignatureLink
	for _, l := range r.links {
		if l.SaleID == saleID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeTransitionRepo struct{ recs []*entity.StatusTransition }

func (r *fakeTransitionRepo) Append(t *entity.StatusTransition) error {
	r.recs = append(r.recs, t)
	return nil
}
func (r *fakeTransitionRepo) ListBySale(saleID string) ([]*entity.StatusTransition, error) {
	return r.recs, nil
}

type fakeNotifier struct{ sent []ports.Notification }

func (n *fakeNotifier) Notify(ctx context.Context, msg ports.Notification) error {
	n.sent = append(n.sent, msg)
	return nil
}

type allowAllPolicy struct{}

func (allowAllPolicy) Check(ctx context.Context, saleID, target, role string) (ports.PolicyCheck, error) {
	return ports.PolicyCheck{Allowed: true}, nil
}

type denyPolicy struct{ reasons []string }

func (p denyPolicy) Check(ctx context.Context, saleID, target, role string) (ports.PolicyCheck, error) {
	return ports.PolicyCheck{Allowed: false, Reasons: p.reasons}, nil
}
