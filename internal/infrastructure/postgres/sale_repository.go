package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seguroplus/polizas-api/internal/domain"
	"github.com/seguroplus/polizas-api/internal/domain/entity"
	"github.com/seguroplus/polizas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, company_id, client_id, plan_id, salesperson_id, auditor_id,
	status, audit_status, audit_notes, total, contract_start_date, contract_number,
	generation_locked, created_at, updated_at`

// Create persiste una venta nueva.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CompanyID, sale.ClientID, sale.PlanID, sale.SalespersonID, nullable(sale.AuditorID),
		sale.Status, nullable(sale.AuditStatus), sale.AuditNotes, sale.Total, sale.ContractStartDate,
		sale.ContractNumber, sale.GenerationLocked, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// ListByCompany lista ventas de la empresa, opcionalmente filtradas por estado.
func (r *SaleRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + `
		FROM sales WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// ListBySalesperson lista ventas asignadas al vendedor.
func (r *SaleRepo) ListBySalesperson(salespersonID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + `
		FROM sales WHERE salesperson_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, salespersonID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales by salesperson: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// Update actualiza la venta completa (estado, veredicto, metadatos).
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET client_id = $2, plan_id = $3, auditor_id = $4, status = $5,
			audit_status = $6, audit_notes = $7, total = $8, contract_start_date = $9,
			contract_number = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ClientID, sale.PlanID, nullable(sale.AuditorID), sale.Status,
		nullable(sale.AuditStatus), sale.AuditNotes, sale.Total, sale.ContractStartDate,
		sale.ContractNumber, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// SetGenerationLock intenta cambiar el guard de generación de forma atómica.
// El UPDATE condicional solo afecta la fila si el guard tenía el valor opuesto:
// cero filas afectadas significa que otro ciclo ya lo tomó (o ya lo soltó).
func (r *SaleRepo) SetGenerationLock(saleID string, locked bool) (bool, error) {
	query := `UPDATE sales SET generation_locked = $2 WHERE id = $1 AND generation_locked = $3`
	tag, err := r.q.Exec(context.Background(), query, saleID, locked, !locked)
	if err != nil {
		return false, fmt.Errorf("set generation lock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete elimina una venta por ID.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var auditorID, auditStatus *string
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.ClientID, &s.PlanID, &s.SalespersonID, &auditorID,
		&s.Status, &auditStatus, &s.AuditNotes, &s.Total, &s.ContractStartDate,
		&s.ContractNumber, &s.GenerationLocked, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if auditorID != nil {
		s.AuditorID = *auditorID
	}
	if auditStatus != nil {
		s.AuditStatus = *auditStatus
	}
	return &s, nil
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// nullable convierte "" en NULL para columnas con FK o CHECK opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
