package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/facturacion-pro/internal/domain"
	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
	"github.com/tu-usuario/facturacion-pro/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const invoiceColumns = `
	id, company_id, subject_code, serie_code, number, purchase,
	country_code, region_code, operation, discount1, discount2, date,
	net, net_before_discount, total, total_tax, total_surcharge,
	total_withholding, total_non_taxable, withholding_rate,
	total_profit, total_cost, created_at, updated_at`

// CreateInvoice persiste la cabecera de una factura nueva.
func (r *DocumentRepo) CreateInvoice(inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	_, err := r.q.Exec(context.Background(), query, invoiceArgs(inv)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// UpdateInvoice actualiza la cabecera completa (incluidos los totales calculados).
func (r *DocumentRepo) UpdateInvoice(inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET
			subject_code = $2, serie_code = $3, number = $4, purchase = $5,
			country_code = $6, region_code = $7, operation = $8,
			discount1 = $9, discount2 = $10, date = $11,
			net = $12, net_before_discount = $13, total = $14, total_tax = $15,
			total_surcharge = $16, total_withholding = $17, total_non_taxable = $18,
			withholding_rate = $19, total_profit = $20, total_cost = $21, updated_at = $22
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.SubjectCode, inv.SerieCode, inv.Number, inv.Purchase,
		inv.CountryCode, inv.RegionCode, inv.Operation,
		inv.Discount1, inv.Discount2, inv.Date,
		inv.Net, inv.NetBeforeDiscount, inv.Total, inv.TotalTax,
		inv.TotalSurcharge, inv.TotalWithholding, inv.TotalNonTaxable,
		inv.WithholdingRate, inv.TotalProfit, inv.TotalCost, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// GetInvoiceByID obtiene una factura completa por ID.
func (r *DocumentRepo) GetInvoiceByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// ListInvoicesByCompany lista facturas de la empresa con paginación.
func (r *DocumentRepo) ListInvoicesByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices WHERE company_id = $1 ORDER BY date DESC, number DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// UpsertLine inserta o actualiza una línea del documento.
// El motor de cálculo guarda las líneas recalculadas sin distinguir altas de cambios.
func (r *DocumentRepo) UpsertLine(line *entity.DocumentLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO document_lines
			(id, document_id, product_code, description, quantity, unit_price,
			 discount1, discount2, tax_code, tax_rate, surcharge_rate, withholding,
			 non_taxable, cost_price, tax_exemption_reason,
			 subtotal_before_discount, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			product_code = EXCLUDED.product_code,
			description = EXCLUDED.description,
			quantity = EXCLUDED.quantity,
			unit_price = EXCLUDED.unit_price,
			discount1 = EXCLUDED.discount1,
			discount2 = EXCLUDED.discount2,
			tax_code = EXCLUDED.tax_code,
			tax_rate = EXCLUDED.tax_rate,
			surcharge_rate = EXCLUDED.surcharge_rate,
			withholding = EXCLUDED.withholding,
			non_taxable = EXCLUDED.non_taxable,
			cost_price = EXCLUDED.cost_price,
			tax_exemption_reason = EXCLUDED.tax_exemption_reason,
			subtotal_before_discount = EXCLUDED.subtotal_before_discount,
			subtotal = EXCLUDED.subtotal`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.DocumentID, line.ProductCode, line.Description,
		line.Quantity, line.UnitPrice, line.Discount1, line.Discount2,
		line.TaxCode, line.TaxRate, line.SurchargeRate, line.Withholding,
		line.NonTaxable, line.CostPrice, line.TaxExemptionReason,
		line.SubtotalBeforeDiscount, line.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("upsert document line: %w", err)
	}
	return nil
}

// GetLinesByDocumentID obtiene todas las líneas de un documento.
func (r *DocumentRepo) GetLinesByDocumentID(documentID string) ([]*entity.DocumentLine, error) {
	query := `
		SELECT id, document_id, product_code, description, quantity, unit_price,
		       discount1, discount2, tax_code, tax_rate, surcharge_rate, withholding,
		       non_taxable, cost_price, tax_exemption_reason,
		       subtotal_before_discount, subtotal
		FROM document_lines WHERE document_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.ProductCode, &l.Description,
			&l.Quantity, &l.UnitPrice, &l.Discount1, &l.Discount2,
			&l.TaxCode, &l.TaxRate, &l.SurchargeRate, &l.Withholding,
			&l.NonTaxable, &l.CostPrice, &l.TaxExemptionReason,
			&l.SubtotalBeforeDiscount, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func invoiceArgs(inv *entity.Invoice) []any {
	return []any{
		inv.ID, inv.CompanyID, inv.SubjectCode, inv.SerieCode, inv.Number, inv.Purchase,
		inv.CountryCode, inv.RegionCode, inv.Operation, inv.Discount1, inv.Discount2, inv.Date,
		inv.Net, inv.NetBeforeDiscount, inv.Total, inv.TotalTax, inv.TotalSurcharge,
		inv.TotalWithholding, inv.TotalNonTaxable, inv.WithholdingRate,
		inv.TotalProfit, inv.TotalCost, inv.CreatedAt, inv.UpdatedAt,
	}
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.SubjectCode, &inv.SerieCode, &inv.Number, &inv.Purchase,
		&inv.CountryCode, &inv.RegionCode, &inv.Operation, &inv.Discount1, &inv.Discount2, &inv.Date,
		&inv.Net, &inv.NetBeforeDiscount, &inv.Total, &inv.TotalTax, &inv.TotalSurcharge,
		&inv.TotalWithholding, &inv.TotalNonTaxable, &inv.WithholdingRate,
		&inv.TotalProfit, &inv.TotalCost, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
