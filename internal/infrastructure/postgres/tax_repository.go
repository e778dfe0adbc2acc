package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/facturacion-pro/internal/domain"
	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
	"github.com/tu-usuario/facturacion-pro/internal/domain/repository"
)

var _ repository.TaxRepository = (*TaxRepo)(nil)

// TaxRepo implementación de TaxRepository (usable con pool o tx).
type TaxRepo struct {
	q Querier
}

// NewTaxRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxRepository(q Querier) *TaxRepo {
	return &TaxRepo{q: q}
}

// Create persiste un impuesto parametrizado.
func (r *TaxRepo) Create(tax *entity.Tax) error {
	query := `
		INSERT INTO taxes (code, description, rate, surcharge_rate, kind)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		tax.Code, tax.Description, tax.Rate, tax.SurchargeRate, tax.Kind,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tax: %w", err)
	}
	return nil
}

// GetByCode obtiene un impuesto por código.
func (r *TaxRepo) GetByCode(code string) (*entity.Tax, error) {
	query := `
		SELECT code, description, rate, surcharge_rate, kind
		FROM taxes WHERE code = $1`
	var t entity.Tax
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&t.Code, &t.Description, &t.Rate, &t.SurchargeRate, &t.Kind,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax: %w", err)
	}
	return &t, nil
}

// List devuelve todos los impuestos ordenados por código.
func (r *TaxRepo) List() ([]*entity.Tax, error) {
	query := `
		SELECT code, description, rate, surcharge_rate, kind
		FROM taxes ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list taxes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tax
	for rows.Next() {
		var t entity.Tax
		if err := rows.Scan(&t.Code, &t.Description, &t.Rate, &t.SurchargeRate, &t.Kind); err != nil {
			return nil, fmt.Errorf("scan tax: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
