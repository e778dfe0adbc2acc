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

var _ repository.SerieRepository = (*SerieRepo)(nil)

// SerieRepo implementación de SerieRepository (usable con pool o tx).
type SerieRepo struct {
	q Querier
}

// NewSerieRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSerieRepository(q Querier) *SerieRepo {
	return &SerieRepo{q: q}
}

// Create persiste una serie de numeración.
func (r *SerieRepo) Create(serie *entity.Serie) error {
	query := `
		INSERT INTO series (code, description, tax_free, kind)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		serie.Code, serie.Description, serie.TaxFree, serie.Kind,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert serie: %w", err)
	}
	return nil
}

// GetByCode obtiene una serie por código.
func (r *SerieRepo) GetByCode(code string) (*entity.Serie, error) {
	query := `
		SELECT code, description, tax_free, kind
		FROM series WHERE code = $1`
	var s entity.Serie
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&s.Code, &s.Description, &s.TaxFree, &s.Kind,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get serie: %w", err)
	}
	return &s, nil
}

// List devuelve todas las series ordenadas por código.
func (r *SerieRepo) List() ([]*entity.Serie, error) {
	query := `
		SELECT code, description, tax_free, kind
		FROM series ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()
	var list []*entity.Serie
	for rows.Next() {
		var s entity.Serie
		if err := rows.Scan(&s.Code, &s.Description, &s.TaxFree, &s.Kind); err != nil {
			return nil, fmt.Errorf("scan serie: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
