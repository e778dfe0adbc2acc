package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/facturacion-pro/internal/domain"
	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
	"github.com/tu-usuario/facturacion-pro/internal/domain/repository"
)

var _ repository.TaxZoneRepository = (*TaxZoneRepo)(nil)

// TaxZoneRepo implementación de TaxZoneRepository (usable con pool o tx).
type TaxZoneRepo struct {
	q Querier
}

// NewTaxZoneRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxZoneRepository(q Querier) *TaxZoneRepo {
	return &TaxZoneRepo{q: q}
}

// Create persiste una regla de zona fiscal.
func (r *TaxZoneRepo) Create(zone *entity.TaxZone) error {
	if zone.ID == "" {
		zone.ID = uuid.New().String()
	}
	query := `
		INSERT INTO tax_zones (id, tax_code, target_tax_code, country_code, region_code, priority)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		zone.ID, zone.TaxCode, zone.TargetTaxCode, zone.CountryCode, zone.RegionCode, zone.Priority,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tax zone: %w", err)
	}
	return nil
}

// ListOrdered devuelve todas las reglas ordenadas por prioridad descendente,
// el orden en que el resolutor de zonas las evalúa.
func (r *TaxZoneRepo) ListOrdered() ([]entity.TaxZone, error) {
	query := `
		SELECT id, tax_code, target_tax_code, country_code, region_code, priority
		FROM tax_zones ORDER BY priority DESC, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list tax zones: %w", err)
	}
	defer rows.Close()
	var list []entity.TaxZone
	for rows.Next() {
		var z entity.TaxZone
		if err := rows.Scan(&z.ID, &z.TaxCode, &z.TargetTaxCode, &z.CountryCode, &z.RegionCode, &z.Priority); err != nil {
			return nil, fmt.Errorf("scan tax zone: %w", err)
		}
		list = append(list, z)
	}
	return list, rows.Err()
}
