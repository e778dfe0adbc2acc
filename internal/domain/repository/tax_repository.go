package repository

import "github.com/tu-usuario/facturacion-pro/internal/domain/entity"

// TaxRepository acceso a impuestos parametrizados.
type TaxRepository interface {
	Create(tax *entity.Tax) error
	GetByCode(code string) (*entity.Tax, error)
	List() ([]*entity.Tax, error)
}

// TaxZoneRepository acceso a reglas de zona fiscal.
type TaxZoneRepository interface {
	Create(zone *entity.TaxZone) error
	// ListOrdered devuelve todas las reglas ordenadas por prioridad descendente.
	ListOrdered() ([]entity.TaxZone, error)
}

// SerieRepository acceso a series de numeración.
type SerieRepository interface {
	Create(serie *entity.Serie) error
	GetByCode(code string) (*entity.Serie, error)
	List() ([]*entity.Serie, error)
}
