package entity

import "time"

// Company representa una empresa/tenant del sistema.
type Company struct {
	ID          string
	Name        string
	TaxID       string // NIF/CIF
	Address     string
	Phone       string
	Email       string
	VATRegime   string // ver constantes Regime*; "usados" activa el régimen de margen
	CountryCode string
	RegionCode  string
	Status      string // active, suspended, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UsesMarginScheme indica si la empresa tributa por el régimen especial de bienes usados.
func (c *Company) UsesMarginScheme() bool {
	return c != nil && c.VATRegime == RegimeUsedGoods
}
