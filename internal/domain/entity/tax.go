package entity

import "github.com/shopspring/decimal"

// Tipos de impuesto: porcentual (IVA general) o de valor fijo (impuestos especiales
// que se calculan como importe * tasa, sin dividir entre 100).
const (
	TaxKindPercentage = "percentage"
	TaxKindFixed      = "fixed"
)

// Tax representa un impuesto parametrizado (IVA, IGIC, impuesto especial).
type Tax struct {
	Code          string
	Description   string
	Rate          decimal.Decimal // % si Kind=percentage; factor directo si Kind=fixed
	SurchargeRate decimal.Decimal // recargo de equivalencia asociado
	Kind          string          // TaxKindPercentage | TaxKindFixed
}

// IsFixed indica si el impuesto se aplica como valor fijo (importe * tasa).
func (t *Tax) IsFixed() bool {
	return t != nil && t.Kind == TaxKindFixed
}
