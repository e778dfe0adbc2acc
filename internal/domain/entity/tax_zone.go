package entity

// TaxZone regla de sustitución de impuesto por zona fiscal.
// CountryCode vacío = regla global; RegionCode vacío = regla de país completo.
// Ejemplo: ES/Canarias sustituye IVA21 por IGIC7.
type TaxZone struct {
	ID            string
	TaxCode       string // impuesto de origen que la regla sustituye
	TargetTaxCode string // impuesto que se aplica en su lugar
	CountryCode   string
	RegionCode    string
	Priority      int // mayor prioridad gana
}
