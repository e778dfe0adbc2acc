package entity

import "time"

// Regímenes de IVA válidos para sujetos (clientes/proveedores) y empresas.
const (
	RegimeGeneral   = "general"
	RegimeExempt    = "exento"
	RegimeSurcharge = "recargo" // recargo de equivalencia
	RegimeUsedGoods = "usados"  // régimen especial de bienes usados (margen)
)

// FiscalData datos fiscales comunes a clientes y proveedores.
type FiscalData struct {
	VATRegime          string // ver constantes Regime*; vacío = general
	TaxExemptionReason string // causa de exención (ej. "E2 Art. 21")
}

// Customer representa un cliente de la empresa.
type Customer struct {
	ID        string
	CompanyID string
	Code      string // código de cliente dentro de la empresa
	Name      string
	TaxID     string // NIF/CIF
	Email     string
	Phone     string
	FiscalData
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Supplier representa un proveedor de la empresa.
type Supplier struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	FiscalData
	CreatedAt time.Time
	UpdatedAt time.Time
}
