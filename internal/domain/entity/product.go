package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductTypeNormal     = "normal"
	ProductTypeSecondHand = "segunda_mano" // tributa por margen si la empresa usa ese régimen
)

// Product representa un producto o servicio facturable.
type Product struct {
	ID          string
	CompanyID   string
	Code        string // referencia única por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta unitario
	Cost        decimal.Decimal // coste de adquisición
	TaxCode     string          // impuesto por defecto del producto
	Type        string          // ProductTypeNormal | ProductTypeSecondHand
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsSecondHand indica si el producto es de segunda mano.
func (p *Product) IsSecondHand() bool {
	return p != nil && p.Type == ProductTypeSecondHand
}
