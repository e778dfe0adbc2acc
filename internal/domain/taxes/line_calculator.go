package taxes

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// CalculateLine recalcula los subtotales derivados de una línea a partir de sus
// propios campos. Cantidades y precios negativos son válidos (abonos) y se
// propagan aritméticamente.
func CalculateLine(line *entity.DocumentLine) {
	line.SubtotalBeforeDiscount = line.Quantity.Mul(line.UnitPrice)
	line.Subtotal = applyDiscounts(line.SubtotalBeforeDiscount, line.Discount1, line.Discount2)
}

// lineSubtotal calcula el subtotal con descuentos de la línea sin mutarla.
func lineSubtotal(line *entity.DocumentLine) decimal.Decimal {
	return applyDiscounts(line.Quantity.Mul(line.UnitPrice), line.Discount1, line.Discount2)
}

// applyDiscounts aplica dos descuentos porcentuales secuenciales.
// Son compuestos: amount * (100-d1)/100 * (100-d2)/100, nunca aditivos.
func applyDiscounts(amount, d1, d2 decimal.Decimal) decimal.Decimal {
	return amount.
		Mul(hundred.Sub(d1)).Div(hundred).
		Mul(hundred.Sub(d2)).Div(hundred)
}
