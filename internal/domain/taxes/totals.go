package taxes

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
)

// Document cualquier documento comercial con cabecera común.
type Document interface {
	Header() *entity.DocumentHeader
}

// MarginTracker lo implementan las variantes de documento que registran
// beneficio y coste (hoy solo Invoice). Se comprueba por aserción de tipo.
type MarginTracker interface {
	SetMarginTotals(profit, cost decimal.Decimal)
}

// Reduce copia los totales generales del agregado sobre la cabecera del
// documento, campo a campo. Beneficio y coste solo si la variante los registra.
func Reduce(doc Document, st *Subtotals) {
	h := doc.Header()
	h.Net = st.Net
	h.NetBeforeDiscount = st.NetBeforeDiscount
	h.TotalTax = st.TotalTax
	h.TotalSurcharge = st.TotalSurcharge
	h.TotalWithholding = st.TotalWithholding
	h.TotalNonTaxable = st.TotalNonTaxable
	h.WithholdingRate = st.WithholdingRate
	h.Total = st.Total

	if m, ok := doc.(MarginTracker); ok {
		m.SetMarginTotals(st.TotalProfit, st.TotalCost)
	}
}
