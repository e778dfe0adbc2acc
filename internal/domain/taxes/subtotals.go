package taxes

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
)

// Bucket acumulador por combinación (tasa de impuesto, tasa de recargo).
// Efímero: se crea en cada cálculo y se descarta tras volcarse en los totales.
type Bucket struct {
	TaxCode           string // código de ejemplo: el de la primera línea que abrió el bucket
	Rate              decimal.Decimal
	SurchargeRate     decimal.Decimal
	Net               decimal.Decimal
	NetBeforeDiscount decimal.Decimal
	Tax               decimal.Decimal
	Surcharge         decimal.Decimal
}

// Subtotals acumuladores por bucket y totales generales de un cálculo.
type Subtotals struct {
	Buckets map[string]*Bucket
	Order   []string // claves en orden de primera aparición

	Net               decimal.Decimal
	NetBeforeDiscount decimal.Decimal
	TotalTax          decimal.Decimal
	TotalSurcharge    decimal.Decimal
	TotalWithholding  decimal.Decimal
	TotalNonTaxable   decimal.Decimal
	TotalCost         decimal.Decimal
	TotalProfit       decimal.Decimal
	Total             decimal.Decimal
	WithholdingRate   decimal.Decimal // mayor % IRPF visto entre las líneas, no una suma
}

func newSubtotals() *Subtotals {
	return &Subtotals{Buckets: make(map[string]*Bucket)}
}

// bucket devuelve el acumulador para (rate, surcharge), creándolo a cero la
// primera vez y registrando el código de impuesto de la línea como ejemplo.
func (s *Subtotals) bucket(rate, surcharge decimal.Decimal, taxCode string) *Bucket {
	key := rate.String() + "|" + surcharge.String()
	if b, ok := s.Buckets[key]; ok {
		return b
	}
	b := &Bucket{TaxCode: taxCode, Rate: rate, SurchargeRate: surcharge}
	s.Buckets[key] = b
	s.Order = append(s.Order, key)
	return b
}

// Aggregator agrupa las líneas de un documento en buckets de impuesto y
// produce los totales. Función total: no tiene camino de error; la validación
// de entrada es contrato del llamador.
type Aggregator struct {
	Precision      int32
	Rectifying     bool
	IntraCommunity bool
	TaxOf          func(code string) *entity.Tax
	MarginLine     func(line *entity.DocumentLine) bool // nil = sin régimen de margen
}

// Aggregate procesa las líneas en su orden original. El orden solo decide qué
// código queda como ejemplo de cada bucket; los totales son independientes de él.
func (a *Aggregator) Aggregate(header *entity.DocumentHeader, lines []*entity.DocumentLine) *Subtotals {
	st := newSubtotals()

	for _, line := range lines {
		var lineCost decimal.Decimal
		if !line.CostPrice.IsZero() {
			lineCost = line.Quantity.Mul(line.CostPrice)
			st.TotalCost = st.TotalCost.Add(lineCost)
		}

		// Neto efectivo: descuentos de línea más los de cabecera, compuestos.
		net := applyDiscounts(lineSubtotal(line), header.Discount1, header.Discount2)
		if net.IsZero() {
			continue
		}

		// Suplidos: importe no sujeto, sin IVA, sin recargo y sin IRPF.
		if line.NonTaxable {
			st.TotalNonTaxable = st.TotalNonTaxable.Add(net)
			continue
		}

		if line.Withholding.GreaterThan(st.WithholdingRate) {
			st.WithholdingRate = line.Withholding
		}
		st.TotalWithholding = st.TotalWithholding.Add(net.Mul(line.Withholding).Div(hundred))

		b := st.bucket(line.TaxRate, line.SurchargeRate, line.TaxCode)

		// Régimen de margen de bienes usados: el coste va a un bucket sintético
		// a tipo cero (nunca tributa) y solo el margen de venta lleva impuesto.
		if a.MarginLine != nil && a.MarginLine(line) {
			zero := st.bucket(decimal.Zero, decimal.Zero, "")
			zero.Net = zero.Net.Add(lineCost)
			zero.NetBeforeDiscount = zero.NetBeforeDiscount.Add(lineCost)

			margin := net.Sub(lineCost)
			if margin.LessThanOrEqual(decimal.Zero) && !a.Rectifying {
				// Venta a pérdida fuera de rectificativas: sin impuesto.
				continue
			}
			b.Net = b.Net.Add(margin)
			b.NetBeforeDiscount = b.NetBeforeDiscount.Add(margin)
			b.Tax = b.Tax.Add(taxAmount(a.kindOf(line.TaxCode), margin, line.TaxRate))
			continue
		}

		// Neto sin descuento: subtotal de línea (con sus propios descuentos)
		// antes de aplicar los de cabecera.
		b.Net = b.Net.Add(net)
		b.NetBeforeDiscount = b.NetBeforeDiscount.Add(lineSubtotal(line))

		if line.TaxRate.GreaterThan(decimal.Zero) && !a.IntraCommunity {
			b.Tax = b.Tax.Add(taxAmount(a.kindOf(line.TaxCode), net, line.TaxRate))
		}
		if line.SurchargeRate.GreaterThan(decimal.Zero) && !a.IntraCommunity {
			b.Surcharge = b.Surcharge.Add(taxAmount(a.kindOf(line.TaxCode), net, line.SurchargeRate))
		}
	}

	a.roundAndFold(st)
	return st
}

// roundAndFold aplica el redondeo en dos etapas: primero cada bucket por
// separado, después los totales generales ya plegados. El doble redondeo puede
// diferir del redondeo único en algunos céntimos y debe conservarse tal cual
// para cuadrar línea a línea con los libros.
func (a *Aggregator) roundAndFold(st *Subtotals) {
	p := a.Precision
	for _, key := range st.Order {
		b := st.Buckets[key]
		b.Net = b.Net.Round(p)
		b.NetBeforeDiscount = b.NetBeforeDiscount.Round(p)
		b.Tax = b.Tax.Round(p)
		b.Surcharge = b.Surcharge.Round(p)

		st.Net = st.Net.Add(b.Net)
		st.NetBeforeDiscount = st.NetBeforeDiscount.Add(b.NetBeforeDiscount)
		st.TotalTax = st.TotalTax.Add(b.Tax)
		st.TotalSurcharge = st.TotalSurcharge.Add(b.Surcharge)
	}

	st.Net = st.Net.Round(p)
	st.NetBeforeDiscount = st.NetBeforeDiscount.Round(p)
	st.TotalTax = st.TotalTax.Round(p)
	st.TotalSurcharge = st.TotalSurcharge.Round(p)
	st.TotalWithholding = st.TotalWithholding.Round(p)
	st.TotalNonTaxable = st.TotalNonTaxable.Round(p)
	st.TotalCost = st.TotalCost.Round(p)

	st.TotalProfit = st.Net.Sub(st.TotalCost).Round(p)
	st.Total = st.Net.
		Add(st.TotalNonTaxable).
		Add(st.TotalTax).
		Add(st.TotalSurcharge).
		Sub(st.TotalWithholding).
		Round(p)
}

// kindOf resuelve el tipo del impuesto de la línea; sin código o sin impuesto
// registrado se asume porcentual.
func (a *Aggregator) kindOf(taxCode string) string {
	if taxCode == "" || a.TaxOf == nil {
		return entity.TaxKindPercentage
	}
	if tax := a.TaxOf(taxCode); tax.IsFixed() {
		return entity.TaxKindFixed
	}
	return entity.TaxKindPercentage
}

// taxAmount calcula la cuota: base * tasa para impuestos de valor fijo,
// base * tasa / 100 para porcentuales. Mezclar las fórmulas es un bug de
// corrección, no de estilo.
func taxAmount(kind string, base, rate decimal.Decimal) decimal.Decimal {
	if kind == entity.TaxKindFixed {
		return base.Mul(rate)
	}
	return base.Mul(rate).Div(hundred)
}
