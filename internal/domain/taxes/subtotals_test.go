package taxes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
	"github.com/tu-usuario/facturacion-pro/internal/domain/taxes"
)

func testAggregator() *taxes.Aggregator {
	taxMap := map[string]*entity.Tax{
		"IVA21":  {Code: "IVA21", Rate: dec("21"), Kind: entity.TaxKindPercentage},
		"IVA10":  {Code: "IVA10", Rate: dec("10"), Kind: entity.TaxKindPercentage},
		"FIJO05": {Code: "FIJO05", Rate: dec("0.05"), Kind: entity.TaxKindFixed},
	}
	return &taxes.Aggregator{
		Precision: 2,
		TaxOf:     func(code string) *entity.Tax { return taxMap[code] },
	}
}

func bucketOf(t *testing.T, st *taxes.Subtotals, rate, surcharge string) *taxes.Bucket {
	t.Helper()
	key := dec(rate).String() + "|" + dec(surcharge).String()
	b, ok := st.Buckets[key]
	require.True(t, ok, "debe existir el bucket (%s, %s)", rate, surcharge)
	return b
}

// TestAggregate_RedondeoPorBucket dentro de un bucket se acumula sin redondear
// y se redondea una sola vez al cerrar: dos líneas de 10.005 suman 20.01, no
// 20.02 (que saldría de redondear cada línea por separado).
func TestAggregate_RedondeoPorBucket(t *testing.T) {
	header := &entity.DocumentHeader{}
	lines := []*entity.DocumentLine{
		{Quantity: dec("1"), UnitPrice: dec("10.005"), TaxCode: "IVA21", TaxRate: dec("21")},
		{Quantity: dec("1"), UnitPrice: dec("10.005"), TaxCode: "IVA21", TaxRate: dec("21")},
	}

	st := testAggregator().Aggregate(header, lines)

	assertDecimal(t, "20.01", bucketOf(t, st, "21", "0").Net)
	assertDecimal(t, "20.01", st.Net)
}

// TestAggregate_RedondeoDosEtapas con dos buckets distintos cada uno redondea
// por su cuenta antes de plegarse: 10.005 + 10.005 en buckets separados da
// 10.01 + 10.01 = 20.02, un céntimo más que redondear la suma sin redondear
// (20.01). Ese desvío documenta el redondeo en dos etapas y debe conservarse.
func TestAggregate_RedondeoDosEtapas(t *testing.T) {
	header := &entity.DocumentHeader{}
	lines := []*entity.DocumentLine{
		{Quantity: dec("1"), UnitPrice: dec("10.005"), TaxCode: "IVA21", TaxRate: dec("21")},
		{Quantity: dec("1"), UnitPrice: dec("10.005"), TaxCode: "IVA10", TaxRate: dec("10")},
	}

	st := testAggregator().Aggregate(header, lines)

	assertDecimal(t, "10.01", bucketOf(t, st, "21", "0").Net)
	assertDecimal(t, "10.01", bucketOf(t, st, "10", "0").Net)
	assertDecimal(t, "20.02", st.Net, "la suma de buckets redondeados difiere +0.01 del redondeo único")
}

// TestAggregate_ImpuestoFijoVsPorcentual un impuesto de valor fijo con tasa
// 0.05 sobre 100 da 5 (100*0.05); uno porcentual con tasa 5 sobre 100 también
// da 5 (100*5/100). Las fórmulas no pueden intercambiarse.
func TestAggregate_ImpuestoFijoVsPorcentual(t *testing.T) {
	header := &entity.DocumentHeader{}

	fixed := testAggregator().Aggregate(header, []*entity.DocumentLine{
		{Quantity: dec("1"), UnitPrice: dec("100"), TaxCode: "FIJO05", TaxRate: dec("0.05")},
	})
	assertDecimal(t, "5", bucketOf(t, fixed, "0.05", "0").Tax, "fijo: 100*0.05")

	pct := testAggregator().Aggregate(header, []*entity.DocumentLine{
		{Quantity: dec("1"), UnitPrice: dec("100"), TaxCode: "IVA21", TaxRate: dec("5")},
	})
	assertDecimal(t, "5", bucketOf(t, pct, "5", "0").Tax, "porcentual: 100*5/100")
}

// TestAggregate_Suplidos una línea de suplido aporta todo su neto a
// TotalNonTaxable y nada a impuestos, recargo ni IRPF, aunque lleve un código
// de impuesto nominal.
func TestAggregate_Suplidos(t *testing.T) {
	header := &entity.DocumentHeader{}
	lines := []*entity.DocumentLine{
		{Quantity: dec("1"), UnitPrice: dec("80"), TaxCode: "IVA21", TaxRate: dec("21"),
			Withholding: dec("15"), NonTaxable: true},
	}

	st := testAggregator().Aggregate(header, lines)

	assertDecimal(t, "80", st.TotalNonTaxable)
	assertDecimal(t, "0", st.TotalTax)
	assertDecimal(t, "0", st.TotalSurcharge)
	assertDecimal(t, "0", st.TotalWithholding)
	assertDecimal(t, "0", st.WithholdingRate)
	assert.Empty(t, st.Buckets, "un suplido no abre ningún bucket")
}

// TestAggregate_IRPFMaximoNoSuma el % de IRPF del documento es el mayor entre
// las líneas (tasa de presentación), mientras que el importe retenido sí se
// acumula línea a línea.
func TestAggregate_IRPFMaximoNoSuma(t *testing.T) {
	header := &entity.DocumentHeader{}
	lines := []*entity.DocumentLine{
		{Quantity: dec("1"), UnitPrice: dec("100"), TaxCode: "IVA21", TaxRate: dec("21"), Withholding: dec("15")},
		{Quantity: dec("1"), UnitPrice: dec("200"), TaxCode: "IVA21", TaxRate: dec("21"), Withholding: dec("7")},
	}

	st := testAggregator().Aggregate(header, lines)

	assertDecimal(t, "15", st.WithholdingRate, "el mayor porcentaje, no 22")
	assertDecimal(t, "29", st.TotalWithholding, "100*0.15 + 200*0.07")
}

// TestAggregate_DescuentosDeCabecera los descuentos de cabecera se componen
// sobre el subtotal ya descontado de cada línea.
func TestAggregate_DescuentosDeCabecera(t *testing.T) {
	header := &entity.DocumentHeader{Discount1: dec("10"), Discount2: dec("5")}
	lines := []*entity.DocumentLine{
		{Quantity: dec("1"), UnitPrice: dec("100"), Discount1: dec("10"), TaxCode: "IVA21", TaxRate: dec("21")},
	}

	st := testAggregator().Aggregate(header, lines)

	// 100 * 0.9 (línea) * 0.9 * 0.95 (cabecera) = 76.95
	assertDecimal(t, "76.95", st.Net)
}

// TestAggregate_NetoSinDescuentoDeCabecera NetBeforeDiscount es el subtotal de
// línea con sus propios descuentos pero antes de los de cabecera: con línea
// 1x100 al 10% y cabecera al 5%, el neto efectivo es 85.5 y el neto sin
// descuento 90, no 100.
func TestAggregate_NetoSinDescuentoDeCabecera(t *testing.T) {
	header := &entity.DocumentHeader{Discount1: dec("5")}
	lines := []*entity.DocumentLine{
		{Quantity: dec("1"), UnitPrice: dec("100"), Discount1: dec("10"), TaxCode: "IVA21", TaxRate: dec("21")},
	}

	st := testAggregator().Aggregate(header, lines)

	b := bucketOf(t, st, "21", "0")
	assertDecimal(t, "85.5", b.Net, "100 * 0.9 * 0.95")
	assertDecimal(t, "90", b.NetBeforeDiscount, "descuento de línea sí, de cabecera no")
	assertDecimal(t, "85.5", st.Net)
	assertDecimal(t, "90", st.NetBeforeDiscount)
	assertDecimal(t, "17.96", st.TotalTax, "la cuota sale del neto efectivo, 85.5 * 21/100")
}

// TestAggregate_LineaSinImporte una línea con neto cero no aporta nada, pero su
// coste sí entra en TotalCost (se computa antes de descartar la línea).
func TestAggregate_LineaSinImporte(t *testing.T) {
	header := &entity.DocumentHeader{}
	lines := []*entity.DocumentLine{
		{Quantity: dec("1"), UnitPrice: dec("0"), CostPrice: dec("12"), TaxCode: "IVA21", TaxRate: dec("21")},
	}

	st := testAggregator().Aggregate(header, lines)

	assert.Empty(t, st.Buckets)
	assertDecimal(t, "12", st.TotalCost)
}

// TestAggregate_Intracomunitaria una operación intracomunitaria no devenga ni
// impuesto ni recargo aunque la tasa de la línea no sea cero; el neto sí se
// acumula en su bucket.
func TestAggregate_Intracomunitaria(t *testing.T) {
	agg := testAggregator()
	agg.IntraCommunity = true
	header := &entity.DocumentHeader{Operation: entity.OperationIntraCommunity}
	lines := []*entity.DocumentLine{
		{Quantity: dec("1"), UnitPrice: dec("100"), TaxCode: "IVA21", TaxRate: dec("21"), SurchargeRate: dec("5.2")},
	}

	st := agg.Aggregate(header, lines)

	b := bucketOf(t, st, "21", "5.2")
	assertDecimal(t, "100", b.Net)
	assertDecimal(t, "0", b.Tax)
	assertDecimal(t, "0", b.Surcharge)
}

// ── Régimen de margen de bienes usados ───────────────────────────────────────

func marginAggregator(rectifying bool) *taxes.Aggregator {
	agg := testAggregator()
	agg.Rectifying = rectifying
	agg.MarginLine = func(line *entity.DocumentLine) bool { return line.ProductCode == "USADO" }
	return agg
}

// TestAggregate_MargenVentaConBeneficio en una venta de segunda mano el coste
// va al bucket sintético a tipo cero y solo el margen tributa.
func TestAggregate_MargenVentaConBeneficio(t *testing.T) {
	header := &entity.DocumentHeader{}
	lines := []*entity.DocumentLine{
		{ProductCode: "USADO", Quantity: dec("1"), UnitPrice: dec("150"), CostPrice: dec("100"),
			TaxCode: "IVA21", TaxRate: dec("21")},
	}

	st := marginAggregator(false).Aggregate(header, lines)

	zero := bucketOf(t, st, "0", "0")
	assertDecimal(t, "100", zero.Net, "el coste nunca tributa")
	assertDecimal(t, "0", zero.Tax)

	b := bucketOf(t, st, "21", "0")
	assertDecimal(t, "50", b.Net, "solo el margen")
	assertDecimal(t, "10.5", b.Tax, "21% sobre el margen de 50")
	assertDecimal(t, "100", st.TotalCost)
}

// TestAggregate_MargenVentaAPerdida venta a pérdida (margen <= 0) en serie no
// rectificativa: la línea no devenga impuesto alguno.
func TestAggregate_MargenVentaAPerdida(t *testing.T) {
	header := &entity.DocumentHeader{}
	lines := []*entity.DocumentLine{
		{ProductCode: "USADO", Quantity: dec("1"), UnitPrice: dec("90"), CostPrice: dec("100"),
			TaxCode: "IVA21", TaxRate: dec("21")},
	}

	st := marginAggregator(false).Aggregate(header, lines)

	assertDecimal(t, "100", bucketOf(t, st, "0", "0").Net)
	assertDecimal(t, "0", st.TotalTax)
	assertDecimal(t, "0", bucketOf(t, st, "21", "0").Net, "sin margen que gravar")
}

// TestAggregate_MargenPerdidaEnRectificativa la misma pérdida bajo una serie
// rectificativa sí tributa: el margen negativo lleva la cuota (negativa) de su
// tasa.
func TestAggregate_MargenPerdidaEnRectificativa(t *testing.T) {
	header := &entity.DocumentHeader{}
	lines := []*entity.DocumentLine{
		{ProductCode: "USADO", Quantity: dec("1"), UnitPrice: dec("90"), CostPrice: dec("100"),
			TaxCode: "IVA21", TaxRate: dec("21")},
	}

	st := marginAggregator(true).Aggregate(header, lines)

	b := bucketOf(t, st, "21", "0")
	assertDecimal(t, "-10", b.Net)
	assertDecimal(t, "-2.1", b.Tax, "-10 * 21/100")
}

// TestAggregate_TotalesOrdenIndependiente los totales no dependen del orden de
// las líneas (el orden solo decide el código de ejemplo del bucket).
func TestAggregate_TotalesOrdenIndependiente(t *testing.T) {
	header := &entity.DocumentHeader{}
	a := &entity.DocumentLine{Quantity: dec("2"), UnitPrice: dec("50"), TaxCode: "IVA21", TaxRate: dec("21")}
	b := &entity.DocumentLine{Quantity: dec("1"), UnitPrice: dec("30"), TaxCode: "IVA10", TaxRate: dec("10")}

	st1 := testAggregator().Aggregate(header, []*entity.DocumentLine{a, b})
	st2 := testAggregator().Aggregate(header, []*entity.DocumentLine{b, a})

	assert.True(t, st1.Net.Equal(st2.Net))
	assert.True(t, st1.TotalTax.Equal(st2.TotalTax))
	assert.True(t, st1.Total.Equal(st2.Total))
}
