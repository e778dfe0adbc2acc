package taxes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
	"github.com/tu-usuario/facturacion-pro/internal/domain/taxes"
)

func testApplyContext() *taxes.ApplyContext {
	taxMap := map[string]*entity.Tax{
		"IVA21": {Code: "IVA21", Rate: dec("21"), SurchargeRate: dec("5.2"), Kind: entity.TaxKindPercentage},
		"IGIC7": {Code: "IGIC7", Rate: dec("7"), Kind: entity.TaxKindPercentage},
		"IVA0":  {Code: "IVA0", Kind: entity.TaxKindPercentage},
	}
	productMap := map[string]*entity.Product{
		"USADO": {Code: "USADO", Type: entity.ProductTypeSecondHand},
		"NUEVO": {Code: "NUEVO", Type: entity.ProductTypeNormal},
	}
	return &taxes.ApplyContext{
		Regime:    entity.RegimeGeneral,
		ZeroTax:   taxMap["IVA0"],
		TaxOf:     func(code string) *entity.Tax { return taxMap[code] },
		ProductOf: func(code string) *entity.Product { return productMap[code] },
	}
}

func iva21Line() *entity.DocumentLine {
	return &entity.DocumentLine{
		TaxCode:       "IVA21",
		TaxRate:       dec("21"),
		SurchargeRate: dec("5.2"),
	}
}

// TestApply_MargenEnCompra en compras de segunda mano con la empresa en
// régimen de margen, la línea queda sin impuesto: se difiere a la venta.
func TestApply_MargenEnCompra(t *testing.T) {
	ctx := testApplyContext()
	ctx.Purchase = true
	ctx.CompanyMargin = true
	line := iva21Line()
	line.ProductCode = "USADO"

	taxes.ApplyLineTaxes(ctx, line)

	assert.Empty(t, line.TaxCode)
	assertDecimal(t, "0", line.TaxRate)
	assertDecimal(t, "0", line.SurchargeRate)
}

// TestApply_MargenNoAplicaAProductoNormal un producto ordinario en la misma
// compra sigue el circuito normal (aquí: régimen general quita solo el recargo).
func TestApply_MargenNoAplicaAProductoNormal(t *testing.T) {
	ctx := testApplyContext()
	ctx.Purchase = true
	ctx.CompanyMargin = true
	line := iva21Line()
	line.ProductCode = "NUEVO"

	taxes.ApplyLineTaxes(ctx, line)

	assert.Equal(t, "IVA21", line.TaxCode)
	assertDecimal(t, "21", line.TaxRate)
	assertDecimal(t, "0", line.SurchargeRate)
}

// TestApply_ZonaFiscal la primera regla de zona cuyo impuesto de origen
// coincide sustituye código, tasa y recargo por los del impuesto destino.
func TestApply_ZonaFiscal(t *testing.T) {
	ctx := testApplyContext()
	ctx.ZoneRules = []entity.TaxZone{
		{TaxCode: "IVA21", TargetTaxCode: "IGIC7", CountryCode: "ES", RegionCode: "Canarias", Priority: 10},
	}
	line := iva21Line()

	taxes.ApplyLineTaxes(ctx, line)

	assert.Equal(t, "IGIC7", line.TaxCode)
	assertDecimal(t, "7", line.TaxRate)
	assertDecimal(t, "0", line.SurchargeRate)
}

// TestApply_SerieSinImpuestos una serie libre de impuestos fuerza el impuesto
// exento canónico y registra la causa de exención.
func TestApply_SerieSinImpuestos(t *testing.T) {
	ctx := testApplyContext()
	ctx.SerieTaxFree = true
	ctx.ExemptReason = "E2 Art. 21"
	line := iva21Line()

	taxes.ApplyLineTaxes(ctx, line)

	assert.Equal(t, "IVA0", line.TaxCode)
	assertDecimal(t, "0", line.TaxRate)
	assertDecimal(t, "0", line.SurchargeRate)
	assert.Equal(t, "E2 Art. 21", line.TaxExemptionReason)
}

// TestApply_RegimenExento el régimen exento actúa igual que la serie sin impuestos.
func TestApply_RegimenExento(t *testing.T) {
	ctx := testApplyContext()
	ctx.Regime = entity.RegimeExempt
	line := iva21Line()

	taxes.ApplyLineTaxes(ctx, line)

	assert.Equal(t, "IVA0", line.TaxCode)
	assertDecimal(t, "0", line.TaxRate)
}

// TestApply_RecargoSoloEnRegimenDeRecargo fuera del régimen de recargo de
// equivalencia se anula únicamente el recargo; tasa y código se conservan.
func TestApply_RecargoSoloEnRegimenDeRecargo(t *testing.T) {
	general := iva21Line()
	taxes.ApplyLineTaxes(testApplyContext(), general)
	assert.Equal(t, "IVA21", general.TaxCode)
	assertDecimal(t, "21", general.TaxRate)
	assertDecimal(t, "0", general.SurchargeRate)

	ctx := testApplyContext()
	ctx.Regime = entity.RegimeSurcharge
	surcharge := iva21Line()
	taxes.ApplyLineTaxes(ctx, surcharge)
	assertDecimal(t, "5.2", surcharge.SurchargeRate, "en recargo de equivalencia el recargo se mantiene")
}

// TestApply_SinReglaAplicable con régimen de recargo, sin zona y sin exención
// la línea queda exactamente igual.
func TestApply_SinReglaAplicable(t *testing.T) {
	ctx := testApplyContext()
	ctx.Regime = entity.RegimeSurcharge
	line := iva21Line()

	taxes.ApplyLineTaxes(ctx, line)

	assert.Equal(t, "IVA21", line.TaxCode)
	assertDecimal(t, "21", line.TaxRate)
	assertDecimal(t, "5.2", line.SurchargeRate)
}
