package taxes

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
)

// ApplyContext estado fiscal del documento, resuelto una sola vez, con el que
// se aplican los impuestos línea a línea.
type ApplyContext struct {
	Purchase       bool
	Regime         string // régimen de IVA del documento (Classify)
	CompanyMargin  bool   // la empresa tributa por bienes usados
	SerieTaxFree   bool
	Rectifying     bool // la serie es rectificativa
	IntraCommunity bool
	ExemptReason   string            // causa de exención del sujeto
	ZeroTax        *entity.Tax       // impuesto exento canónico
	ZoneRules      []entity.TaxZone  // ya resueltas para el país/región del documento
	TaxOf          func(code string) *entity.Tax
	ProductOf      func(code string) *entity.Product
}

// marginPurchaseLine: compra + empresa en régimen de margen + producto de
// segunda mano. El impuesto se difiere al cálculo del margen en la venta.
func (ctx *ApplyContext) marginPurchaseLine(line *entity.DocumentLine) bool {
	if !ctx.Purchase || !ctx.CompanyMargin || line.ProductCode == "" {
		return false
	}
	return ctx.ProductOf(line.ProductCode).IsSecondHand()
}

// applyRule regla de mutación fiscal de una línea. La precedencia es el orden
// del slice: la primera regla cuya condición se cumple actúa y corta.
type applyRule struct {
	name string
	when func(ctx *ApplyContext, line *entity.DocumentLine) bool
	run  func(ctx *ApplyContext, line *entity.DocumentLine)
}

var applyRules = []applyRule{
	{
		name: "margen-bienes-usados",
		when: func(ctx *ApplyContext, line *entity.DocumentLine) bool {
			return ctx.marginPurchaseLine(line)
		},
		run: func(ctx *ApplyContext, line *entity.DocumentLine) {
			line.TaxCode = ""
			line.TaxRate = decimal.Zero
			line.SurchargeRate = decimal.Zero
		},
	},
	{
		name: "zona-fiscal",
		when: func(ctx *ApplyContext, line *entity.DocumentLine) bool {
			return firstZoneMatch(ctx.ZoneRules, line.TaxCode, ctx.TaxOf) != nil
		},
		run: func(ctx *ApplyContext, line *entity.DocumentLine) {
			target := firstZoneMatch(ctx.ZoneRules, line.TaxCode, ctx.TaxOf)
			line.TaxCode = target.Code
			line.TaxRate = target.Rate
			line.SurchargeRate = target.SurchargeRate
		},
	},
	{
		name: "exencion",
		when: func(ctx *ApplyContext, line *entity.DocumentLine) bool {
			return ctx.SerieTaxFree || ctx.Regime == entity.RegimeExempt
		},
		run: func(ctx *ApplyContext, line *entity.DocumentLine) {
			if ctx.ZeroTax != nil {
				line.TaxCode = ctx.ZeroTax.Code
			}
			line.TaxRate = decimal.Zero
			line.SurchargeRate = decimal.Zero
			line.TaxExemptionReason = ctx.ExemptReason
		},
	},
	{
		name: "sin-recargo",
		when: func(ctx *ApplyContext, line *entity.DocumentLine) bool {
			return ctx.Regime != entity.RegimeSurcharge
		},
		run: func(ctx *ApplyContext, line *entity.DocumentLine) {
			line.SurchargeRate = decimal.Zero
		},
	},
}

// ApplyLineTaxes muta el impuesto efectivo de la línea (código, tasa, recargo,
// causa de exención) según la primera regla aplicable. Si ninguna regla aplica,
// la línea conserva su impuesto original.
func ApplyLineTaxes(ctx *ApplyContext, line *entity.DocumentLine) {
	for _, r := range applyRules {
		if r.when(ctx, line) {
			r.run(ctx, line)
			return
		}
	}
}
