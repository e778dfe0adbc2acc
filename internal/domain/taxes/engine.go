package taxes

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
	"github.com/tu-usuario/facturacion-pro/pkg/logger"
)

// Colaboradores externos del motor (solo lectura). Todos devuelven nil si el
// código no existe; el motor aplica valores por defecto en ese caso.
type (
	// TaxLookup resuelve un código de impuesto.
	TaxLookup interface {
		Tax(code string) *entity.Tax
	}
	// SubjectLookup resuelve los datos fiscales del sujeto del documento
	// (cliente en ventas, proveedor en compras).
	SubjectLookup interface {
		Subject(doc Document) *entity.FiscalData
	}
	// CompanyLookup resuelve la empresa del documento.
	CompanyLookup interface {
		Company(id string) *entity.Company
	}
	// SerieLookup resuelve una serie de numeración.
	SerieLookup interface {
		Serie(code string) *entity.Serie
	}
	// ZoneSource lista todas las reglas de zona fiscal, prioridad descendente.
	ZoneSource interface {
		Zones() []entity.TaxZone
	}
	// ProductLookup resuelve el producto de una línea.
	ProductLookup interface {
		Product(code string) *entity.Product
	}
	// DocumentStore persistencia opaca. El fallo se reporta como booleano.
	DocumentStore interface {
		SaveLine(line *entity.DocumentLine) bool
		SaveDocument(doc Document) bool
	}
)

// Deps dependencias del motor. Hooks se inyecta en construcción: no hay
// registro global, cada Engine lleva su propia cadena.
type Deps struct {
	Taxes       TaxLookup
	Subjects    SubjectLookup
	Companies   CompanyLookup
	Series      SerieLookup
	Zones       ZoneSource
	Products    ProductLookup
	Store       DocumentStore
	Hooks       []Hook
	Precision   int32
	ZeroTaxCode string
	Log         *logger.Logger
}

// Engine orquesta el cálculo completo de un documento:
// Clear -> Apply -> CalculateLine×N -> Aggregate+Reduce -> hooks finales -> [Save].
// Una invocación solo muta el documento y las líneas recibidas; llamadas
// concurrentes sobre documentos distintos son seguras, sobre el mismo documento
// debe serializarlas el llamador.
type Engine struct {
	deps Deps
}

// NewEngine construye el motor. Precision por defecto 2 decimales.
func NewEngine(deps Deps) *Engine {
	if deps.Precision == 0 {
		deps.Precision = 2
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	return &Engine{deps: deps}
}

// Calculate recalcula todos los totales del documento. Con save=true persiste
// primero cada línea y después el documento, cortando en el primer fallo: las
// líneas ya guardadas quedan tal cual (sin rollback; la atomicidad, si se
// necesita, la aporta el llamador con una transacción externa).
func (e *Engine) Calculate(doc Document, lines []*entity.DocumentLine, save bool) bool {
	ctx := e.buildContext(doc)

	e.clear(doc, lines)
	e.apply(ctx, doc, lines)

	for _, line := range lines {
		CalculateLine(line)
		e.runLineHooks(doc, line)
	}

	st := e.aggregate(ctx, doc, lines)
	Reduce(doc, st)

	for _, h := range e.deps.Hooks {
		if h.OnFinal(doc, lines) == Stop {
			break
		}
	}

	e.deps.Log.Debug().
		Str("document", doc.Header().ID).
		Str("net", doc.Header().Net.String()).
		Str("total", doc.Header().Total.String()).
		Msg("documento calculado")

	if save {
		return e.save(doc, lines)
	}
	return true
}

// GetSubtotals calcula los subtotales por bucket sin mutar documento ni líneas
// y sin persistir nada.
func (e *Engine) GetSubtotals(doc Document, lines []*entity.DocumentLine) *Subtotals {
	ctx := e.buildContext(doc)
	return e.aggregate(ctx, doc, lines)
}

// clear pone a cero los totales de cabecera y los derivados de las líneas.
// Idempotente: dos clears seguidos dejan el mismo estado que uno.
func (e *Engine) clear(doc Document, lines []*entity.DocumentLine) {
	doc.Header().ClearTotals()
	if m, ok := doc.(MarginTracker); ok {
		m.SetMarginTotals(decimal.Zero, decimal.Zero)
	}
	for _, line := range lines {
		line.ClearDerived()
	}
	for _, h := range e.deps.Hooks {
		if h.OnClear(doc, lines) == Stop {
			break
		}
	}
}

// apply ejecuta resolución de zona + clasificación de régimen + mutación
// fiscal sobre todas las líneas.
func (e *Engine) apply(ctx *ApplyContext, doc Document, lines []*entity.DocumentLine) {
	for _, line := range lines {
		ApplyLineTaxes(ctx, line)
	}
	for _, h := range e.deps.Hooks {
		if h.OnApply(doc, lines) == Stop {
			break
		}
	}
}

func (e *Engine) runLineHooks(doc Document, line *entity.DocumentLine) {
	for _, h := range e.deps.Hooks {
		if h.OnCalculateLine(doc, line) == Stop {
			break
		}
	}
}

// aggregate agrupa por buckets, reduce y pasa los subtotales por los hooks.
func (e *Engine) aggregate(ctx *ApplyContext, doc Document, lines []*entity.DocumentLine) *Subtotals {
	agg := &Aggregator{
		Precision:      e.deps.Precision,
		Rectifying:     ctx.Rectifying,
		IntraCommunity: ctx.IntraCommunity,
		TaxOf:          ctx.TaxOf,
	}
	// Margen solo en el lado de venta: en compras la regla 1 del aplicador ya
	// dejó la línea sin impuesto.
	if ctx.CompanyMargin && !ctx.Purchase {
		agg.MarginLine = func(line *entity.DocumentLine) bool {
			if line.ProductCode == "" {
				return false
			}
			return ctx.ProductOf(line.ProductCode).IsSecondHand()
		}
	}

	st := agg.Aggregate(doc.Header(), lines)
	for _, h := range e.deps.Hooks {
		if h.OnGetSubtotals(doc, st) == Stop {
			break
		}
	}
	return st
}

// buildContext resuelve una sola vez por documento todo lo que el aplicador y
// el agregador necesitan: sujeto, régimen, serie, empresa y reglas de zona.
func (e *Engine) buildContext(doc Document) *ApplyContext {
	h := doc.Header()

	subject := e.deps.Subjects.Subject(doc)
	serie := e.deps.Series.Serie(h.SerieCode)
	company := e.deps.Companies.Company(h.CompanyID)

	ctx := &ApplyContext{
		Purchase:       h.Purchase,
		Regime:         Classify(subject),
		CompanyMargin:  company.UsesMarginScheme(),
		IntraCommunity: h.Operation == entity.OperationIntraCommunity,
		ZeroTax:        e.deps.Taxes.Tax(e.deps.ZeroTaxCode),
		ZoneRules:      NewZoneResolver(e.deps.Zones.Zones()).Resolve(h.CountryCode, h.RegionCode),
		TaxOf:          e.deps.Taxes.Tax,
		ProductOf:      e.deps.Products.Product,
	}
	if subject != nil {
		ctx.ExemptReason = subject.TaxExemptionReason
	}
	if serie != nil {
		ctx.SerieTaxFree = serie.TaxFree
		ctx.Rectifying = serie.IsRectifying()
	}
	return ctx
}

// save persiste líneas y después el documento, fail-fast.
func (e *Engine) save(doc Document, lines []*entity.DocumentLine) bool {
	if e.deps.Store == nil {
		e.deps.Log.Warn().Str("document", doc.Header().ID).Msg("sin almacén configurado, no se puede guardar")
		return false
	}
	for _, line := range lines {
		if !e.deps.Store.SaveLine(line) {
			e.deps.Log.Warn().
				Str("document", doc.Header().ID).
				Str("line", line.ID).
				Msg("fallo al guardar línea, se aborta el guardado del documento")
			return false
		}
	}
	if !e.deps.Store.SaveDocument(doc) {
		e.deps.Log.Warn().Str("document", doc.Header().ID).Msg("fallo al guardar el documento")
		return false
	}
	return true
}
