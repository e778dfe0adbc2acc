package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación fiscal del documento.
const (
	OperationDomestic       = "interior"
	OperationIntraCommunity = "intracomunitaria" // exenta de IVA en origen
)

// DocumentHeader cabecera común de todos los documentos comerciales.
// Los campos de totales son salidas del motor de cálculo: nunca se editan a mano
// y tras un Calculate correcto siempre igualan la reducción sobre las líneas.
type DocumentHeader struct {
	ID          string
	CompanyID   string
	SubjectCode string // cliente o proveedor según Purchase
	SerieCode   string
	Number      string
	Purchase    bool // true = documento de compra (proveedor)
	CountryCode string
	RegionCode  string
	Operation   string          // OperationDomestic | OperationIntraCommunity
	Discount1   decimal.Decimal // % descuento de cabecera, se compone con el segundo
	Discount2   decimal.Decimal
	Date        time.Time

	// Totales calculados
	Net               decimal.Decimal
	NetBeforeDiscount decimal.Decimal
	Total             decimal.Decimal
	TotalTax          decimal.Decimal
	TotalSurcharge    decimal.Decimal
	TotalWithholding  decimal.Decimal
	TotalNonTaxable   decimal.Decimal // suplidos
	WithholdingRate   decimal.Decimal // mayor % IRPF entre las líneas (tasa de presentación)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClearTotals pone a cero todos los totales calculados de la cabecera.
func (h *DocumentHeader) ClearTotals() {
	h.Net = decimal.Zero
	h.NetBeforeDiscount = decimal.Zero
	h.Total = decimal.Zero
	h.TotalTax = decimal.Zero
	h.TotalSurcharge = decimal.Zero
	h.TotalWithholding = decimal.Zero
	h.TotalNonTaxable = decimal.Zero
	h.WithholdingRate = decimal.Zero
}

// Quote presupuesto de venta.
type Quote struct {
	DocumentHeader
}

// Order pedido.
type Order struct {
	DocumentHeader
}

// DeliveryNote albarán.
type DeliveryNote struct {
	DocumentHeader
}

// Invoice factura. Es la única variante que registra margen (beneficio y coste).
type Invoice struct {
	DocumentHeader
	TotalProfit decimal.Decimal
	TotalCost   decimal.Decimal
}

// Header devuelve la cabecera común del documento.
func (q *Quote) Header() *DocumentHeader        { return &q.DocumentHeader }
func (o *Order) Header() *DocumentHeader        { return &o.DocumentHeader }
func (d *DeliveryNote) Header() *DocumentHeader { return &d.DocumentHeader }
func (i *Invoice) Header() *DocumentHeader      { return &i.DocumentHeader }

// SetMarginTotals registra beneficio y coste calculados (capacidad de margen).
func (i *Invoice) SetMarginTotals(profit, cost decimal.Decimal) {
	i.TotalProfit = profit
	i.TotalCost = cost
}

// DocumentLine línea de un documento comercial. Pertenece a exactamente un documento.
type DocumentLine struct {
	ID          string
	DocumentID  string
	ProductCode string // vacío = línea libre sin producto
	Description string

	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount1 decimal.Decimal // % secuencial (compuesto con Discount2, no aditivo)
	Discount2 decimal.Decimal

	TaxCode            string // vacío = sin impuesto
	TaxRate            decimal.Decimal
	SurchargeRate      decimal.Decimal
	Withholding        decimal.Decimal // % IRPF
	NonTaxable         bool            // suplido: importe no sujeto, sin IVA ni IRPF
	CostPrice          decimal.Decimal
	TaxExemptionReason string

	// Derivados, siempre recalculados por el motor
	SubtotalBeforeDiscount decimal.Decimal
	Subtotal               decimal.Decimal
}

// ClearDerived pone a cero los campos derivados de la línea.
func (l *DocumentLine) ClearDerived() {
	l.SubtotalBeforeDiscount = decimal.Zero
	l.Subtotal = decimal.Zero
}
