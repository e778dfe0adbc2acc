package dto

import "github.com/shopspring/decimal"

// InvoiceLineRequest línea de factura en la petición de alta.
// UnitPrice, TaxCode y CostPrice vacíos se completan con los del producto.
type InvoiceLineRequest struct {
	ProductCode string          `json:"product_code,omitempty"` // vacío = línea libre
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price,omitempty"`
	Discount1   decimal.Decimal `json:"discount1,omitempty"`
	Discount2   decimal.Decimal `json:"discount2,omitempty"`
	TaxCode     string          `json:"tax_code,omitempty"`
	Withholding decimal.Decimal `json:"withholding,omitempty"` // % IRPF
	NonTaxable  bool            `json:"non_taxable,omitempty"` // suplido
	CostPrice   decimal.Decimal `json:"cost_price,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// La factura se calcula y se guarda en la misma operación.
type CreateInvoiceRequest struct {
	SubjectCode string               `json:"subject_code"` // cliente o proveedor según purchase
	SerieCode   string               `json:"serie_code"`
	Number      string               `json:"number,omitempty"` // opcional; si va vacío se genera
	Purchase    bool                 `json:"purchase,omitempty"`
	CountryCode string               `json:"country_code,omitempty"`
	RegionCode  string               `json:"region_code,omitempty"`
	Operation   string               `json:"operation,omitempty"` // interior | intracomunitaria
	Discount1   decimal.Decimal      `json:"discount1,omitempty"`
	Discount2   decimal.Decimal      `json:"discount2,omitempty"`
	Lines       []InvoiceLineRequest `json:"lines"`
}

// InvoiceLineResponse línea en respuestas, con los derivados calculados.
type InvoiceLineResponse struct {
	ID                 string          `json:"id"`
	ProductCode        string          `json:"product_code,omitempty"`
	Description        string          `json:"description,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Discount1          decimal.Decimal `json:"discount1"`
	Discount2          decimal.Decimal `json:"discount2"`
	TaxCode            string          `json:"tax_code,omitempty"`
	TaxRate            decimal.Decimal `json:"tax_rate"`
	SurchargeRate      decimal.Decimal `json:"surcharge_rate"`
	Withholding        decimal.Decimal `json:"withholding"`
	NonTaxable         bool            `json:"non_taxable"`
	TaxExemptionReason string          `json:"tax_exemption_reason,omitempty"`
	Subtotal           decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse factura con totales y líneas para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID               string                `json:"id"`
	CompanyID        string                `json:"company_id"`
	SubjectCode      string                `json:"subject_code"`
	SerieCode        string                `json:"serie_code"`
	Number           string                `json:"number"`
	Purchase         bool                  `json:"purchase"`
	Operation        string                `json:"operation"`
	Date             string                `json:"date"`
	Net              decimal.Decimal       `json:"net"`
	Total            decimal.Decimal       `json:"total"`
	TotalTax         decimal.Decimal       `json:"total_tax"`
	TotalSurcharge   decimal.Decimal       `json:"total_surcharge"`
	TotalWithholding decimal.Decimal       `json:"total_withholding"`
	TotalNonTaxable  decimal.Decimal       `json:"total_non_taxable"`
	WithholdingRate  decimal.Decimal       `json:"withholding_rate"`
	TotalProfit      decimal.Decimal       `json:"total_profit"`
	TotalCost        decimal.Decimal       `json:"total_cost"`
	Lines            []InvoiceLineResponse `json:"lines"`
}

// BucketResponse subtotal de un grupo (tasa, recargo) en la respuesta de subtotales.
type BucketResponse struct {
	TaxCode       string          `json:"tax_code,omitempty"`
	Rate          decimal.Decimal `json:"rate"`
	SurchargeRate decimal.Decimal `json:"surcharge_rate"`
	Net           decimal.Decimal `json:"net"`
	Tax           decimal.Decimal `json:"tax"`
	Surcharge     decimal.Decimal `json:"surcharge"`
}

// SubtotalsResponse desglose por buckets para GET /api/invoices/:id/subtotals.
// Es una consulta pura: no modifica ni persiste nada.
type SubtotalsResponse struct {
	Net              decimal.Decimal  `json:"net"`
	Total            decimal.Decimal  `json:"total"`
	TotalTax         decimal.Decimal  `json:"total_tax"`
	TotalSurcharge   decimal.Decimal  `json:"total_surcharge"`
	TotalWithholding decimal.Decimal  `json:"total_withholding"`
	TotalNonTaxable  decimal.Decimal  `json:"total_non_taxable"`
	WithholdingRate  decimal.Decimal  `json:"withholding_rate"`
	Buckets          []BucketResponse `json:"buckets"`
}

// TaxResponse impuesto parametrizado para GET /api/taxes.
type TaxResponse struct {
	Code          string          `json:"code"`
	Description   string          `json:"description,omitempty"`
	Rate          decimal.Decimal `json:"rate"`
	SurchargeRate decimal.Decimal `json:"surcharge_rate"`
	Kind          string          `json:"kind"`
}

// CalculateResponse resultado de POST /api/invoices/:id/calculate.
type CalculateResponse struct {
	OK      bool             `json:"ok"`
	Saved   bool             `json:"saved"`
	Invoice *InvoiceResponse `json:"invoice,omitempty"`
}
