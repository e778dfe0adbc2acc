package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/facturacion-pro/internal/application/dto"
	"github.com/tu-usuario/facturacion-pro/internal/domain"
	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
	"github.com/tu-usuario/facturacion-pro/internal/domain/repository"
	"github.com/tu-usuario/facturacion-pro/internal/domain/taxes"
	"github.com/tu-usuario/facturacion-pro/pkg/logger"
)

// EngineConfig parámetros del motor de cálculo.
type EngineConfig struct {
	Precision   int32
	ZeroTaxCode string
	CountryCode string // país por defecto si documento y empresa no lo fijan
}

// InvoiceUseCase casos de uso de facturación: alta, consulta, recálculo y
// desglose de subtotales. El cálculo en sí vive en el dominio (taxes.Engine);
// aquí solo se resuelven entradas y se decide la atomicidad del guardado.
type InvoiceUseCase struct {
	txRunner     CalcTxRunner
	docRepo      repository.DocumentRepository
	taxRepo      repository.TaxRepository
	zoneRepo     repository.TaxZoneRepository
	serieRepo    repository.SerieRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	companyRepo  repository.CompanyRepository
	productRepo  repository.ProductRepository
	hooks        []taxes.Hook
	cfg          EngineConfig
	log          *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner CalcTxRunner,
	docRepo repository.DocumentRepository,
	taxRepo repository.TaxRepository,
	zoneRepo repository.TaxZoneRepository,
	serieRepo repository.SerieRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	hooks []taxes.Hook,
	cfg EngineConfig,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		docRepo:      docRepo,
		taxRepo:      taxRepo,
		zoneRepo:     zoneRepo,
		serieRepo:    serieRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		companyRepo:  companyRepo,
		productRepo:  productRepo,
		hooks:        hooks,
		cfg:          cfg,
		log:          log,
	}
}

// engineFor construye un motor acotado a una empresa, con la persistencia
// atada al repositorio recibido (pool o tx). docs nil = motor sin guardado.
func (uc *InvoiceUseCase) engineFor(companyID string, docs repository.DocumentRepository) *taxes.Engine {
	l := &lookups{
		companyID:    companyID,
		taxRepo:      uc.taxRepo,
		zoneRepo:     uc.zoneRepo,
		serieRepo:    uc.serieRepo,
		customerRepo: uc.customerRepo,
		supplierRepo: uc.supplierRepo,
		companyRepo:  uc.companyRepo,
		productRepo:  uc.productRepo,
		log:          uc.log,
	}
	deps := taxes.Deps{
		Taxes:       l,
		Subjects:    l,
		Companies:   l,
		Series:      l,
		Zones:       l,
		Products:    l,
		Hooks:       uc.hooks,
		Precision:   uc.cfg.Precision,
		ZeroTaxCode: uc.cfg.ZeroTaxCode,
		Log:         uc.log,
	}
	if docs != nil {
		deps.Store = &storeAdapter{docs: docs, log: uc.log}
	}
	return taxes.NewEngine(deps)
}

// Create da de alta una factura: valida entradas, completa las líneas con los
// datos del producto y del impuesto, y calcula y guarda de forma atómica.
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.SubjectCode == "" || in.SerieCode == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	serie, err := uc.serieRepo.GetByCode(in.SerieCode)
	if err != nil || serie == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkSubject(companyID, in.SubjectCode, in.Purchase); err != nil {
		return nil, err
	}
	if in.Operation != "" && in.Operation != entity.OperationDomestic && in.Operation != entity.OperationIntraCommunity {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	inv := &entity.Invoice{DocumentHeader: entity.DocumentHeader{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SubjectCode: in.SubjectCode,
		SerieCode:   in.SerieCode,
		Number:      in.Number,
		Purchase:    in.Purchase,
		CountryCode: uc.countryFor(in.CountryCode, company),
		RegionCode:  uc.regionFor(in.RegionCode, company),
		Operation:   operationOrDefault(in.Operation),
		Discount1:   in.Discount1,
		Discount2:   in.Discount2,
		Date:        now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}}
	if inv.Number == "" {
		inv.Number = fmt.Sprintf("%s-%d", in.SerieCode, now.Unix())
	}

	lines, err := uc.buildLines(companyID, inv.ID, in.Lines)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunCalculation(ctx, func(docRepo repository.DocumentRepository) error {
		if err := docRepo.CreateInvoice(inv); err != nil {
			return err
		}
		if ok := uc.engineFor(companyID, docRepo).Calculate(inv, lines, true); !ok {
			return domain.ErrCalculationFailed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, lines), nil
}

// Get obtiene una factura por ID con sus líneas.
func (uc *InvoiceUseCase) Get(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, lines, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, lines), nil
}

// Calculate recalcula una factura existente. Con save=true el recálculo y el
// guardado corren dentro de una transacción: o se persiste todo o nada.
func (uc *InvoiceUseCase) Calculate(ctx context.Context, companyID, id string, save bool) (*dto.CalculateResponse, error) {
	inv, lines, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}

	if !save {
		ok := uc.engineFor(companyID, nil).Calculate(inv, lines, false)
		return &dto.CalculateResponse{OK: ok, Invoice: toInvoiceResponse(inv, lines)}, nil
	}

	inv.UpdatedAt = time.Now()
	err = uc.txRunner.RunCalculation(ctx, func(docRepo repository.DocumentRepository) error {
		if ok := uc.engineFor(companyID, docRepo).Calculate(inv, lines, true); !ok {
			return domain.ErrCalculationFailed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.CalculateResponse{OK: true, Saved: true, Invoice: toInvoiceResponse(inv, lines)}, nil
}

// Subtotals devuelve el desglose por buckets sin tocar la factura: consulta pura.
func (uc *InvoiceUseCase) Subtotals(ctx context.Context, companyID, id string) (*dto.SubtotalsResponse, error) {
	inv, lines, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	st := uc.engineFor(companyID, nil).GetSubtotals(inv, lines)
	return toSubtotalsResponse(st), nil
}

// List lista facturas de la empresa con paginación.
func (uc *InvoiceUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	invoices, err := uc.docRepo.ListInvoicesByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, nil))
	}
	return out, nil
}

func (uc *InvoiceUseCase) load(companyID, id string) (*entity.Invoice, []*entity.DocumentLine, error) {
	inv, err := uc.docRepo.GetInvoiceByID(id)
	if err != nil || inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	lines, err := uc.docRepo.GetLinesByDocumentID(id)
	if err != nil {
		return nil, nil, err
	}
	return inv, lines, nil
}

// checkSubject valida que el sujeto exista en la empresa (cliente en ventas,
// proveedor en compras).
func (uc *InvoiceUseCase) checkSubject(companyID, code string, purchase bool) error {
	if purchase {
		s, err := uc.supplierRepo.GetByCode(companyID, code)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		return nil
	}
	c, err := uc.customerRepo.GetByCode(companyID, code)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return nil
}

// buildLines valida cada línea y completa precio, coste, impuesto y tasas
// desde el producto y la tabla de impuestos. Las cantidades negativas son
// válidas (abonos).
func (uc *InvoiceUseCase) buildLines(companyID, documentID string, in []dto.InvoiceLineRequest) ([]*entity.DocumentLine, error) {
	lines := make([]*entity.DocumentLine, 0, len(in))
	for i := range in {
		item := &in[i]
		if item.Quantity.IsZero() && item.UnitPrice.IsZero() {
			return nil, domain.ErrInvalidInput
		}

		line := &entity.DocumentLine{
			ID:          uuid.New().String(),
			DocumentID:  documentID,
			ProductCode: item.ProductCode,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount1:   item.Discount1,
			Discount2:   item.Discount2,
			TaxCode:     item.TaxCode,
			Withholding: item.Withholding,
			NonTaxable:  item.NonTaxable,
			CostPrice:   item.CostPrice,
		}

		if item.ProductCode != "" {
			product, err := uc.productRepo.GetByCode(companyID, item.ProductCode)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, domain.ErrNotFound
			}
			if line.UnitPrice.IsZero() {
				line.UnitPrice = product.Price
			}
			if line.TaxCode == "" {
				line.TaxCode = product.TaxCode
			}
			if line.CostPrice.IsZero() {
				line.CostPrice = product.Cost
			}
			if line.Description == "" {
				line.Description = product.Name
			}
		}

		// Tasas iniciales desde la tabla de impuestos; el aplicador del motor
		// puede sustituirlas (zona fiscal, exención, recargo).
		if line.TaxCode != "" {
			tax, err := uc.taxRepo.GetByCode(line.TaxCode)
			if err != nil {
				return nil, err
			}
			if tax == nil {
				return nil, domain.ErrInvalidInput
			}
			line.TaxRate = tax.Rate
			line.SurchargeRate = tax.SurchargeRate
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (uc *InvoiceUseCase) countryFor(requested string, company *entity.Company) string {
	if requested != "" {
		return requested
	}
	if company.CountryCode != "" {
		return company.CountryCode
	}
	return uc.cfg.CountryCode
}

func (uc *InvoiceUseCase) regionFor(requested string, company *entity.Company) string {
	if requested != "" {
		return requested
	}
	return company.RegionCode
}

func operationOrDefault(op string) string {
	if op == "" {
		return entity.OperationDomestic
	}
	return op
}

func toInvoiceResponse(inv *entity.Invoice, lines []*entity.DocumentLine) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:               inv.ID,
		CompanyID:        inv.CompanyID,
		SubjectCode:      inv.SubjectCode,
		SerieCode:        inv.SerieCode,
		Number:           inv.Number,
		Purchase:         inv.Purchase,
		Operation:        inv.Operation,
		Date:             inv.Date.Format("2006-01-02"),
		Net:              inv.Net,
		Total:            inv.Total,
		TotalTax:         inv.TotalTax,
		TotalSurcharge:   inv.TotalSurcharge,
		TotalWithholding: inv.TotalWithholding,
		TotalNonTaxable:  inv.TotalNonTaxable,
		WithholdingRate:  inv.WithholdingRate,
		TotalProfit:      inv.TotalProfit,
		TotalCost:        inv.TotalCost,
		Lines:            make([]dto.InvoiceLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:                 l.ID,
			ProductCode:        l.ProductCode,
			Description:        l.Description,
			Quantity:           l.Quantity,
			UnitPrice:          l.UnitPrice,
			Discount1:          l.Discount1,
			Discount2:          l.Discount2,
			TaxCode:            l.TaxCode,
			TaxRate:            l.TaxRate,
			SurchargeRate:      l.SurchargeRate,
			Withholding:        l.Withholding,
			NonTaxable:         l.NonTaxable,
			TaxExemptionReason: l.TaxExemptionReason,
			Subtotal:           l.Subtotal,
		})
	}
	return resp
}

func toSubtotalsResponse(st *taxes.Subtotals) *dto.SubtotalsResponse {
	resp := &dto.SubtotalsResponse{
		Net:              st.Net,
		Total:            st.Total,
		TotalTax:         st.TotalTax,
		TotalSurcharge:   st.TotalSurcharge,
		TotalWithholding: st.TotalWithholding,
		TotalNonTaxable:  st.TotalNonTaxable,
		WithholdingRate:  st.WithholdingRate,
		Buckets:          make([]dto.BucketResponse, 0, len(st.Order)),
	}
	for _, key := range st.Order {
		b := st.Buckets[key]
		resp.Buckets = append(resp.Buckets, dto.BucketResponse{
			TaxCode:       b.TaxCode,
			Rate:          b.Rate,
			SurchargeRate: b.SurchargeRate,
			Net:           b.Net,
			Tax:           b.Tax,
			Surcharge:     b.Surcharge,
		})
	}
	return resp
}
