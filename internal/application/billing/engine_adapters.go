package billing

import (
	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
	"github.com/tu-usuario/facturacion-pro/internal/domain/repository"
	"github.com/tu-usuario/facturacion-pro/internal/domain/taxes"
	"github.com/tu-usuario/facturacion-pro/pkg/logger"
)

// lookups implementa los colaboradores de solo lectura del motor sobre los
// repositorios, acotado a una empresa. Un error de lectura se degrada a nil con
// un warning: el motor aplica entonces sus valores por defecto.
type lookups struct {
	companyID    string
	taxRepo      repository.TaxRepository
	zoneRepo     repository.TaxZoneRepository
	serieRepo    repository.SerieRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	companyRepo  repository.CompanyRepository
	productRepo  repository.ProductRepository
	log          *logger.Logger
}

var (
	_ taxes.TaxLookup     = (*lookups)(nil)
	_ taxes.SubjectLookup = (*lookups)(nil)
	_ taxes.CompanyLookup = (*lookups)(nil)
	_ taxes.SerieLookup   = (*lookups)(nil)
	_ taxes.ZoneSource    = (*lookups)(nil)
	_ taxes.ProductLookup = (*lookups)(nil)
)

func (l *lookups) Tax(code string) *entity.Tax {
	t, err := l.taxRepo.GetByCode(code)
	if err != nil {
		l.log.Warn().Err(err).Str("tax", code).Msg("no se pudo leer el impuesto")
		return nil
	}
	return t
}

// Subject devuelve los datos fiscales del cliente o del proveedor según el
// sentido del documento.
func (l *lookups) Subject(doc taxes.Document) *entity.FiscalData {
	h := doc.Header()
	if h.Purchase {
		s, err := l.supplierRepo.GetByCode(l.companyID, h.SubjectCode)
		if err != nil {
			l.log.Warn().Err(err).Str("supplier", h.SubjectCode).Msg("no se pudo leer el proveedor")
			return nil
		}
		if s == nil {
			return nil
		}
		return &s.FiscalData
	}
	c, err := l.customerRepo.GetByCode(l.companyID, h.SubjectCode)
	if err != nil {
		l.log.Warn().Err(err).Str("customer", h.SubjectCode).Msg("no se pudo leer el cliente")
		return nil
	}
	if c == nil {
		return nil
	}
	return &c.FiscalData
}

func (l *lookups) Company(id string) *entity.Company {
	c, err := l.companyRepo.GetByID(id)
	if err != nil {
		l.log.Warn().Err(err).Str("company", id).Msg("no se pudo leer la empresa")
		return nil
	}
	return c
}

func (l *lookups) Serie(code string) *entity.Serie {
	s, err := l.serieRepo.GetByCode(code)
	if err != nil {
		l.log.Warn().Err(err).Str("serie", code).Msg("no se pudo leer la serie")
		return nil
	}
	return s
}

func (l *lookups) Zones() []entity.TaxZone {
	zones, err := l.zoneRepo.ListOrdered()
	if err != nil {
		l.log.Warn().Err(err).Msg("no se pudieron leer las reglas de zona")
		return nil
	}
	return zones
}

func (l *lookups) Product(code string) *entity.Product {
	p, err := l.productRepo.GetByCode(l.companyID, code)
	if err != nil {
		l.log.Warn().Err(err).Str("product", code).Msg("no se pudo leer el producto")
		return nil
	}
	return p
}

// storeAdapter traduce el contrato booleano de persistencia del motor al
// repositorio de documentos, registrando el error descartado.
type storeAdapter struct {
	docs repository.DocumentRepository
	log  *logger.Logger
}

var _ taxes.DocumentStore = (*storeAdapter)(nil)

func (s *storeAdapter) SaveLine(line *entity.DocumentLine) bool {
	if err := s.docs.UpsertLine(line); err != nil {
		s.log.Error().Err(err).Str("line", line.ID).Msg("fallo al guardar la línea")
		return false
	}
	return true
}

func (s *storeAdapter) SaveDocument(doc taxes.Document) bool {
	inv, ok := doc.(*entity.Invoice)
	if !ok {
		s.log.Warn().Str("document", doc.Header().ID).Msg("la variante de documento no tiene persistencia propia")
		return false
	}
	if err := s.docs.UpdateInvoice(inv); err != nil {
		s.log.Error().Err(err).Str("document", inv.ID).Msg("fallo al guardar el documento")
		return false
	}
	return true
}
