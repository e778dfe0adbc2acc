package repository

import "github.com/tu-usuario/facturacion-pro/internal/domain/entity"

// DocumentRepository persistencia de facturas y sus líneas.
// Las variantes sin persistencia propia (presupuestos en memoria para
// simulaciones) no pasan por aquí.
type DocumentRepository interface {
	CreateInvoice(inv *entity.Invoice) error
	UpdateInvoice(inv *entity.Invoice) error
	GetInvoiceByID(id string) (*entity.Invoice, error)
	ListInvoicesByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error)

	UpsertLine(line *entity.DocumentLine) error
	GetLinesByDocumentID(documentID string) ([]*entity.DocumentLine, error)
}
