package repository

import "github.com/tu-usuario/facturacion-pro/internal/domain/entity"

// CustomerRepository acceso a clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByCode(companyID, code string) (*entity.Customer, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error)
}

// SupplierRepository acceso a proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByCode(companyID, code string) (*entity.Supplier, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error)
}

// CompanyRepository acceso a empresas.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
}

// ProductRepository acceso a productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByCode(companyID, code string) (*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
}

// UserRepository acceso a usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndCompany(email, companyID string) (*entity.User, error)
}
