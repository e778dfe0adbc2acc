package billing

import (
	"github.com/tu-usuario/facturacion-pro/internal/application/dto"
	"github.com/tu-usuario/facturacion-pro/internal/domain/repository"
)

// TaxUseCase consultas sobre la tabla de impuestos.
type TaxUseCase struct {
	taxRepo repository.TaxRepository
}

// NewTaxUseCase construye el caso de uso.
func NewTaxUseCase(taxRepo repository.TaxRepository) *TaxUseCase {
	return &TaxUseCase{taxRepo: taxRepo}
}

// List devuelve todos los impuestos parametrizados.
func (uc *TaxUseCase) List() ([]dto.TaxResponse, error) {
	taxes, err := uc.taxRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaxResponse, 0, len(taxes))
	for _, t := range taxes {
		out = append(out, dto.TaxResponse{
			Code:          t.Code,
			Description:   t.Description,
			Rate:          t.Rate,
			SurchargeRate: t.SurchargeRate,
			Kind:          t.Kind,
		})
	}
	return out, nil
}
