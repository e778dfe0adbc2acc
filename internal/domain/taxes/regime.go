package taxes

import "github.com/tu-usuario/facturacion-pro/internal/domain/entity"

// Classify determina el régimen de IVA del documento a partir de los datos
// fiscales del sujeto (cliente o proveedor). Sin sujeto o sin régimen
// configurado se asume el régimen general. Una causa de exención registrada
// fuerza el régimen exento.
func Classify(subject *entity.FiscalData) string {
	if subject == nil {
		return entity.RegimeGeneral
	}
	if subject.TaxExemptionReason != "" || subject.VATRegime == entity.RegimeExempt {
		return entity.RegimeExempt
	}
	if subject.VATRegime == "" {
		return entity.RegimeGeneral
	}
	return subject.VATRegime
}

// IsMarginProduct indica si una línea tributa por el régimen de margen de
// bienes usados: lo decide la empresa (no el sujeto) combinada con el tipo del
// producto de la línea. Se evalúa por línea porque un mismo documento puede
// mezclar líneas ordinarias y de segunda mano.
func IsMarginProduct(company *entity.Company, product *entity.Product) bool {
	return company.UsesMarginScheme() && product.IsSecondHand()
}
