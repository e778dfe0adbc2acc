package taxes

import (
	"sort"

	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
)

// ZoneResolver selecciona las reglas de zona fiscal aplicables a un documento.
type ZoneResolver struct {
	rules []entity.TaxZone
}

// NewZoneResolver construye el resolutor con el listado completo de reglas.
func NewZoneResolver(rules []entity.TaxZone) *ZoneResolver {
	return &ZoneResolver{rules: rules}
}

// Resolve devuelve las reglas aplicables al país/región del documento, de más a
// menos prioritaria. Una regla encaja si coincide país y región, si coincide el
// país y la regla no fija región, o si la regla es global (sin país).
// Sin país en el documento no se resuelve nada.
func (r *ZoneResolver) Resolve(countryCode, regionCode string) []entity.TaxZone {
	if countryCode == "" {
		return nil
	}
	var matched []entity.TaxZone
	for _, rule := range r.rules {
		if zoneSpecificity(rule, countryCode, regionCode) >= 0 {
			matched = append(matched, rule)
		}
	}
	// Prioridad descendente; a igual prioridad gana la regla más específica
	// (región > país > global). Orden estable para no reordenar empates.
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority > matched[j].Priority
		}
		return zoneSpecificity(matched[i], countryCode, regionCode) >
			zoneSpecificity(matched[j], countryCode, regionCode)
	})
	return matched
}

// zoneSpecificity clasifica el encaje estructural de la regla:
// 2 = país+región, 1 = solo país, 0 = global, -1 = no encaja.
func zoneSpecificity(rule entity.TaxZone, countryCode, regionCode string) int {
	switch {
	case rule.CountryCode == countryCode && rule.RegionCode != "" && rule.RegionCode == regionCode:
		return 2
	case rule.CountryCode == countryCode && rule.RegionCode == "":
		return 1
	case rule.CountryCode == "":
		return 0
	default:
		return -1
	}
}

// firstZoneMatch busca la primera regla cuyo impuesto de origen coincide con el
// código de la línea y cuyo impuesto destino existe.
func firstZoneMatch(rules []entity.TaxZone, taxCode string, taxOf func(string) *entity.Tax) *entity.Tax {
	if taxCode == "" {
		return nil
	}
	for _, rule := range rules {
		if rule.TaxCode != taxCode {
			continue
		}
		if target := taxOf(rule.TargetTaxCode); target != nil {
			return target
		}
	}
	return nil
}
