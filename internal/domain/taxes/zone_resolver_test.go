package taxes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
	"github.com/tu-usuario/facturacion-pro/internal/domain/taxes"
)

func testZoneRules() []entity.TaxZone {
	return []entity.TaxZone{
		{ID: "1", TaxCode: "IVA21", TargetTaxCode: "IGIC7", CountryCode: "ES", RegionCode: "Canarias", Priority: 10},
		{ID: "2", TaxCode: "IVA21", TargetTaxCode: "IVA21", CountryCode: "ES", Priority: 5},
		{ID: "3", TaxCode: "IVA21", TargetTaxCode: "EXPORT0", Priority: 1}, // regla global
		{ID: "4", TaxCode: "IVA10", TargetTaxCode: "IGIC3", CountryCode: "ES", RegionCode: "Canarias", Priority: 10},
	}
}

// TestResolve_SinPais sin país en el documento no se resuelve ninguna regla.
func TestResolve_SinPais(t *testing.T) {
	r := taxes.NewZoneResolver(testZoneRules())
	assert.Empty(t, r.Resolve("", "Canarias"))
}

// TestResolve_RegionAntesQuePais a igual coincidencia, la regla con región gana
// a la de país completo y esta a la global.
func TestResolve_RegionAntesQuePais(t *testing.T) {
	r := taxes.NewZoneResolver(testZoneRules())

	rules := r.Resolve("ES", "Canarias")
	require.Len(t, rules, 4)
	assert.Equal(t, "1", rules[0].ID, "la regla región+país con prioridad 10 va primero")
}

// TestResolve_PaisSinRegion fuera de Canarias la regla regional no encaja.
func TestResolve_PaisSinRegion(t *testing.T) {
	r := taxes.NewZoneResolver(testZoneRules())

	rules := r.Resolve("ES", "Madrid")
	require.Len(t, rules, 2)
	assert.Equal(t, "2", rules[0].ID)
	assert.Equal(t, "3", rules[1].ID, "la regla global encaja en cualquier país")
}

// TestResolve_PaisExtranjero solo la regla global encaja para países sin reglas.
func TestResolve_PaisExtranjero(t *testing.T) {
	r := taxes.NewZoneResolver(testZoneRules())

	rules := r.Resolve("FR", "")
	require.Len(t, rules, 1)
	assert.Equal(t, "3", rules[0].ID)
}

// TestResolve_PrioridadDescendente la prioridad manda sobre la especificidad:
// una regla de país con prioridad mayor va antes que una regional con menor.
func TestResolve_PrioridadDescendente(t *testing.T) {
	r := taxes.NewZoneResolver([]entity.TaxZone{
		{ID: "baja", TaxCode: "IVA21", TargetTaxCode: "IGIC7", CountryCode: "ES", RegionCode: "Canarias", Priority: 1},
		{ID: "alta", TaxCode: "IVA21", TargetTaxCode: "IVA21", CountryCode: "ES", Priority: 9},
	})

	rules := r.Resolve("ES", "Canarias")
	require.Len(t, rules, 2)
	assert.Equal(t, "alta", rules[0].ID)
}
