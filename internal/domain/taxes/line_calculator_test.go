package taxes_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/facturacion-pro/internal/domain/entity"
	"github.com/tu-usuario/facturacion-pro/internal/domain/taxes"
)

// assertDecimal compara por valor numérico (ignora el exponente interno de decimal).
func assertDecimal(t *testing.T, expected string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	assert.True(t, want.Equal(got), "esperado %s, obtenido %s — %v", expected, got.String(), msgAndArgs)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// TestCalculateLine_DescuentosCompuestos valida que los dos descuentos de línea
// son secuenciales (compuestos), no aditivos: 10*100 con 10% y 5% da 855.00,
// no 850 (que sería el resultado de sumar los descuentos).
func TestCalculateLine_DescuentosCompuestos(t *testing.T) {
	line := &entity.DocumentLine{
		Quantity:  dec("10"),
		UnitPrice: dec("100"),
		Discount1: dec("10"),
		Discount2: dec("5"),
	}

	taxes.CalculateLine(line)

	assertDecimal(t, "1000", line.SubtotalBeforeDiscount)
	assertDecimal(t, "855", line.Subtotal, "10*100*0.9*0.95 = 855, compuesto y no aditivo")
}

// TestCalculateLine_SinDescuentos sin descuentos el subtotal es cantidad*precio.
func TestCalculateLine_SinDescuentos(t *testing.T) {
	line := &entity.DocumentLine{Quantity: dec("3"), UnitPrice: dec("19.99")}

	taxes.CalculateLine(line)

	assertDecimal(t, "59.97", line.SubtotalBeforeDiscount)
	assertDecimal(t, "59.97", line.Subtotal)
}

// TestCalculateLine_CantidadesNegativas cantidades negativas (abonos) se
// propagan aritméticamente, sin condición de error.
func TestCalculateLine_CantidadesNegativas(t *testing.T) {
	line := &entity.DocumentLine{
		Quantity:  dec("-2"),
		UnitPrice: dec("50"),
		Discount1: dec("10"),
	}

	taxes.CalculateLine(line)

	assertDecimal(t, "-100", line.SubtotalBeforeDiscount)
	assertDecimal(t, "-90", line.Subtotal)
}

// TestCalculateLine_Determinista recalcular dos veces no acumula nada.
func TestCalculateLine_Determinista(t *testing.T) {
	line := &entity.DocumentLine{Quantity: dec("10"), UnitPrice: dec("100"), Discount1: dec("10"), Discount2: dec("5")}

	taxes.CalculateLine(line)
	first := line.Subtotal
	taxes.CalculateLine(line)

	assert.True(t, first.Equal(line.Subtotal), "el recálculo debe ser idempotente")
}
