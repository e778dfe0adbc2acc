package billing

import (
	"context"

	"github.com/tu-usuario/facturacion-pro/internal/domain/repository"
)

// CalcTxRunner ejecuta una función dentro de una transacción con el repositorio
// de documentos atado a ella. Un cálculo con guardado dentro del callback es
// atómico: el contrato booleano del motor no hace rollback por sí mismo.
type CalcTxRunner interface {
	RunCalculation(ctx context.Context, fn func(docRepo repository.DocumentRepository) error) error
}
