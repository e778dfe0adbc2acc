package taxes

import "github.com/tu-usuario/facturacion-pro/internal/domain/entity"

// HookResult resultado tipado de un hook: seguir con la cadena o cortarla.
type HookResult int

const (
	Continue HookResult = iota
	Stop
)

// Hook punto de extensión del motor. Se invoca en cinco momentos del cálculo;
// devolver Stop corta la cadena solo para ese momento (los siguientes momentos
// del cálculo siguen ejecutándose). Un fallo dentro de un hook y un Stop
// voluntario son indistinguibles para el motor: ambos son el mismo corte.
type Hook interface {
	OnClear(doc Document, lines []*entity.DocumentLine) HookResult
	OnApply(doc Document, lines []*entity.DocumentLine) HookResult
	OnCalculateLine(doc Document, line *entity.DocumentLine) HookResult
	OnGetSubtotals(doc Document, st *Subtotals) HookResult
	OnFinal(doc Document, lines []*entity.DocumentLine) HookResult
}

// BaseHook implementación vacía para embeber: un hook concreto solo
// sobrescribe los momentos que le interesan.
type BaseHook struct{}

func (BaseHook) OnClear(Document, []*entity.DocumentLine) HookResult       { return Continue }
func (BaseHook) OnApply(Document, []*entity.DocumentLine) HookResult       { return Continue }
func (BaseHook) OnCalculateLine(Document, *entity.DocumentLine) HookResult { return Continue }
func (BaseHook) OnGetSubtotals(Document, *Subtotals) HookResult            { return Continue }
func (BaseHook) OnFinal(Document, []*entity.DocumentLine) HookResult       { return Continue }
