package entity

// Tipos de serie de facturación.
const (
	SerieKindNormal     = "normal"
	SerieKindRectifying = "rectificativa" // abonos y correcciones
)

// Serie representa una serie de numeración de documentos comerciales.
type Serie struct {
	Code        string
	Description string
	TaxFree     bool   // serie sin impuestos (fuerza exención en todas las líneas)
	Kind        string // SerieKindNormal | SerieKindRectifying
}

// IsRectifying indica si la serie es de documentos rectificativos.
func (s *Serie) IsRectifying() bool {
	return s != nil && s.Kind == SerieKindRectifying
}
