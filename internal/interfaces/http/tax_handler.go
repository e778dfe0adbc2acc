package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturacion-pro/internal/application/billing"
	"github.com/tu-usuario/facturacion-pro/internal/application/dto"
)

// TaxHandler consultas de la tabla de impuestos (protegido).
type TaxHandler struct {
	uc *billing.TaxUseCase
}

// NewTaxHandler construye el handler.
func NewTaxHandler(uc *billing.TaxUseCase) *TaxHandler {
	return &TaxHandler{uc: uc}
}

// List devuelve todos los impuestos parametrizados.
// GET /api/taxes
func (h *TaxHandler) List(c *fiber.Ctx) error {
	taxes, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(taxes)
}
