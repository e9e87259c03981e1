package pos

import (
	"github.com/shopspring/decimal"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

// taxRate IGV fijo (18%) aplicado al subtotal antes de impuestos.
var taxRate = decimal.NewFromFloat(0.18)

// Summarize calcula los totales de la venta a partir de las líneas del carrito.
// Función pura, determinista e independiente del orden de las líneas.
//
// Las tres cifras se redondean a 2 decimales de forma independiente: el total
// sale de subtotal + impuesto SIN redondear, no de sumar las cifras ya
// redondeadas. Es el comportamiento histórico de caja y se conserva tal cual.
func Summarize(lines []entity.CartLine) entity.TransactionSummary {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal)
	}
	subtotal = subtotal.Round(2)
	rawTax := subtotal.Mul(taxRate)
	return entity.TransactionSummary{
		Subtotal: subtotal,
		Tax:      rawTax.Round(2),
		Total:    subtotal.Add(rawTax).Round(2),
	}
}
