package entity

import "github.com/shopspring/decimal"

// Estados de atención de una línea de pedido remoto.
const (
	FulfillmentPending    = "pending"
	FulfillmentDispatched = "dispatched"
	FulfillmentCancelled  = "cancelled"
)

// CartLine una línea del carrito: un producto con cantidad agregada y subtotal
// calculado. Invariantes: Quantity > 0 mientras la línea exista (una línea que
// llega a 0 se elimina, nunca se guarda en 0) y Subtotal == round2(Quantity *
// UnitPrice). ProductID es único dentro de un carrito.
type CartLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Brand     string          `json:"brand,omitempty"`
	BrandName string          `json:"brandName,omitempty"`

	// Solo cuando el carrito proyecta un pedido remoto.
	LineID            string `json:"lineId,omitempty"`            // identidad asignada por el servidor
	FulfillmentStatus string `json:"fulfillmentStatus,omitempty"` // pending | dispatched | cancelled
}

// LineSubtotal calcula el subtotal de una línea: round2(cantidad * precio unitario).
func LineSubtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
