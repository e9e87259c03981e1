package entity

import "github.com/shopspring/decimal"

// OrderItem una línea de un pedido tal como la devuelve el servicio de pedidos.
type OrderItem struct {
	ID                string          `json:"id"` // identidad asignada por el servidor
	ProductID         string          `json:"productId"`
	ProductName       string          `json:"productName"`
	Brand             string          `json:"brand,omitempty"`
	BrandName         string          `json:"brandName,omitempty"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	Quantity          int             `json:"quantity"`
	FulfillmentStatus string          `json:"fulfillmentStatus"` // pending | dispatched | cancelled
}

// Order pedido remoto completo. Este servicio nunca lo persiste: es la fuente
// de verdad del carrito en modo pedido y se refetchea tras cada mutación.
type Order struct {
	ID     string      `json:"id"`
	Code   string      `json:"code"`
	Status string      `json:"status"`
	Items  []OrderItem `json:"items"`
}
