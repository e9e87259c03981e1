package entity

import "github.com/shopspring/decimal"

// TransactionSummary totales derivados de las líneas del carrito. Nunca se
// almacena: se recalcula en cada lectura.
type TransactionSummary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// SaleItem una línea del payload de creación de transacción.
type SaleItem struct {
	Product  SaleProduct `json:"product"`
	Quantity int         `json:"quantity"`
}

// SaleProduct datos mínimos del producto que viajan en la venta.
type SaleProduct struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Brand     string          `json:"brand,omitempty"`
	BrandName string          `json:"brandName,omitempty"`
}

// SaleRequest payload que se envía al servicio de transacciones al liquidar.
type SaleRequest struct {
	Items         []SaleItem `json:"items"`
	PaymentMethod string     `json:"paymentMethod"`
	Reference     string     `json:"reference,omitempty"`
}
