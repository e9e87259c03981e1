package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

// SessionResponse sesión de caja recién abierta.
type SessionResponse struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartResponse líneas del carrito con sus totales derivados.
type CartResponse struct {
	Lines   []entity.CartLine         `json:"lines"`
	Summary entity.TransactionSummary `json:"summary"`
}

// NoticeResponse aviso transitorio visible.
type NoticeResponse struct {
	Message string    `json:"message"`
	Code    string    `json:"code"`
	ShownAt time.Time `json:"shownAt"`
}

// SessionStateResponse estado completo de la pantalla de venta.
type SessionStateResponse struct {
	SessionID   string          `json:"sessionId"`
	Cart        CartResponse    `json:"cart"`
	Payment     PaymentResponse `json:"payment"`
	SettleState string          `json:"settleState"`
	LastError   string          `json:"lastError,omitempty"`
	Notice      *NoticeResponse `json:"notice,omitempty"`
}

// AddLineRequest alta de línea desde el catálogo cargado.
type AddLineRequest struct {
	ProductID string `json:"productId"`
}

// ChangeQuantityRequest delta de cantidad sobre una línea (típicamente ±1).
type ChangeQuantityRequest struct {
	Delta int `json:"delta"`
}

// PaymentRequest estado del diálogo de cobro. Los campos nil no se tocan.
type PaymentRequest struct {
	Method         string           `json:"method,omitempty"`
	Reference      *string          `json:"reference,omitempty"`
	AmountReceived *decimal.Decimal `json:"amountReceived,omitempty"`
}

// PaymentResponse estado vigente del cobro; Change solo viene cuando el método
// es CASH y lo recibido cubre el total.
type PaymentResponse struct {
	Method         string           `json:"method"`
	Reference      string           `json:"reference,omitempty"`
	AmountReceived *decimal.Decimal `json:"amountReceived,omitempty"`
	Change         *decimal.Decimal `json:"change,omitempty"`
}

// CheckoutResponse venta liquidada.
type CheckoutResponse struct {
	Code   string           `json:"code"`
	Change *decimal.Decimal `json:"change,omitempty"`
}

// OrderAddLineRequest alta de línea en el carrito de un pedido.
type OrderAddLineRequest struct {
	Product entity.Product `json:"product"`
}

// OrderCheckoutRequest cobro de un pedido: el diálogo se abre fresco con cada
// petición.
type OrderCheckoutRequest struct {
	Method         string           `json:"method"`
	Reference      string           `json:"reference,omitempty"`
	AmountReceived *decimal.Decimal `json:"amountReceived,omitempty"`
}
