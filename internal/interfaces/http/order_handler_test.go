package http_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/application/dto"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

func pedidoAbierto(t *testing.T) *stubOrders {
	t.Helper()
	price, err := decimal.NewFromString("4.50")
	require.NoError(t, err)
	return &stubOrders{
		order: entity.Order{
			ID:     "ORD-1",
			Code:   "PED-ORD-1",
			Status: "open",
			Items: []entity.OrderItem{{
				ID:          "IT-0",
				ProductID:   "P7",
				ProductName: "Galleta",
				UnitPrice:   price,
				Quantity:    2,
			}},
		},
	}
}

func TestOrderHandler_ProyeccionDelPedido(t *testing.T) {
	app := appDeCaja(t, &stubCatalog{}, &stubTx{code: "V-1"}, pedidoAbierto(t))

	resp := pedir(t, app, http.MethodGet, "/api/orders/ORD-1/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart dto.CartResponse
	decodificar(t, resp, &cart)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "P7", cart.Lines[0].ProductID)
	eqMonto(t, "9.00", cart.Summary.Subtotal)
}

func TestOrderHandler_PedidoInexistente(t *testing.T) {
	app := appDeCaja(t, &stubCatalog{}, &stubTx{code: "V-1"}, pedidoAbierto(t))

	resp := pedir(t, app, http.MethodGet, "/api/orders/ORD-404/cart", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderHandler_AgregarYLuegoEliminarPorDelta(t *testing.T) {
	orders := pedidoAbierto(t)
	app := appDeCaja(t, &stubCatalog{}, &stubTx{code: "V-1"}, orders)

	// Agregar un producto nuevo: se persiste en el pedido y se refetchea.
	resp := pedir(t, app, http.MethodPost, "/api/orders/ORD-1/cart/lines", dto.OrderAddLineRequest{Product: gaseosa(t)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart dto.CartResponse
	decodificar(t, resp, &cart)
	require.Len(t, cart.Lines, 2)

	// Bajar la línea original a 0: desaparece del pedido en el servidor.
	resp = pedir(t, app, http.MethodPatch, "/api/orders/ORD-1/cart/lines/P7", dto.ChangeQuantityRequest{Delta: -2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodificar(t, resp, &cart)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "P1", cart.Lines[0].ProductID)
	orders.mu.Lock()
	assert.Len(t, orders.order.Items, 1)
	orders.mu.Unlock()
}

func TestOrderHandler_QuitarLinea(t *testing.T) {
	app := appDeCaja(t, &stubCatalog{}, &stubTx{code: "V-1"}, pedidoAbierto(t))

	resp := pedir(t, app, http.MethodDelete, "/api/orders/ORD-1/cart/lines/P7", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart dto.CartResponse
	decodificar(t, resp, &cart)
	assert.Empty(t, cart.Lines)
}

func TestOrderHandler_CheckoutDelPedido(t *testing.T) {
	orders := pedidoAbierto(t)
	app := appDeCaja(t, &stubCatalog{}, &stubTx{code: "V-0100"}, orders)

	received, err := decimal.NewFromString("20.00")
	require.NoError(t, err)
	resp := pedir(t, app, http.MethodPost, "/api/orders/ORD-1/cart/checkout", dto.OrderCheckoutRequest{
		Method:         entity.PayCash,
		AmountReceived: &received,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var done dto.CheckoutResponse
	decodificar(t, resp, &done)
	assert.Equal(t, "V-0100", done.Code)
	// Total 9.00 + IGV 1.62 = 10.62; vuelto 9.38.
	require.NotNil(t, done.Change)
	eqMonto(t, "9.38", *done.Change)
}

func TestOrderHandler_CheckoutRechazado(t *testing.T) {
	app := appDeCaja(t, &stubCatalog{}, &stubTx{err: &domain.RejectionError{Message: "Pedido ya facturado"}}, pedidoAbierto(t))

	resp := pedir(t, app, http.MethodPost, "/api/orders/ORD-1/cart/checkout", dto.OrderCheckoutRequest{Method: entity.PayCash})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var fail dto.ErrorResponse
	decodificar(t, resp, &fail)
	assert.Equal(t, "SALE_ERROR", fail.Code)
	assert.Equal(t, "Pedido ya facturado", fail.Message)
}

func TestOrderHandler_MetodoDePagoInvalidoEnCheckout(t *testing.T) {
	app := appDeCaja(t, &stubCatalog{}, &stubTx{code: "V-1"}, pedidoAbierto(t))

	resp := pedir(t, app, http.MethodPost, "/api/orders/ORD-1/cart/checkout", dto.OrderCheckoutRequest{Method: "CHEQUE"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
