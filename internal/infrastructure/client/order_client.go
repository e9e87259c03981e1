package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

// OrderClient cliente REST del servicio de pedidos. Implementa pos.OrderService.
// Las mutaciones no devuelven estado: el caller refetchea el pedido con
// GetOrder antes de reflejar el cambio.
type OrderClient struct {
	*Client
}

// NewOrderClient construye el cliente de pedidos.
func NewOrderClient(base *Client) *OrderClient {
	return &OrderClient{Client: base}
}

// getOrderResponse envelope del pedido completo.
type getOrderResponse struct {
	Data entity.Order `json:"data"`
}

// GetOrder obtiene el pedido completo, incluidas sus líneas en orden del servidor.
func (c *OrderClient) GetOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	var out getOrderResponse
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// addItemRequest payload de alta de ítem en un pedido.
type addItemRequest struct {
	Product   entity.SaleProduct `json:"product"`
	Quantity  int                `json:"quantity"`
	UnitPrice decimal.Decimal    `json:"unitPrice"`
}

// AddItem agrega un ítem al pedido.
func (c *OrderClient) AddItem(ctx context.Context, orderID string, product entity.SaleProduct, quantity int, unitPrice decimal.Decimal) error {
	body := addItemRequest{Product: product, Quantity: quantity, UnitPrice: unitPrice}
	return c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(orderID)+"/items", nil, body, nil)
}

// updateItemRequest payload de cambio de cantidad.
type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItemQuantity fija la cantidad de un ítem existente (siempre > 0; el
// borrado va por DeleteItem).
func (c *OrderClient) UpdateItemQuantity(ctx context.Context, orderID, itemID string, quantity int) error {
	path := "/orders/" + url.PathEscape(orderID) + "/items/" + url.PathEscape(itemID)
	return c.do(ctx, http.MethodPatch, path, nil, updateItemRequest{Quantity: quantity}, nil)
}

// DeleteItem elimina un ítem del pedido.
func (c *OrderClient) DeleteItem(ctx context.Context, orderID, itemID string) error {
	path := "/orders/" + url.PathEscape(orderID) + "/items/" + url.PathEscape(itemID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
