package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

// TransactionClient cliente REST del servicio de transacciones. Implementa
// pos.TransactionService.
type TransactionClient struct {
	*Client
}

// NewTransactionClient construye el cliente de transacciones.
func NewTransactionClient(base *Client) *TransactionClient {
	return &TransactionClient{Client: base}
}

// createSaleResponse envelope de la creación de transacción.
type createSaleResponse struct {
	Transaction struct {
		Code string `json:"code"`
	} `json:"transaction"`
}

// CreateSale registra la venta y devuelve el código de transacción.
func (c *TransactionClient) CreateSale(ctx context.Context, req entity.SaleRequest) (string, error) {
	var out createSaleResponse
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, req, &out); err != nil {
		return "", err
	}
	if out.Transaction.Code == "" {
		return "", fmt.Errorf("respuesta de transacción sin código")
	}
	return out.Transaction.Code, nil
}
