package pos

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

// CatalogService puerto de salida hacia el servicio de catálogo.
// La implementación concreta es un cliente REST; para tests se inyecta un fake.
type CatalogService interface {
	// ListProducts lista productos paginados con filtros opcionales.
	ListProducts(ctx context.Context, filters entity.ProductFilters, page, perPage int) ([]entity.Product, entity.Pagination, error)
}

// TransactionService puerto de salida hacia el servicio de transacciones.
type TransactionService interface {
	// CreateSale registra la venta y devuelve el código de transacción
	// (ej. "V-0001"), ancla del aviso de éxito y de la impresión del ticket.
	CreateSale(ctx context.Context, req entity.SaleRequest) (string, error)
}

// OrderService puerto de salida hacia el servicio de pedidos. Cada mutación se
// resuelve refetcheando el pedido completo con GetOrder; las operaciones de
// escritura no devuelven estado.
type OrderService interface {
	GetOrder(ctx context.Context, orderID string) (*entity.Order, error)
	AddItem(ctx context.Context, orderID string, product entity.SaleProduct, quantity int, unitPrice decimal.Decimal) error
	UpdateItemQuantity(ctx context.Context, orderID, itemID string, quantity int) error
	DeleteItem(ctx context.Context, orderID, itemID string) error
}
