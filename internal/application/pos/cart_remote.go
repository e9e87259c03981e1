package pos

import (
	"context"
	"fmt"
	"sync"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

// RemoteOrderCart carrito respaldado por un pedido en el servidor. Cada
// mutación es una petición al servicio de pedidos seguida de un refetch
// completo del pedido antes de reflejar el cambio: no hay actualización
// optimista ni tope local de stock, el servidor es autoritativo.
//
// Las mutaciones sobre un mismo pedido se serializan con el mutex: una
// mutación (incluido su refetch) debe completar antes de emitir la siguiente,
// para no aplicar un refetch viejo sobre una intención más nueva.
type RemoteOrderCart struct {
	mu      sync.Mutex
	svc     OrderService
	orderID string
	lines   []entity.CartLine
}

// NewRemoteOrderCart construye la proyección del pedido y la carga del servidor.
func NewRemoteOrderCart(ctx context.Context, svc OrderService, orderID string) (*RemoteOrderCart, error) {
	c := &RemoteOrderCart{svc: svc, orderID: orderID}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refetch(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// OrderID identidad del pedido proyectado.
func (c *RemoteOrderCart) OrderID() string {
	return c.orderID
}

// AddLine suma una unidad: crea el ítem en el pedido o incrementa la cantidad
// del ítem existente, y refetchea.
func (c *RemoteOrderCart) AddLine(ctx context.Context, product entity.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line := c.find(product.ID); line != nil {
		if err := c.svc.UpdateItemQuantity(ctx, c.orderID, line.LineID, line.Quantity+1); err != nil {
			return fmt.Errorf("incrementar ítem del pedido %s: %w", c.orderID, err)
		}
		return c.refetch(ctx)
	}

	saleProduct := entity.SaleProduct{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price.Amount,
		Brand:     product.Brand,
		BrandName: product.BrandName,
	}
	if err := c.svc.AddItem(ctx, c.orderID, saleProduct, 1, product.Price.Amount); err != nil {
		return fmt.Errorf("agregar ítem al pedido %s: %w", c.orderID, err)
	}
	return c.refetch(ctx)
}

// ChangeQuantity aplica delta con piso en 0. Llegar a 0 emite un DELETE del
// ítem, nunca un update con cantidad 0. Sin efecto si la línea no existe.
func (c *RemoteOrderCart) ChangeQuantity(ctx context.Context, productID string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := c.find(productID)
	if line == nil {
		return nil
	}
	next := line.Quantity + delta
	if next <= 0 {
		if err := c.svc.DeleteItem(ctx, c.orderID, line.LineID); err != nil {
			return fmt.Errorf("eliminar ítem del pedido %s: %w", c.orderID, err)
		}
	} else {
		if err := c.svc.UpdateItemQuantity(ctx, c.orderID, line.LineID, next); err != nil {
			return fmt.Errorf("actualizar cantidad en pedido %s: %w", c.orderID, err)
		}
	}
	return c.refetch(ctx)
}

// RemoveLine elimina la línea incondicionalmente. Idempotente: si la línea ya
// no está en la proyección no se emite petición.
func (c *RemoteOrderCart) RemoveLine(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := c.find(productID)
	if line == nil {
		return nil
	}
	if err := c.svc.DeleteItem(ctx, c.orderID, line.LineID); err != nil {
		return fmt.Errorf("eliminar ítem del pedido %s: %w", c.orderID, err)
	}
	return c.refetch(ctx)
}

// Lines devuelve una copia de las líneas en el orden devuelto por el servidor.
func (c *RemoteOrderCart) Lines() []entity.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear no-op: el pedido vive en el servidor y no hay autoridad local para
// vaciarlo.
func (c *RemoteOrderCart) Clear(_ context.Context) error {
	return nil
}

// Summary totales derivados de la proyección actual.
func (c *RemoteOrderCart) Summary() entity.TransactionSummary {
	return Summarize(c.Lines())
}

// Refresh recarga la proyección desde el servidor (reintento tras un error).
func (c *RemoteOrderCart) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refetch(ctx)
}

// find busca la línea por producto. Solo bajo c.mu.
func (c *RemoteOrderCart) find(productID string) *entity.CartLine {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return &c.lines[i]
		}
	}
	return nil
}

// refetch recarga el pedido completo y reconstruye la proyección. Si falla, la
// proyección anterior queda intacta y el caller decide reintentar. Solo bajo c.mu.
func (c *RemoteOrderCart) refetch(ctx context.Context) error {
	order, err := c.svc.GetOrder(ctx, c.orderID)
	if err != nil {
		return fmt.Errorf("refetch del pedido %s: %w", c.orderID, err)
	}
	lines := make([]entity.CartLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, entity.CartLine{
			ProductID:         item.ProductID,
			Name:              item.ProductName,
			UnitPrice:         item.UnitPrice,
			Quantity:          item.Quantity,
			Subtotal:          entity.LineSubtotal(item.Quantity, item.UnitPrice),
			Brand:             item.Brand,
			BrandName:         item.BrandName,
			LineID:            item.ID,
			FulfillmentStatus: item.FulfillmentStatus,
		})
	}
	c.lines = lines
	return nil
}
