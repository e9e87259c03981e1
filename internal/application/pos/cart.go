package pos

import (
	"context"
	"sync"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

// Cart contrato único del carrito de caja. Dos estrategias lo implementan:
//
//   - LocalCart: el estado vive en el cliente hasta la liquidación atómica
//     (pantalla de venta directa).
//   - RemoteOrderCart: el carrito es una proyección viva de un pedido en el
//     servidor; cada mutación se persiste de inmediato (pantalla de pedido).
//
// La UI de cobro y la lógica de totales/liquidación se escriben una sola vez
// contra este contrato.
type Cart interface {
	// AddLine suma una unidad del producto: si ya existe una línea para
	// product.ID incrementa su cantidad, si no inserta una línea con cantidad 1.
	AddLine(ctx context.Context, product entity.Product) error
	// ChangeQuantity aplica delta (típicamente ±1) a la línea, con piso en 0;
	// un resultado de 0 elimina la línea. Sin efecto si la línea no existe.
	ChangeQuantity(ctx context.Context, productID string, delta int) error
	// RemoveLine elimina la línea incondicionalmente. Idempotente.
	RemoveLine(ctx context.Context, productID string) error
	// Lines devuelve las líneas: orden de inserción (local) u orden del
	// servidor (pedido remoto).
	Lines() []entity.CartLine
	// Clear vacía el carrito. Solo aplica en modo local; en modo pedido remoto
	// es un no-op porque el servidor es la fuente de verdad.
	Clear(ctx context.Context) error
	// Summary totales derivados (subtotal, IGV, total). Nunca se almacenan.
	Summary() entity.TransactionSummary
}

// LocalCart carrito en memoria para la venta directa. Todas las mutaciones son
// síncronas, optimistas y no pueden fallar; los métodos devuelven error solo
// para cumplir el contrato Cart.
//
// AddLine aplica un tope consultivo quantity ≤ stock.current. No se re-valida
// contra stock vivo antes de liquidar: esa carrera se tolera porque el backend
// vuelve a validar el stock al registrar la venta.
type LocalCart struct {
	mu    sync.Mutex
	lines []entity.CartLine
}

// NewLocalCart crea un carrito local vacío (al montar la pantalla de venta).
func NewLocalCart() *LocalCart {
	return &LocalCart{}
}

// AddLine incrementa o inserta la línea del producto. Silenciosamente no hace
// nada si el tope de stock consultivo ya se alcanzó.
func (c *LocalCart) AddLine(_ context.Context, product entity.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID != product.ID {
			continue
		}
		if c.lines[i].Quantity+1 > product.Stock.Current {
			return nil // tope consultivo: el botón de agregar no tiene efecto
		}
		c.lines[i].Quantity++
		c.lines[i].Subtotal = entity.LineSubtotal(c.lines[i].Quantity, c.lines[i].UnitPrice)
		return nil
	}

	if product.Stock.Current < 1 {
		return nil
	}
	c.lines = append(c.lines, entity.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price.Amount,
		Quantity:  1,
		Subtotal:  entity.LineSubtotal(1, product.Price.Amount),
		Brand:     product.Brand,
		BrandName: product.BrandName,
	})
	return nil
}

// ChangeQuantity aplica delta con piso en 0; en 0 la línea se elimina.
func (c *LocalCart) ChangeQuantity(_ context.Context, productID string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		next := c.lines[i].Quantity + delta
		if next <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
		c.lines[i].Quantity = next
		c.lines[i].Subtotal = entity.LineSubtotal(next, c.lines[i].UnitPrice)
		return nil
	}
	return nil // línea inexistente: sin efecto
}

// RemoveLine elimina la línea si existe; la segunda llamada es un no-op.
func (c *LocalCart) RemoveLine(_ context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return nil
}

// Lines devuelve una copia de las líneas en orden de inserción.
func (c *LocalCart) Lines() []entity.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear vacía el carrito (tras liquidar la venta con éxito).
func (c *LocalCart) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	return nil
}

// Summary totales derivados del carrito.
func (c *LocalCart) Summary() entity.TransactionSummary {
	return Summarize(c.Lines())
}
