package pos_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// dec parsea un decimal o revienta el test.
func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// eqDec compara decimales por valor (no por representación).
func eqDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	w, err := decimal.NewFromString(want)
	require.NoError(t, err)
	require.True(t, w.Equal(got), "se esperaba %s, se obtuvo %s", want, got.String())
}

// producto arma un Product de catálogo con stock y precio dados.
func producto(t *testing.T, id, name, price string, stock int) entity.Product {
	t.Helper()
	return entity.Product{
		ID:    id,
		Name:  name,
		SKU:   "SKU-" + id,
		Brand: "B1",
		Stock: entity.Stock{Current: stock, Minimum: 1},
		Price: entity.Price{Amount: dec(t, price), Currency: "PEN", Label: "S/ " + price},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos (inyectados donde el binario usa los clientes REST)
// ──────────────────────────────────────────────────────────────────────────────

type listCall struct {
	filters entity.ProductFilters
	page    int
	perPage int
}

// fakeCatalog catálogo en memoria que registra cada listado.
type fakeCatalog struct {
	mu         sync.Mutex
	products   []entity.Product
	pagination entity.Pagination
	err        error
	calls      []listCall
}

func (f *fakeCatalog) ListProducts(_ context.Context, filters entity.ProductFilters, page, perPage int) ([]entity.Product, entity.Pagination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, listCall{filters: filters, page: page, perPage: perPage})
	if f.err != nil {
		return nil, entity.Pagination{}, f.err
	}
	return f.products, f.pagination, nil
}

func (f *fakeCatalog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeCatalog) lastCall() listCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

// fakeTx servicio de transacciones. Con block no-nil, CreateSale espera a que
// el test lo libere (para probar la guarda anti doble-envío).
type fakeTx struct {
	mu      sync.Mutex
	code    string
	err     error
	calls   int
	lastReq entity.SaleRequest

	started chan struct{}
	block   chan struct{}
}

func (f *fakeTx) CreateSale(_ context.Context, req entity.SaleRequest) (string, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	started, block := f.started, f.block
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if block != nil {
		<-block
	}
	if f.err != nil {
		return "", f.err
	}
	return f.code, nil
}

func (f *fakeTx) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeOrders servicio de pedidos en memoria. Registra las operaciones en orden
// ("get", "add:P1", "update:IT-1:3", "delete:IT-1") y permite forzar el fallo
// de la próxima mutación.
type fakeOrders struct {
	mu       sync.Mutex
	order    entity.Order
	nextID   int
	ops      []string
	failNext error
}

func newFakeOrders(orderID string, items ...entity.OrderItem) *fakeOrders {
	return &fakeOrders{
		order:  entity.Order{ID: orderID, Code: "PED-" + orderID, Status: "open", Items: items},
		nextID: 100,
	}
}

func (f *fakeOrders) GetOrder(_ context.Context, orderID string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "get")
	if orderID != f.order.ID {
		return nil, fmt.Errorf("pedido %s no existe", orderID)
	}
	out := f.order
	out.Items = make([]entity.OrderItem, len(f.order.Items))
	copy(out.Items, f.order.Items)
	return &out, nil
}

func (f *fakeOrders) AddItem(_ context.Context, orderID string, product entity.SaleProduct, quantity int, unitPrice decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "add:"+product.ID)
	if err := f.takeFailure(); err != nil {
		return err
	}
	f.nextID++
	f.order.Items = append(f.order.Items, entity.OrderItem{
		ID:                fmt.Sprintf("IT-%d", f.nextID),
		ProductID:         product.ID,
		ProductName:       product.Name,
		Brand:             product.Brand,
		BrandName:         product.BrandName,
		UnitPrice:         unitPrice,
		Quantity:          quantity,
		FulfillmentStatus: entity.FulfillmentPending,
	})
	return nil
}

func (f *fakeOrders) UpdateItemQuantity(_ context.Context, _ string, itemID string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, fmt.Sprintf("update:%s:%d", itemID, quantity))
	if err := f.takeFailure(); err != nil {
		return err
	}
	for i := range f.order.Items {
		if f.order.Items[i].ID == itemID {
			f.order.Items[i].Quantity = quantity
			return nil
		}
	}
	return fmt.Errorf("ítem %s no existe", itemID)
}

func (f *fakeOrders) DeleteItem(_ context.Context, _ string, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "delete:"+itemID)
	if err := f.takeFailure(); err != nil {
		return err
	}
	for i := range f.order.Items {
		if f.order.Items[i].ID == itemID {
			f.order.Items = append(f.order.Items[:i], f.order.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

// takeFailure consume el fallo programado. Solo bajo f.mu.
func (f *fakeOrders) takeFailure() error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	return nil
}

func (f *fakeOrders) operations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.ops))
	copy(out, f.ops)
	return out
}
