package pos

import (
	"context"
	"fmt"
	"sync"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

// Estados de carga del listado de catálogo.
const (
	LoadIdle    = "idle"
	LoadLoading = "loading"
	LoadOK      = "ok"
	LoadError   = "error"
)

// defaultPerPage tamaño de página del catálogo en caja.
const defaultPerPage = 10

// CatalogSnapshot estado observable del navegador de catálogo.
type CatalogSnapshot struct {
	LoadState  string                `json:"loadState"`
	Items      []entity.Product      `json:"items"`
	Pagination entity.Pagination     `json:"pagination"`
	Page       int                   `json:"page"`
	Filters    entity.ProductFilters `json:"filters"`
}

// CatalogBrowser listado paginado y filtrable de productos con su propia
// máquina de carga (idle → loading → ok|error). Los filtros se aplican solo al
// ejecutar la búsqueda, no por tecla. Alimenta el carrito vía Select.
//
// Los resultados se aplican según van llegando (last-write-wins): no hay
// chequeo de generación de petición ni cancelación. Una búsqueda que supera a
// otra simplemente sobreescribe el resultado anterior al resolverse.
type CatalogBrowser struct {
	mu      sync.Mutex
	svc     CatalogService
	cart    Cart
	perPage int

	state      string
	items      []entity.Product
	pagination entity.Pagination
	page       int
	filters    entity.ProductFilters
}

// NewCatalogBrowser crea el navegador; perPage <= 0 usa el tamaño por defecto.
func NewCatalogBrowser(svc CatalogService, cart Cart, perPage int) *CatalogBrowser {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return &CatalogBrowser{
		svc:     svc,
		cart:    cart,
		perPage: perPage,
		state:   LoadIdle,
		page:    1,
	}
}

// Search ejecuta el listado para la página y filtros dados. En éxito reemplaza
// items y paginación (estado ok); en fallo pasa a error dejando el listado
// anterior visible para no destruir una vista usable por un error transitorio.
func (b *CatalogBrowser) Search(ctx context.Context, page int, filters entity.ProductFilters) error {
	if page < 1 {
		page = 1
	}
	b.mu.Lock()
	b.state = LoadLoading
	b.page = page
	b.filters = filters
	perPage := b.perPage
	b.mu.Unlock()

	items, pagination, err := b.svc.ListProducts(ctx, filters, page, perPage)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.state = LoadError // items intactos
		return fmt.Errorf("listar catálogo: %w", err)
	}
	b.items = items
	b.pagination = pagination
	b.state = LoadOK
	return nil
}

// Refresh re-emite la búsqueda con la página y filtros vigentes (tras liquidar
// una venta, o al reactivar la pestaña).
func (b *CatalogBrowser) Refresh(ctx context.Context) error {
	b.mu.Lock()
	page, filters := b.page, b.filters
	b.mu.Unlock()
	return b.Search(ctx, page, filters)
}

// Select busca el producto entre los items cargados y lo agrega al carrito.
func (b *CatalogBrowser) Select(ctx context.Context, productID string) error {
	b.mu.Lock()
	var product *entity.Product
	for i := range b.items {
		if b.items[i].ID == productID {
			p := b.items[i]
			product = &p
			break
		}
	}
	b.mu.Unlock()

	if product == nil {
		return domain.ErrNotFound
	}
	return b.cart.AddLine(ctx, *product)
}

// Snapshot copia del estado observable para la capa HTTP.
func (b *CatalogBrowser) Snapshot() CatalogSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := make([]entity.Product, len(b.items))
	copy(items, b.items)
	return CatalogSnapshot{
		LoadState:  b.state,
		Items:      items,
		Pagination: b.pagination,
		Page:       b.page,
		Filters:    b.filters,
	}
}
