package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/application/pos"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

// ListingPage una página de catálogo cacheada.
type ListingPage struct {
	Items      []entity.Product  `json:"items"`
	Pagination entity.Pagination `json:"pagination"`
}

// CatalogCache caché de páginas de catálogo. Un fallo de caché nunca es un
// fallo de listado: se degrada a ir directo al servicio.
type CatalogCache interface {
	Get(ctx context.Context, key string) (*ListingPage, bool, error)
	Set(ctx context.Context, key string, page *ListingPage, ttl time.Duration) error
}

// NoopCatalogCache caché desactivada (Redis sin configurar).
type NoopCatalogCache struct{}

func (NoopCatalogCache) Get(_ context.Context, _ string) (*ListingPage, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) Set(_ context.Context, _ string, _ *ListingPage, _ time.Duration) error {
	return nil
}

// CachedCatalogService decora un pos.CatalogService con lectura a través de la
// caché. Los errores del servicio se propagan sin cachear (el listado anterior
// del navegador queda intacto).
type CachedCatalogService struct {
	next  pos.CatalogService
	cache CatalogCache
	ttl   time.Duration
}

// NewCachedCatalogService construye el decorador.
func NewCachedCatalogService(next pos.CatalogService, c CatalogCache, ttl time.Duration) *CachedCatalogService {
	return &CachedCatalogService{next: next, cache: c, ttl: ttl}
}

// ListProducts sirve desde caché cuando hay hit; si no, consulta el servicio y
// guarda la página.
func (s *CachedCatalogService) ListProducts(ctx context.Context, filters entity.ProductFilters, page, perPage int) ([]entity.Product, entity.Pagination, error) {
	key := listingKey(filters, page, perPage)
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return cached.Items, cached.Pagination, nil
	}

	items, pagination, err := s.next.ListProducts(ctx, filters, page, perPage)
	if err != nil {
		return nil, entity.Pagination{}, err
	}
	_ = s.cache.Set(ctx, key, &ListingPage{Items: items, Pagination: pagination}, s.ttl)
	return items, pagination, nil
}

// listingKey clave estable por combinación de filtros y página.
func listingKey(filters entity.ProductFilters, page, perPage int) string {
	return fmt.Sprintf("catalog:%s|%s|%s|p%d|pp%d", filters.Name, filters.SKU, filters.Brand, page, perPage)
}
