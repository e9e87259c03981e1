package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/infrastructure/cache"
)

type memCache struct {
	mu    sync.Mutex
	pages map[string]*cache.ListingPage
	err   error
}

func newMemCache() *memCache {
	return &memCache{pages: make(map[string]*cache.ListingPage)}
}

func (m *memCache) Get(_ context.Context, key string) (*cache.ListingPage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, false, m.err
	}
	page, ok := m.pages[key]
	return page, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, page *cache.ListingPage, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.pages[key] = page
	return nil
}

type countingCatalog struct {
	mu    sync.Mutex
	items []entity.Product
	err   error
	calls int
}

func (s *countingCatalog) ListProducts(_ context.Context, _ entity.ProductFilters, page, perPage int) ([]entity.Product, entity.Pagination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, entity.Pagination{}, s.err
	}
	return s.items, entity.Pagination{Page: page, PerPage: perPage, Total: len(s.items), TotalPages: 1}, nil
}

func TestCachedCatalogService_SegundaLecturaSaleDeCache(t *testing.T) {
	ctx := context.Background()
	next := &countingCatalog{items: []entity.Product{{ID: "P1", Name: "Gaseosa"}}}
	svc := cache.NewCachedCatalogService(next, newMemCache(), time.Minute)

	items, _, err := svc.ListProducts(ctx, entity.ProductFilters{Name: "gas"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, _, err = svc.ListProducts(ctx, entity.ProductFilters{Name: "gas"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, next.calls)
}

func TestCachedCatalogService_ClaveDistintaPorFiltrosYPagina(t *testing.T) {
	ctx := context.Background()
	next := &countingCatalog{items: []entity.Product{{ID: "P1"}}}
	svc := cache.NewCachedCatalogService(next, newMemCache(), time.Minute)

	_, _, err := svc.ListProducts(ctx, entity.ProductFilters{Name: "gas"}, 1, 10)
	require.NoError(t, err)
	_, _, err = svc.ListProducts(ctx, entity.ProductFilters{Name: "gas"}, 2, 10)
	require.NoError(t, err)
	_, _, err = svc.ListProducts(ctx, entity.ProductFilters{Brand: "B1"}, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 3, next.calls)
}

func TestCachedCatalogService_ErrorDelServicioNoSeCachea(t *testing.T) {
	ctx := context.Background()
	next := &countingCatalog{err: errors.New("backend caído")}
	mem := newMemCache()
	svc := cache.NewCachedCatalogService(next, mem, time.Minute)

	_, _, err := svc.ListProducts(ctx, entity.ProductFilters{}, 1, 10)
	require.Error(t, err)
	assert.Empty(t, mem.pages)

	// El servicio se recupera: la siguiente lectura vuelve a consultarlo.
	next.mu.Lock()
	next.err = nil
	next.items = []entity.Product{{ID: "P1"}}
	next.mu.Unlock()

	items, _, err := svc.ListProducts(ctx, entity.ProductFilters{}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCachedCatalogService_CacheCaidaDegradaAlServicio(t *testing.T) {
	ctx := context.Background()
	next := &countingCatalog{items: []entity.Product{{ID: "P1"}}}
	mem := newMemCache()
	mem.err = errors.New("redis caído")
	svc := cache.NewCachedCatalogService(next, mem, time.Minute)

	items, _, err := svc.ListProducts(ctx, entity.ProductFilters{}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestNoopCatalogCache(t *testing.T) {
	ctx := context.Background()
	var noop cache.NoopCatalogCache

	_, ok, err := noop.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, noop.Set(ctx, "k", &cache.ListingPage{}, time.Minute))
}
