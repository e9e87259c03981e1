package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

// CatalogClient cliente REST del servicio de catálogo. Implementa
// pos.CatalogService.
type CatalogClient struct {
	*Client
}

// NewCatalogClient construye el cliente de catálogo sobre el cliente base.
func NewCatalogClient(base *Client) *CatalogClient {
	return &CatalogClient{Client: base}
}

// listProductsResponse envelope del listado de productos.
type listProductsResponse struct {
	Data       []entity.Product  `json:"data"`
	Pagination entity.Pagination `json:"pagination"`
}

// ListProducts lista productos paginados aplicando los filtros dados.
func (c *CatalogClient) ListProducts(ctx context.Context, filters entity.ProductFilters, page, perPage int) ([]entity.Product, entity.Pagination, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("perPage", strconv.Itoa(perPage))
	if filters.Name != "" {
		query.Set("name", filters.Name)
	}
	if filters.SKU != "" {
		query.Set("sku", filters.SKU)
	}
	if filters.Brand != "" {
		query.Set("brand", filters.Brand)
	}

	var out listProductsResponse
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &out); err != nil {
		return nil, entity.Pagination{}, err
	}
	return out.Data, out.Pagination, nil
}
