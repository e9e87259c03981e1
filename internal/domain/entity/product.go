package entity

import "github.com/shopspring/decimal"

// Stock niveles de inventario de un producto (lectura consultiva; el backend
// re-valida el stock real al liquidar la venta).
type Stock struct {
	Current int `json:"current"`
	Minimum int `json:"minimum"`
}

// Price precio de venta de un producto con su representación para mostrar.
type Price struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Label    string          `json:"label"` // string ya formateado (ej. "S/ 10.00")
}

// Product producto del catálogo remoto. Solo lectura en este servicio.
type Product struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Brand     string `json:"brand"`
	BrandName string `json:"brandName,omitempty"`
	Stock     Stock  `json:"stock"`
	Price     Price  `json:"price"`
}

// Pagination metadatos de página devueltos por el catálogo.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ProductFilters filtros del listado de catálogo. Se aplican solo al ejecutar
// la búsqueda (submit), no por tecla.
type ProductFilters struct {
	Name  string `json:"name,omitempty"`
	SKU   string `json:"sku,omitempty"`
	Brand string `json:"brand,omitempty"`
}
