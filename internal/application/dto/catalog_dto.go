package dto

import "github.com/shopspring/decimal"

// CatalogQuery filtros del catálogo público.
type CatalogQuery struct {
	Categoria string `query:"categoria" validate:"omitempty,max=100"`
	Q         string `query:"q" validate:"omitempty,max=100"`
}

// CatalogItem producto visible en el catálogo (sin costo ni cantidad exacta).
type CatalogItem struct {
	Codigo           string           `json:"codigo"`
	Categoria        string           `json:"categoria"`
	Nombre           string           `json:"nombre"`
	Precio           decimal.Decimal  `json:"precio"`
	PrecioReferencia *decimal.Decimal `json:"precio_referencia,omitempty"`
	Disponible       int              `json:"disponible"`
}

// CatalogResponse productos disponibles.
type CatalogResponse struct {
	Envelope
	Items []CatalogItem `json:"items"`
}

// CategoriesResponse categorías con stock.
type CategoriesResponse struct {
	Envelope
	Categories []string `json:"categories"`
}
