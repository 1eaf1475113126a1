package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale comprobante de venta con número secuencial por negocio.
type Sale struct {
	ID            string
	NegocioID     string
	Numero        string
	CustomerID    string // vacío si la venta no tiene cliente
	PaymentMethod string
	Items         []SaleItem
	Total         decimal.Decimal
	CreatedBy     string
	CreatedAt     time.Time
}

// SaleItem línea de una venta.
type SaleItem struct {
	Codigo   string          `json:"codigo"`
	Nombre   string          `json:"nombre"`
	Cantidad int             `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
