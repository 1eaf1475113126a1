package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// SaleItemInput ítem vendido. Sin precio se usa el precio local de la hoja.
type SaleItemInput struct {
	Codigo   string           `json:"codigo" validate:"required,max=64"`
	Cantidad int              `json:"cantidad" validate:"required,min=1"`
	Precio   *decimal.Decimal `json:"precio" validate:"omitempty,min=0"`
}

// CreateSaleRequest registra una venta. spreadsheet_id y hoja toman los valores por defecto si se omiten.
type CreateSaleRequest struct {
	SpreadsheetID string          `json:"spreadsheet_id"`
	Hoja          string          `json:"hoja" validate:"omitempty,max=100"`
	Items         []SaleItemInput `json:"items" validate:"required,min=1,max=100,dive"`
	CustomerID    string          `json:"customer_id" validate:"omitempty,uuid"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=efectivo transferencia tarjeta mercadopago cuenta_corriente"`
}

// SaleItemResponse ítem de una venta.
type SaleItemResponse struct {
	Codigo   string          `json:"codigo"`
	Nombre   string          `json:"nombre"`
	Cantidad int             `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// SaleResponse comprobante de venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	Numero        string             `json:"numero"`
	CustomerID    string             `json:"customer_id,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	Items         []SaleItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	CreatedAt     time.Time          `json:"created_at"`
}

// NewSaleResponse mapea la entidad.
func NewSaleResponse(s *entity.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = SaleItemResponse(it)
	}
	return SaleResponse{
		ID:            s.ID,
		Numero:        s.Numero,
		CustomerID:    s.CustomerID,
		PaymentMethod: s.PaymentMethod,
		Items:         items,
		Total:         s.Total,
		CreatedAt:     s.CreatedAt,
	}
}

// CreateSaleResponse venta registrada. Oversold lista los códigos vendidos por encima del stock.
type CreateSaleResponse struct {
	Envelope
	Sale     SaleResponse   `json:"sale"`
	Oversold map[string]int `json:"oversold,omitempty"`
}

// GetSaleResponse venta consultada.
type GetSaleResponse struct {
	Envelope
	Sale SaleResponse `json:"sale"`
}

// NextNumberResponse próximo número de comprobante (orientativo).
type NextNumberResponse struct {
	Envelope
	Numero string `json:"numero"`
}
