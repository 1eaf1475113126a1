package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// StockTarget identifica la hoja sobre la que se opera.
type StockTarget struct {
	SpreadsheetID string `json:"spreadsheet_id" validate:"required"`
	Hoja          string `json:"hoja" validate:"required,max=100"`
}

// StockRowInput actualización parcial de una fila; los campos omitidos no pisan el valor existente.
type StockRowInput struct {
	Codigo           string           `json:"codigo" validate:"required,max=64"`
	Categoria        *string          `json:"categoria" validate:"omitempty,max=100"`
	Nombre           *string          `json:"nombre" validate:"omitempty,max=200"`
	Cantidad         *int             `json:"cantidad" validate:"omitempty,min=0"`
	PrecioLocal      *decimal.Decimal `json:"precioLocal" validate:"omitempty,min=0"`
	PrecioReferencia *decimal.Decimal `json:"precioReferencia" validate:"omitempty,min=0"`
}

// Patch convierte la entrada en el patch de dominio.
func (in StockRowInput) Patch() entity.StockRowPatch {
	return entity.StockRowPatch{
		Codigo:           in.Codigo,
		Categoria:        in.Categoria,
		Nombre:           in.Nombre,
		Cantidad:         in.Cantidad,
		PrecioLocal:      in.PrecioLocal,
		PrecioReferencia: in.PrecioReferencia,
	}
}

// SyncStockRequest lote de filas a conciliar con la hoja.
type SyncStockRequest struct {
	StockTarget
	Rows []StockRowInput `json:"rows" validate:"required,min=1,max=500,dive"`
}

// SyncStockResponse resultado de la conciliación.
type SyncStockResponse struct {
	Envelope
	Updated int               `json:"updated"`
	Created int               `json:"created"`
	Rows    []entity.StockRow `json:"rows"`
}

// DecrementRequest descuento de stock por una venta.
type DecrementRequest struct {
	StockTarget
	Codigo   string `json:"codigo" validate:"required,max=64"`
	Cantidad *int   `json:"cantidad" validate:"required,min=0"`
}

// DecrementResponse fila actualizada. Oversold > 0 indica que la venta superó el stock disponible.
type DecrementResponse struct {
	Envelope
	Row      entity.StockRow `json:"row"`
	Previous int             `json:"previous"`
	Oversold int             `json:"oversold"`
}

// LowStockResponse filas con stock en o por debajo del umbral.
type LowStockResponse struct {
	Envelope
	Threshold int               `json:"threshold"`
	Items     []entity.StockRow `json:"items"`
}
