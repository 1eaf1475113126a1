package entity

import "time"

// SaleCounter último número de venta emitido para un negocio.
type SaleCounter struct {
	Key       string
	Ultimo    int64
	UpdatedAt time.Time
}
