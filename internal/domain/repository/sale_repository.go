package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// SaleRepository comprobantes de venta.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByNumero devuelve nil, nil si no existe.
	GetByNumero(ctx context.Context, negocioID, numero string) (*entity.Sale, error)
}
