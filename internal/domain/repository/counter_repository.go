package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// CounterRepository persistencia de contadores de numeración.
type CounterRepository interface {
	// Get devuelve nil, nil si el contador no existe.
	Get(ctx context.Context, key string) (*entity.SaleCounter, error)
	// Create crea el contador con value. Devuelve false si ya existía (no lo modifica).
	Create(ctx context.Context, key string, value int64) (bool, error)
	// Increment suma delta de forma atómica en el almacén y devuelve el valor confirmado.
	// Devuelve domain.ErrNotFound si el contador no existe.
	Increment(ctx context.Context, key string, delta int64) (int64, error)
}
