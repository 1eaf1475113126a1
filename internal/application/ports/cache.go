package ports

import (
	"context"
	"time"
)

// Cache almacén clave/valor con expiración para respuestas costosas de armar.
// Get devuelve found=false cuando la clave no existe o expiró.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (found bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
