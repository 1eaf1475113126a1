// Package ventas numeración secuencial de comprobantes y registro de ventas.
package ventas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/numbering"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// CounterKey clave del contador de ventas de un negocio.
func CounterKey(prefix, negocioID string) string {
	return prefix + ":" + negocioID
}

// CounterUseCase emite números de comprobante.
type CounterUseCase struct {
	repo    repository.CounterRepository
	timeout time.Duration
	log     *logger.Logger
}

// NewCounterUseCase construye el caso de uso.
func NewCounterUseCase(repo repository.CounterRepository, timeout time.Duration, log *logger.Logger) *CounterUseCase {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CounterUseCase{repo: repo, timeout: timeout, log: log.Named("counter")}
}

// NextAndPersist incrementa el contador y devuelve el valor confirmado por el almacén.
// Un contador inexistente se crea con el primer número; si otro proceso lo crea antes,
// se incrementa el suyo.
func (uc *CounterUseCase) NextAndPersist(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: clave de contador vacía", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	n, err := uc.repo.Increment(ctx, key, 1)
	if err == nil {
		return numbering.Format(n), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		uc.log.Error().Err(err).Str("key", key).Msg("no se pudo incrementar contador")
		return "", err
	}

	created, err := uc.repo.Create(ctx, key, numbering.First)
	if err != nil {
		uc.log.Error().Err(err).Str("key", key).Msg("no se pudo crear contador")
		return "", err
	}
	if created {
		uc.log.Info().Str("key", key).Msg("contador inicializado")
		return numbering.Format(numbering.First), nil
	}
	n, err = uc.repo.Increment(ctx, key, 1)
	if err != nil {
		return "", err
	}
	return numbering.Format(n), nil
}

// PeekNext devuelve el número que emitiría NextAndPersist sin persistir nada.
// Es orientativo: otro NextAndPersist concurrente puede tomar ese mismo número.
func (uc *CounterUseCase) PeekNext(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: clave de contador vacía", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	c, err := uc.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if c == nil {
		return numbering.Format(numbering.First), nil
	}
	return numbering.Format(c.Ultimo + 1), nil
}
