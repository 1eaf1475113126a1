package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo contadores de numeración sobre la tabla contadores.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

func (r *CounterRepo) Get(ctx context.Context, key string) (*entity.SaleCounter, error) {
	const q = `SELECT clave, ultimo, updated_at FROM contadores WHERE clave = $1`
	var c entity.SaleCounter
	err := r.q.QueryRow(ctx, q, key).Scan(&c.Key, &c.Ultimo, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, upstream("get contador", err)
	}
	return &c, nil
}

// Create inserta el contador solo si no existe; la carrera entre dos creadores la resuelve la PK.
func (r *CounterRepo) Create(ctx context.Context, key string, value int64) (bool, error) {
	const q = `
		INSERT INTO contadores (clave, ultimo, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (clave) DO NOTHING`
	tag, err := r.q.Exec(ctx, q, key, value)
	if err != nil {
		return false, upstream("crear contador", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Increment es una sola sentencia: no requiere lectura previa y no pierde incrementos concurrentes.
func (r *CounterRepo) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	const q = `
		UPDATE contadores
		SET ultimo = ultimo + $2, updated_at = now()
		WHERE clave = $1
		RETURNING ultimo`
	var n int64
	if err := r.q.QueryRow(ctx, q, key, delta).Scan(&n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.NotFound("contador", key)
		}
		return 0, upstream("incrementar contador", err)
	}
	return n, nil
}
