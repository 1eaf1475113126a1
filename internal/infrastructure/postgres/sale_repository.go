package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo comprobantes de venta; los ítems se guardan como JSONB.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("serializar items: %w", err)
	}
	const q = `
		INSERT INTO sales (id, negocio_id, numero, customer_id, payment_method, items, total, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(ctx, q,
		s.ID, s.NegocioID, s.Numero, nullIfEmpty(s.CustomerID), s.PaymentMethod, items, s.Total,
		nullIfEmpty(s.CreatedBy), s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return upstream("insert sale", err)
	}
	return nil
}

func (r *SaleRepo) GetByNumero(ctx context.Context, negocioID, numero string) (*entity.Sale, error) {
	const q = `
		SELECT id, negocio_id, numero, COALESCE(customer_id, ''), payment_method, items, total, COALESCE(created_by, ''), created_at
		FROM sales WHERE negocio_id = $1 AND numero = $2`
	var (
		s     entity.Sale
		items []byte
	)
	err := r.q.QueryRow(ctx, q, negocioID, numero).Scan(
		&s.ID, &s.NegocioID, &s.Numero, &s.CustomerID, &s.PaymentMethod, &items, &s.Total, &s.CreatedBy, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, upstream("get sale", err)
	}
	if err := json.Unmarshal(items, &s.Items); err != nil {
		return nil, fmt.Errorf("deserializar items de venta %s: %w", numero, err)
	}
	return &s, nil
}
