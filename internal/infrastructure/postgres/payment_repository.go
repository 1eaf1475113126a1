package postgres

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos de clientes.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	const q = `
		INSERT INTO payments (id, negocio_id, customer_id, amount, method, note, date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, q,
		p.ID, p.NegocioID, p.CustomerID, p.Amount, p.Method, nullIfEmpty(p.Note), p.Date,
		nullIfEmpty(p.CreatedBy), p.CreatedAt,
	)
	if err != nil {
		return upstream("insert payment", err)
	}
	return nil
}

func (r *PaymentRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Payment, error) {
	const q = `
		SELECT id, negocio_id, customer_id, amount, method, COALESCE(note, ''), date, COALESCE(created_by, ''), created_at
		FROM payments
		WHERE customer_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, q, customerID, limit, offset)
	if err != nil {
		return nil, upstream("list payments", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.NegocioID, &p.CustomerID, &p.Amount, &p.Method, &p.Note, &p.Date, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, upstream("scan payment", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("list payments", err)
	}
	return list, nil
}
