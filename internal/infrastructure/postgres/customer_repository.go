package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, negocio_id, name, COALESCE(phone, ''), COALESCE(email, ''), balance, created_at, updated_at`

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	const q = `
		INSERT INTO customers (id, negocio_id, name, phone, email, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, q,
		c.ID, c.NegocioID, c.Name, nullIfEmpty(c.Phone), nullIfEmpty(c.Email), c.Balance,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return upstream("insert customer", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. nil, nil si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, upstream("get customer", err)
	}
	return c, nil
}

// GetByNegocioAndPhone obtiene un cliente por teléfono dentro del negocio.
func (r *CustomerRepo) GetByNegocioAndPhone(ctx context.Context, negocioID, phone string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE negocio_id = $1 AND phone = $2`, negocioID, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, upstream("get customer by phone", err)
	}
	return c, nil
}

// ListByNegocio lista clientes ordenados por nombre con paginación.
func (r *CustomerRepo) ListByNegocio(ctx context.Context, negocioID string, limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE negocio_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		negocioID, limit, offset)
	if err != nil {
		return nil, upstream("list customers", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, upstream("scan customer", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("list customers", err)
	}
	return list, nil
}

// AdjustBalance suma delta al saldo en una sola sentencia.
func (r *CustomerRepo) AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	const q = `
		UPDATE customers SET balance = balance + $2, updated_at = now()
		WHERE id = $1
		RETURNING balance`
	var balance decimal.Decimal
	if err := r.q.QueryRow(ctx, q, id, delta).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.NotFound("cliente", id)
		}
		return decimal.Zero, upstream("adjust balance", err)
	}
	return balance, nil
}

func scanCustomer(row pgxScanner) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.NegocioID, &c.Name, &c.Phone, &c.Email, &c.Balance, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
