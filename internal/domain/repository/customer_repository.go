package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByNegocioAndPhone(ctx context.Context, negocioID, phone string) (*entity.Customer, error)
	ListByNegocio(ctx context.Context, negocioID string, limit, offset int) ([]*entity.Customer, error)
	// AdjustBalance suma delta (puede ser negativo) al saldo y devuelve el saldo nuevo.
	AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error)
}
