package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// PaymentRepository pagos de clientes.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Payment, error)
}
