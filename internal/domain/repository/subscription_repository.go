package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// SubscriptionRepository suscripciones de negocios.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	GetByID(ctx context.Context, id string) (*entity.Subscription, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Subscription, error)
	GetLatestByNegocio(ctx context.Context, negocioID string) (*entity.Subscription, error)
	Update(ctx context.Context, sub *entity.Subscription) error
	// RecordPayment registra un pago acreditado; false si ese pago ya se había aplicado.
	RecordPayment(ctx context.Context, subscriptionID, paymentID string, amount decimal.Decimal) (bool, error)
}
