package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo suscripciones sobre PostgreSQL.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

const subscriptionColumns = `id, negocio_id, plan, amount, status, expires_at,
	COALESCE(preference_id, ''), COALESCE(init_point, ''), COALESCE(last_payment_id, ''), created_at, updated_at`

func (r *SubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	const q = `
		INSERT INTO subscriptions
			(id, negocio_id, plan, amount, status, expires_at, preference_id, init_point, last_payment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, q,
		s.ID, s.NegocioID, s.Plan, s.Amount, s.Status, s.ExpiresAt,
		nullIfEmpty(s.PreferenceID), nullIfEmpty(s.InitPoint), nullIfEmpty(s.LastPaymentID),
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return upstream("insert subscription", err)
	}
	return nil
}

func (r *SubscriptionRepo) GetByID(ctx context.Context, id string) (*entity.Subscription, error) {
	return r.getOne(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id)
}

// GetByIDForUpdate solo tiene efecto dentro de una transacción.
func (r *SubscriptionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Subscription, error) {
	return r.getOne(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1 FOR UPDATE`, id)
}

func (r *SubscriptionRepo) GetLatestByNegocio(ctx context.Context, negocioID string) (*entity.Subscription, error) {
	return r.getOne(ctx, `
		SELECT `+subscriptionColumns+` FROM subscriptions
		WHERE negocio_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, negocioID)
}

func (r *SubscriptionRepo) Update(ctx context.Context, s *entity.Subscription) error {
	const q = `
		UPDATE subscriptions
		SET status = $2, expires_at = $3, preference_id = $4, init_point = $5,
		    last_payment_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, q,
		s.ID, s.Status, s.ExpiresAt, nullIfEmpty(s.PreferenceID), nullIfEmpty(s.InitPoint),
		nullIfEmpty(s.LastPaymentID), s.UpdatedAt,
	)
	if err != nil {
		return upstream("update subscription", err)
	}
	return nil
}

// RecordPayment la clave primaria de payment_id hace que un reintento del webhook no inserte.
func (r *SubscriptionRepo) RecordPayment(ctx context.Context, subscriptionID, paymentID string, amount decimal.Decimal) (bool, error) {
	const q = `
		INSERT INTO subscription_payments (payment_id, subscription_id, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (payment_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, q, paymentID, subscriptionID, amount)
	if err != nil {
		return false, upstream("insert subscription payment", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SubscriptionRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Subscription, error) {
	var s entity.Subscription
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.NegocioID, &s.Plan, &s.Amount, &s.Status, &s.ExpiresAt,
		&s.PreferenceID, &s.InitPoint, &s.LastPaymentID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, upstream("get subscription", err)
	}
	return &s, nil
}
