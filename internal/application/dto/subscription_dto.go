package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// SubscriptionResponse estado de la suscripción del negocio.
type SubscriptionResponse struct {
	ID        string          `json:"id"`
	Plan      string          `json:"plan"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
	InitPoint string          `json:"init_point,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewSubscriptionResponse mapea la entidad con el estado efectivo a la fecha now.
func NewSubscriptionResponse(s *entity.Subscription, now time.Time) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        s.ID,
		Plan:      s.Plan,
		Amount:    s.Amount,
		Status:    s.EffectiveStatus(now),
		ExpiresAt: s.ExpiresAt,
		InitPoint: s.InitPoint,
		CreatedAt: s.CreatedAt,
	}
}

// SubscriptionEnvelope una suscripción.
type SubscriptionEnvelope struct {
	Envelope
	Subscription SubscriptionResponse `json:"subscription"`
}

// PaymentWebhookRequest notificación del proveedor de pagos.
type PaymentWebhookRequest struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// WebhookResponse resultado del procesamiento de una notificación.
type WebhookResponse struct {
	Envelope
	Processed bool   `json:"processed"`
	Status    string `json:"status,omitempty"`
}
