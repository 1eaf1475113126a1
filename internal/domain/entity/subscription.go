package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una suscripción.
const (
	SubscriptionPending = "pendiente"
	SubscriptionActive  = "activa"
	SubscriptionExpired = "vencida"
)

// Subscription suscripción del negocio al servicio, cobrada vía proveedor de pagos.
type Subscription struct {
	ID            string
	NegocioID     string
	Plan          string
	Amount        decimal.Decimal
	Status        string
	ExpiresAt     *time.Time
	PreferenceID  string
	InitPoint     string
	LastPaymentID string // último pago aprobado aplicado; evita extender dos veces
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EffectiveStatus devuelve el estado considerando el vencimiento.
func (s *Subscription) EffectiveStatus(now time.Time) string {
	if s.Status == SubscriptionActive && s.ExpiresAt != nil && now.After(*s.ExpiresAt) {
		return SubscriptionExpired
	}
	return s.Status
}
