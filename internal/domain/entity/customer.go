package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente del negocio con su cuenta corriente.
// Balance es la deuda actual: sube con ventas a cuenta corriente y baja con pagos.
type Customer struct {
	ID        string
	NegocioID string
	Name      string
	Phone     string
	Email     string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
