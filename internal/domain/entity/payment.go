package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentCash            = "efectivo"
	PaymentTransfer        = "transferencia"
	PaymentCard            = "tarjeta"
	PaymentMercadoPago     = "mercadopago"
	PaymentCuentaCorriente = "cuenta_corriente"
)

// Payment pago registrado por un cliente contra su cuenta corriente.
type Payment struct {
	ID         string
	NegocioID  string
	CustomerID string
	Amount     decimal.Decimal
	Method     string
	Note       string
	Date       time.Time
	CreatedBy  string
	CreatedAt  time.Time
}
