package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PreferenceRequest datos para crear un checkout en el proveedor de pagos.
type PreferenceRequest struct {
	Title             string
	Amount            decimal.Decimal
	ExternalReference string
	NotificationURL   string
	SuccessURL        string
}

// Preference checkout creado por el proveedor.
type Preference struct {
	ID        string
	InitPoint string
}

// PaymentInfo estado de un pago informado por el proveedor.
type PaymentInfo struct {
	ID                string
	Status            string // approved, pending, rejected, ...
	ExternalReference string
	Amount            decimal.Decimal
}

// PaymentStatusApproved estado de pago acreditado.
const PaymentStatusApproved = "approved"

// PaymentGateway puerto hacia el proveedor de pagos.
type PaymentGateway interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error)
	GetPayment(ctx context.Context, id string) (*PaymentInfo, error)
}
