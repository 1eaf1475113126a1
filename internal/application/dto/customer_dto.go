package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CustomerResponse cliente con su saldo de cuenta corriente.
type CustomerResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	Email     string          `json:"email,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewCustomerResponse mapea la entidad.
func NewCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Balance:   c.Balance,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CustomerEnvelope un cliente.
type CustomerEnvelope struct {
	Envelope
	Customer CustomerResponse `json:"customer"`
}

// CustomerListResponse listado paginado.
type CustomerListResponse struct {
	Envelope
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// RegisterPaymentRequest pago contra la cuenta corriente del cliente.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Method string          `json:"method" validate:"required,oneof=efectivo transferencia tarjeta mercadopago"`
	Note   string          `json:"note" validate:"omitempty,max=500"`
	Date   *time.Time      `json:"date"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Note       string          `json:"note,omitempty"`
	Date       time.Time       `json:"date"`
}

// NewPaymentResponse mapea la entidad.
func NewPaymentResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		Amount:     p.Amount,
		Method:     p.Method,
		Note:       p.Note,
		Date:       p.Date,
	}
}

// RegisterPaymentResponse pago y saldo resultante.
type RegisterPaymentResponse struct {
	Envelope
	Payment PaymentResponse `json:"payment"`
	Balance decimal.Decimal `json:"balance"`
}

// PaymentListResponse pagos de un cliente.
type PaymentListResponse struct {
	Envelope
	Items []PaymentResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
