// Package clientes clientes del negocio con cuenta corriente y pagos.
package clientes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// CustomerUseCase casos de uso para clientes y sus pagos.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	payments repository.PaymentRepository
	tx       repository.TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(
	repo repository.CustomerRepository,
	payments repository.PaymentRepository,
	tx repository.TxRunner,
	log *logger.Logger,
) *CustomerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerUseCase{repo: repo, payments: payments, tx: tx, log: log.Named("clientes"), now: time.Now}
}

// Create crea un nuevo cliente. El teléfono es único dentro del negocio.
func (uc *CustomerUseCase) Create(ctx context.Context, negocioID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name requerido", domain.ErrInvalidInput)
	}
	phone := strings.TrimSpace(in.Phone)
	if phone != "" {
		existing, err := uc.repo.GetByNegocioAndPhone(ctx, negocioID, phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := uc.now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		NegocioID: negocioID,
		Name:      name,
		Phone:     phone,
		Email:     strings.TrimSpace(in.Email),
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	out := dto.NewCustomerResponse(customer)
	return &out, nil
}

// Get obtiene un cliente del negocio.
func (uc *CustomerUseCase) Get(ctx context.Context, negocioID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.get(ctx, uc.repo, negocioID, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewCustomerResponse(c)
	return &out, nil
}

// List lista clientes del negocio.
func (uc *CustomerUseCase) List(ctx context.Context, negocioID string, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByNegocio(ctx, negocioID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewCustomerResponse(c))
	}
	return out, nil
}

// RegisterPayment guarda el pago y descuenta el monto del saldo en una misma transacción.
func (uc *CustomerUseCase) RegisterPayment(ctx context.Context, negocioID, userID, customerID string, in dto.RegisterPaymentRequest) (*dto.RegisterPaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser mayor a cero", domain.ErrInvalidInput)
	}
	switch in.Method {
	case entity.PaymentCash, entity.PaymentTransfer, entity.PaymentCard, entity.PaymentMercadoPago:
	default:
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, in.Method)
	}
	now := uc.now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	payment := &entity.Payment{
		ID:         uuid.New().String(),
		NegocioID:  negocioID,
		CustomerID: customerID,
		Amount:     in.Amount,
		Method:     in.Method,
		Note:       strings.TrimSpace(in.Note),
		Date:       date,
		CreatedBy:  userID,
		CreatedAt:  now,
	}

	var balance decimal.Decimal
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if _, err := uc.get(ctx, r.Customers, negocioID, customerID); err != nil {
			return err
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}
		b, err := r.Customers.AdjustBalance(ctx, customerID, in.Amount.Neg())
		if err != nil {
			return err
		}
		balance = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("customer_id", customerID).
		Str("amount", in.Amount.String()).
		Str("balance", balance.String()).
		Msg("pago registrado")
	return &dto.RegisterPaymentResponse{
		Envelope: dto.Success(),
		Payment:  dto.NewPaymentResponse(payment),
		Balance:  balance,
	}, nil
}

// ListPayments pagos de un cliente, más recientes primero.
func (uc *CustomerUseCase) ListPayments(ctx context.Context, negocioID, customerID string, page dto.PageRequest) ([]dto.PaymentResponse, error) {
	if _, err := uc.get(ctx, uc.repo, negocioID, customerID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.payments.ListByCustomer(ctx, customerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewPaymentResponse(p))
	}
	return out, nil
}

func (uc *CustomerUseCase) get(ctx context.Context, repo repository.CustomerRepository, negocioID, id string) (*entity.Customer, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.NegocioID != negocioID {
		return nil, domain.NotFound("cliente", id)
	}
	return c, nil
}
