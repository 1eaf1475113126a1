package ventas

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/domain/stock"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// StockService operaciones de stock que usa una venta.
type StockService interface {
	Lookup(ctx context.Context, spreadsheetID, hoja string, codigos []string) ([]entity.StockRow, error)
	RegisterSaleItems(ctx context.Context, target dto.StockTarget, items []inventory.SoldItem) ([]stock.Decrement, error)
}

// SaleConfig valores por defecto de una venta.
type SaleConfig struct {
	SpreadsheetID string
	Hoja          string
	CounterPrefix string
	NegocioName   string
}

// SaleUseCase registra ventas: número de comprobante, descuento de stock y cargo en cuenta corriente.
type SaleUseCase struct {
	stock     StockService
	counter   *CounterUseCase
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	tx        repository.TxRunner
	ticket    ports.TicketPDF
	cfg       SaleConfig
	log       *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	stockSvc StockService,
	counter *CounterUseCase,
	sales repository.SaleRepository,
	customers repository.CustomerRepository,
	tx repository.TxRunner,
	ticket ports.TicketPDF,
	cfg SaleConfig,
	log *logger.Logger,
) *SaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SaleUseCase{
		stock:     stockSvc,
		counter:   counter,
		sales:     sales,
		customers: customers,
		tx:        tx,
		ticket:    ticket,
		cfg:       cfg,
		log:       log.Named("ventas"),
	}
}

// Create valida los ítems contra la hoja, toma el próximo número, descuenta el stock
// y guarda la venta. Con cuenta corriente el total se suma al saldo del cliente en la
// misma transacción.
func (uc *SaleUseCase) Create(ctx context.Context, negocioID, userID string, in dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	if negocioID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta no tiene ítems", domain.ErrInvalidInput)
	}
	if in.PaymentMethod == entity.PaymentCuentaCorriente && in.CustomerID == "" {
		return nil, fmt.Errorf("%w: cuenta corriente requiere customer_id", domain.ErrInvalidInput)
	}
	target := dto.StockTarget{SpreadsheetID: in.SpreadsheetID, Hoja: in.Hoja}
	if target.SpreadsheetID == "" {
		target.SpreadsheetID = uc.cfg.SpreadsheetID
	}
	if target.Hoja == "" {
		target.Hoja = uc.cfg.Hoja
	}

	if in.CustomerID != "" {
		if _, err := uc.customer(ctx, negocioID, in.CustomerID); err != nil {
			return nil, err
		}
	}

	codigos := make([]string, len(in.Items))
	for i, it := range in.Items {
		if it.Cantidad <= 0 {
			return nil, fmt.Errorf("%w: cantidad inválida para %q", domain.ErrInvalidInput, it.Codigo)
		}
		codigos[i] = it.Codigo
	}
	rows, err := uc.stock.Lookup(ctx, target.SpreadsheetID, target.Hoja, codigos)
	if err != nil {
		return nil, err
	}

	items := make([]entity.SaleItem, len(in.Items))
	sold := make([]inventory.SoldItem, len(in.Items))
	total := decimal.Zero
	for i, it := range in.Items {
		precio := rows[i].PrecioLocal
		if it.Precio != nil {
			precio = *it.Precio
		}
		subtotal := precio.Mul(decimal.NewFromInt(int64(it.Cantidad)))
		items[i] = entity.SaleItem{
			Codigo:   rows[i].Codigo,
			Nombre:   rows[i].Nombre,
			Cantidad: it.Cantidad,
			Precio:   precio,
			Subtotal: subtotal,
		}
		sold[i] = inventory.SoldItem{Codigo: rows[i].Codigo, Cantidad: it.Cantidad}
		total = total.Add(subtotal)
	}

	numero, err := uc.counter.NextAndPersist(ctx, CounterKey(uc.cfg.CounterPrefix, negocioID))
	if err != nil {
		return nil, err
	}
	decs, err := uc.stock.RegisterSaleItems(ctx, target, sold)
	if err != nil {
		uc.log.Warn().Err(err).Str("numero", numero).Msg("venta sin registrar: número descartado")
		return nil, err
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		NegocioID:     negocioID,
		Numero:        numero,
		CustomerID:    in.CustomerID,
		PaymentMethod: in.PaymentMethod,
		Items:         items,
		Total:         total,
		CreatedBy:     userID,
		CreatedAt:     time.Now(),
	}
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}
		if sale.PaymentMethod == entity.PaymentCuentaCorriente {
			if _, err := r.Customers.AdjustBalance(ctx, sale.CustomerID, sale.Total); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// el stock ya se descontó: queda registrado para corrección manual
		uc.log.Error().Err(err).
			Str("numero", numero).
			Interface("items", sold).
			Msg("stock descontado pero la venta no se pudo guardar")
		return nil, err
	}

	resp := &dto.CreateSaleResponse{Envelope: dto.Success(), Sale: dto.NewSaleResponse(sale)}
	for _, d := range decs {
		if d.Oversold > 0 {
			if resp.Oversold == nil {
				resp.Oversold = make(map[string]int)
			}
			resp.Oversold[d.Row.Codigo] = d.Oversold
		}
	}
	uc.log.Info().
		Str("numero", numero).
		Str("total", total.String()).
		Int("items", len(items)).
		Msg("venta registrada")
	return resp, nil
}

// NextNumber número orientativo de la próxima venta del negocio.
func (uc *SaleUseCase) NextNumber(ctx context.Context, negocioID string) (string, error) {
	if negocioID == "" {
		return "", domain.ErrUnauthorized
	}
	return uc.counter.PeekNext(ctx, CounterKey(uc.cfg.CounterPrefix, negocioID))
}

// Get venta por número.
func (uc *SaleUseCase) Get(ctx context.Context, negocioID, numero string) (*entity.Sale, error) {
	s, err := uc.sales.GetByNumero(ctx, negocioID, numero)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("venta", numero)
	}
	return s, nil
}

// Ticket PDF del comprobante.
func (uc *SaleUseCase) Ticket(ctx context.Context, negocioID, numero string) ([]byte, error) {
	s, err := uc.Get(ctx, negocioID, numero)
	if err != nil {
		return nil, err
	}
	var customerName string
	if s.CustomerID != "" {
		if c, err := uc.customer(ctx, negocioID, s.CustomerID); err == nil {
			customerName = c.Name
		}
	}
	return uc.ticket.Ticket(uc.cfg.NegocioName, s, customerName)
}

func (uc *SaleUseCase) customer(ctx context.Context, negocioID, id string) (*entity.Customer, error) {
	c, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.NegocioID != negocioID {
		return nil, domain.NotFound("cliente", id)
	}
	return c, nil
}
