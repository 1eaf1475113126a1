package ventas

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

type memCounters struct {
	mu     sync.Mutex
	values map[string]int64
	// raceOnCreate simula que otro proceso crea el contador entre Increment y Create.
	raceOnCreate bool
	err          error
}

func newMemCounters() *memCounters { return &memCounters{values: map[string]int64{}} }

func (m *memCounters) Get(_ context.Context, key string) (*entity.SaleCounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return &entity.SaleCounter{Key: key, Ultimo: v, UpdatedAt: time.Now()}, nil
}

func (m *memCounters) Create(_ context.Context, key string, value int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raceOnCreate {
		m.raceOnCreate = false
		m.values[key] = 1
	}
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value
	return true, nil
}

func (m *memCounters) Increment(_ context.Context, key string, delta int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	v, ok := m.values[key]
	if !ok {
		return 0, domain.NotFound("contador", key)
	}
	v += delta
	m.values[key] = v
	return v, nil
}

type memSales struct {
	mu    sync.Mutex
	sales map[string]*entity.Sale
	err   error
}

func (m *memSales) Create(_ context.Context, s *entity.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	k := s.NegocioID + "|" + s.Numero
	if _, ok := m.sales[k]; ok {
		return domain.ErrDuplicate
	}
	m.sales[k] = s
	return nil
}

func (m *memSales) GetByNumero(_ context.Context, negocioID, numero string) (*entity.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sales[negocioID+"|"+numero], nil
}

type memCustomers struct {
	mu        sync.Mutex
	customers map[string]*entity.Customer
}

func (m *memCustomers) Create(_ context.Context, c *entity.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[c.ID] = c
	return nil
}

func (m *memCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCustomers) GetByNegocioAndPhone(context.Context, string, string) (*entity.Customer, error) {
	return nil, nil
}

func (m *memCustomers) ListByNegocio(context.Context, string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}

func (m *memCustomers) AdjustBalance(_ context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return decimal.Zero, domain.NotFound("cliente", id)
	}
	c.Balance = c.Balance.Add(delta)
	return c.Balance, nil
}

type fakeTx struct {
	sales     repository.SaleRepository
	customers repository.CustomerRepository
}

func (f fakeTx) Run(_ context.Context, fn func(repository.TxRepos) error) error {
	return fn(repository.TxRepos{Sales: f.sales, Customers: f.customers})
}

type fakeTicket struct{ negocio, customer string }

func (f *fakeTicket) Ticket(negocio string, _ *entity.Sale, customerName string) ([]byte, error) {
	f.negocio, f.customer = negocio, customerName
	return []byte("%PDF-fake"), nil
}
