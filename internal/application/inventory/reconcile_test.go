package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/domain/stock"
	"github.com/jhoicas/tienda-api/internal/infrastructure/sheets"
)

const sid = "sid"

var header = []string{"codigo", "categoria", "nombre", "cantidad", "precio_local", "precio_referencia"}

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []string
	err  error
}

func (n *fakeNotifier) Notify(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, text)
	return n.err
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	c.data[key] = b
	return err
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// racingStore simula otro proceso que modifica la hoja justo después de la primera lectura.
type racingStore struct {
	*sheets.MemoryStore
	reads int
}

func (r *racingStore) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	out, err := r.MemoryStore.ReadRange(ctx, spreadsheetID, rng)
	r.reads++
	if r.reads == 1 {
		_ = r.MemoryStore.WriteRange(ctx, spreadsheetID, "Stock!D2:D2", [][]any{{99}})
	}
	return out, err
}

// slowStore demora cada lectura para que dos lotes lean la hoja a la vez si nada los serializa.
type slowStore struct {
	*sheets.MemoryStore
}

func (s slowStore) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	out, err := s.MemoryStore.ReadRange(ctx, spreadsheetID, rng)
	time.Sleep(30 * time.Millisecond)
	return out, err
}

// lockCheckingNotifier registra si la fila vendida estaba libre al enviar el aviso.
type lockCheckingNotifier struct {
	locks *KeyedLocker
	key   string
	free  bool
	sent  int
}

func (n *lockCheckingNotifier) Notify(context.Context, string) error {
	n.sent++
	got := make(chan func(), 1)
	go func() { got <- n.locks.Lock(n.key) }()
	select {
	case unlock := <-got:
		unlock()
		n.free = true
	case <-time.After(200 * time.Millisecond):
		n.free = false
		// liberar el intento pendiente cuando la venta suelte la fila
		go func() { (<-got)() }()
	}
	return nil
}

type failingStore struct{ repository.RowStore }

func (failingStore) ReadRange(context.Context, string, string) ([][]string, error) {
	return nil, errors.New("quota exceeded")
}

func newStore(rows ...[]string) *sheets.MemoryStore {
	m := sheets.NewMemoryStore()
	m.Seed(sid, "Stock", append([][]string{header}, rows...))
	return m
}

func newUC(store repository.RowStore, n *fakeNotifier, c *memCache) *ReconcileUseCase {
	uc := NewReconcileUseCase(store, stock.SchemaV1, nil, nil, nil, ReconcileConfig{Timeout: time.Second, AlertThreshold: 2}, nil)
	// asignación directa: un puntero nil tipado no debe quedar como interfaz no nil
	if n != nil {
		uc.notifier = n
	}
	if c != nil {
		uc.cache = c
	}
	return uc
}

func target() dto.StockTarget { return dto.StockTarget{SpreadsheetID: sid, Hoja: "Stock"} }

func intp(n int) *int { return &n }

func strp(s string) *string { return &s }

func TestSyncStock_ActualizaEnLugarYAgregaNuevas(t *testing.T) {
	store := newStore(
		[]string{"A1", "Screens", "iPhone Glass", "10", "5000", "40"},
		[]string{"B2", "Cables", "USB", "3", "100"},
	)
	uc := newUC(store, nil, nil)
	precio := decimal.NewFromInt(6000)

	resp, err := uc.SyncStock(context.Background(), dto.SyncStockRequest{
		StockTarget: target(),
		Rows: []dto.StockRowInput{
			{Codigo: "A1", PrecioLocal: &precio},
			{Codigo: "N9", Nombre: strp("Funda"), Cantidad: intp(4)},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, 1, resp.Updated)
	assert.Equal(t, 1, resp.Created)
	require.Len(t, resp.Rows, 2)

	rows := store.Rows(sid, "Stock")
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"A1", "Screens", "iPhone Glass", "10", "6000", "40"}, rows[1])
	assert.Equal(t, []string{"B2", "Cables", "USB", "3", "100"}, rows[2])
	assert.Equal(t, []string{"N9", "", "Funda", "4", "0", ""}, rows[3])
	assert.Equal(t, 1, store.Writes)
}

func TestSyncStock_AltasConcurrentesNoSePisan(t *testing.T) {
	mem := newStore([]string{"A1", "Screens", "iPhone Glass", "10", "5000", "40"})
	uc := newUC(slowStore{mem}, nil, nil)

	var wg sync.WaitGroup
	for _, codigo := range []string{"NEW1", "NEW2"} {
		wg.Add(1)
		go func(codigo string) {
			defer wg.Done()
			_, err := uc.SyncStock(context.Background(), dto.SyncStockRequest{
				StockTarget: target(),
				Rows:        []dto.StockRowInput{{Codigo: codigo, Nombre: strp(codigo), Cantidad: intp(1)}},
			})
			assert.NoError(t, err)
		}(codigo)
	}
	wg.Wait()

	rows := mem.Rows(sid, "Stock")
	require.Len(t, rows, 4)
	codigos := []string{rows[2][0], rows[3][0]}
	assert.ElementsMatch(t, []string{"NEW1", "NEW2"}, codigos)
	assert.Equal(t, "A1", rows[1][0])
}

func TestSyncStock_Validaciones(t *testing.T) {
	store := newStore()
	uc := newUC(store, nil, nil)

	_, err := uc.SyncStock(context.Background(), dto.SyncStockRequest{Rows: []dto.StockRowInput{{Codigo: "A"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SyncStock(context.Background(), dto.SyncStockRequest{StockTarget: target()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SyncStock(context.Background(), dto.SyncStockRequest{
		StockTarget: target(),
		Rows:        []dto.StockRowInput{{Codigo: "A"}, {Codigo: " A "}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, store.Writes)
}

func TestRegisterSale_Escenarios(t *testing.T) {
	store := newStore(
		[]string{"A1", "Screens", "iPhone Glass", "10", "5000", "40"},
		[]string{"B2", "Cables", "USB", "2", "100"},
	)
	uc := newUC(store, nil, nil)

	resp, err := uc.RegisterSale(context.Background(), dto.DecrementRequest{StockTarget: target(), Codigo: "A1", Cantidad: intp(3)})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Row.Cantidad)
	assert.Equal(t, 10, resp.Previous)
	assert.Zero(t, resp.Oversold)
	assert.Equal(t, []string{"A1", "Screens", "iPhone Glass", "7", "5000", "40"}, store.Rows(sid, "Stock")[1])

	resp, err = uc.RegisterSale(context.Background(), dto.DecrementRequest{StockTarget: target(), Codigo: "B2", Cantidad: intp(5)})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Row.Cantidad)
	assert.Equal(t, 3, resp.Oversold)
	assert.Equal(t, "0", store.Rows(sid, "Stock")[2][3])
}

func TestRegisterSale_NoEncontradoNoEscribe(t *testing.T) {
	store := newStore([]string{"A1", "Screens", "iPhone Glass", "10", "5000", "40"})
	uc := newUC(store, nil, nil)

	_, err := uc.RegisterSale(context.Background(), dto.DecrementRequest{StockTarget: target(), Codigo: "ZZ", Cantidad: intp(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, store.Writes)
}

func TestRegisterSale_ConflictoSiLaFilaCambio(t *testing.T) {
	store := &racingStore{MemoryStore: newStore([]string{"A1", "Screens", "iPhone Glass", "10", "5000", "40"})}
	uc := newUC(store, nil, nil)

	_, err := uc.RegisterSale(context.Background(), dto.DecrementRequest{StockTarget: target(), Codigo: "A1", Cantidad: intp(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "99", store.Rows(sid, "Stock")[1][3])
}

func TestRegisterSale_ErrorExternoEsUpstream(t *testing.T) {
	uc := newUC(failingStore{}, nil, nil)
	_, err := uc.RegisterSale(context.Background(), dto.DecrementRequest{StockTarget: target(), Codigo: "A1", Cantidad: intp(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestRegisterSale_ConcurrenteSinPerderDescuentos(t *testing.T) {
	store := newStore([]string{"A1", "Screens", "iPhone Glass", "100", "5000", "40"})
	uc := newUC(store, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RegisterSale(context.Background(), dto.DecrementRequest{StockTarget: target(), Codigo: "A1", Cantidad: intp(1)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, "80", store.Rows(sid, "Stock")[1][3])
}

func TestRegisterSale_AvisoDeStockBajoAlCruzarUmbral(t *testing.T) {
	store := newStore([]string{"A1", "Screens", "iPhone Glass", "3", "5000", "40"})
	n := &fakeNotifier{err: errors.New("bot caído")}
	uc := newUC(store, n, nil)

	for i := 0; i < 2; i++ {
		_, err := uc.RegisterSale(context.Background(), dto.DecrementRequest{StockTarget: target(), Codigo: "A1", Cantidad: intp(1)})
		require.NoError(t, err)
	}
	require.Len(t, n.msgs, 1)
	assert.Contains(t, n.msgs[0], "iPhone Glass")
}

func TestRegisterSale_AvisoSeEnviaConLaFilaLibre(t *testing.T) {
	store := newStore([]string{"A1", "Screens", "iPhone Glass", "3", "5000", "40"})
	uc := newUC(store, nil, nil)
	n := &lockCheckingNotifier{locks: uc.locks, key: RowKey(sid, "Stock", "A1")}
	uc.notifier = n

	_, err := uc.RegisterSale(context.Background(), dto.DecrementRequest{StockTarget: target(), Codigo: "A1", Cantidad: intp(1)})
	require.NoError(t, err)
	require.Equal(t, 1, n.sent)
	assert.True(t, n.free)
	assert.Equal(t, "2", store.Rows(sid, "Stock")[1][3])
}

func TestRegisterSale_InvalidaCatalogo(t *testing.T) {
	store := newStore([]string{"A1", "Screens", "iPhone Glass", "3", "5000", "40"})
	c := &memCache{data: map[string][]byte{}}
	key := catalog.CacheKeys(sid, "Stock")[0]
	c.data[key] = []byte(`[]`)
	uc := newUC(store, nil, c)

	_, err := uc.RegisterSale(context.Background(), dto.DecrementRequest{StockTarget: target(), Codigo: "A1", Cantidad: intp(1)})
	require.NoError(t, err)
	_, ok := c.data[key]
	assert.False(t, ok)
}

func TestRegisterSaleItems_SumaCodigosRepetidosYEscribeEnLote(t *testing.T) {
	store := newStore(
		[]string{"A1", "Screens", "iPhone Glass", "10", "5000", "40"},
		[]string{"B2", "Cables", "USB", "5", "100"},
	)
	uc := newUC(store, nil, nil)

	decs, err := uc.RegisterSaleItems(context.Background(), target(), []SoldItem{
		{Codigo: "A1", Cantidad: 2}, {Codigo: "B2", Cantidad: 1}, {Codigo: "A1", Cantidad: 3},
	})
	require.NoError(t, err)
	require.Len(t, decs, 2)
	assert.Equal(t, 5, decs[0].Row.Cantidad)
	assert.Equal(t, 4, decs[1].Row.Cantidad)
	assert.Equal(t, 1, store.Writes)

	_, err = uc.RegisterSaleItems(context.Background(), target(), []SoldItem{{Codigo: "A1", Cantidad: 1}, {Codigo: "XX", Cantidad: 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "5", store.Rows(sid, "Stock")[1][3])
}

func TestLookupYLowStock(t *testing.T) {
	store := newStore(
		[]string{"A1", "Screens", "iPhone Glass", "10", "5000", "40"},
		[]string{"B2", "Cables", "USB", "1", "100"},
		[]string{"C3", "Cables", "Adaptador", "0", "50"},
	)
	uc := newUC(store, nil, nil)

	rows, err := uc.Lookup(context.Background(), sid, "Stock", []string{"B2", "A1"})
	require.NoError(t, err)
	assert.Equal(t, "B2", rows[0].Codigo)
	assert.Equal(t, "A1", rows[1].Codigo)

	_, err = uc.Lookup(context.Background(), sid, "Stock", []string{"nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	low, err := uc.LowStock(context.Background(), sid, "Stock", -1)
	require.NoError(t, err)
	assert.Equal(t, 2, low.Threshold)
	require.Len(t, low.Items, 2)
	assert.Equal(t, "C3", low.Items[0].Codigo)
	assert.Equal(t, "B2", low.Items[1].Codigo)
}
