package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

type fakeReader struct {
	rows  []entity.StockRow
	err   error
	calls int
}

func (f *fakeReader) Rows(context.Context, string, string) ([]entity.StockRow, error) {
	f.calls++
	return f.rows, f.err
}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	b, err := json.Marshal(v)
	c.data[key] = b
	return err
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func sampleRows() []entity.StockRow {
	return []entity.StockRow{
		{Codigo: "A1", Categoria: "Pantallas", Nombre: "Vidrio iPhone", Cantidad: 10, PrecioLocal: decimal.NewFromInt(5000)},
		{Codigo: "B2", Categoria: "Cables", Nombre: "Cable USB", Cantidad: 0, PrecioLocal: decimal.NewFromInt(1500)},
		{Codigo: "C3", Categoria: "Cámaras", Nombre: "Lente Óptico", Cantidad: 2, PrecioLocal: decimal.NewFromInt(900)},
		{Codigo: "D4", Categoria: "Cables", Nombre: "Adaptador", Cantidad: 1, PrecioLocal: decimal.NewFromInt(300)},
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "canon optico", Normalize(" Cañón Óptico "))
	assert.Equal(t, "camaras", Normalize("CÁMARAS"))
	assert.Equal(t, "", Normalize(""))
}

func TestList_SoloConStockYOrdenado(t *testing.T) {
	uc := NewUseCase(&fakeReader{rows: sampleRows()}, nil, time.Minute, "sid", "Stock", nil)
	items, err := uc.List(context.Background(), dto.CatalogQuery{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "D4", items[0].Codigo) // Cables
	assert.Equal(t, "C3", items[1].Codigo) // Cámaras
	assert.Equal(t, "A1", items[2].Codigo) // Pantallas
}

func TestList_FiltrosSinAcentos(t *testing.T) {
	uc := NewUseCase(&fakeReader{rows: sampleRows()}, nil, time.Minute, "sid", "Stock", nil)

	items, err := uc.List(context.Background(), dto.CatalogQuery{Categoria: "camaras"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "C3", items[0].Codigo)

	items, err = uc.List(context.Background(), dto.CatalogQuery{Q: "optico"})
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = uc.List(context.Background(), dto.CatalogQuery{Q: "a1"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A1", items[0].Codigo)
}

func TestCategories(t *testing.T) {
	uc := NewUseCase(&fakeReader{rows: sampleRows()}, nil, time.Minute, "sid", "Stock", nil)
	cats, err := uc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Cables", "Cámaras", "Pantallas"}, cats)
}

func TestList_UsaCache(t *testing.T) {
	reader := &fakeReader{rows: sampleRows()}
	cache := newMemCache()
	uc := NewUseCase(reader, cache, time.Minute, "sid", "Stock", nil)

	_, err := uc.List(context.Background(), dto.CatalogQuery{})
	require.NoError(t, err)
	_, err = uc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, reader.calls)

	require.NoError(t, cache.Delete(context.Background(), CacheKeys("sid", "Stock")...))
	items, err := uc.List(context.Background(), dto.CatalogQuery{})
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, 2, reader.calls)
}

func TestList_ErrorDelLector(t *testing.T) {
	boom := errors.New("boom")
	uc := NewUseCase(&fakeReader{err: boom}, newMemCache(), time.Minute, "sid", "Stock", nil)
	_, err := uc.List(context.Background(), dto.CatalogQuery{})
	assert.ErrorIs(t, err, boom)
}
