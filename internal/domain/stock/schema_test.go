package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/stock"
)

func TestSchemaV1_Ranges(t *testing.T) {
	s := stock.SchemaV1
	assert.Equal(t, 6, s.Width())
	assert.Equal(t, "Stock!A2:F", s.DataRange("Stock"))
	assert.Equal(t, "Stock!A2:F2", s.RowRange("Stock", 0))
	assert.Equal(t, "Stock!A11:F11", s.RowRange("Stock", 9))
	assert.Equal(t, "'Stock Local'!A2:F", s.DataRange("Stock Local"))
}

func TestSchemaV1_DecodeCeldasFaltantes(t *testing.T) {
	row := stock.SchemaV1.Decode([]string{"C3", "Cables"})
	assert.Equal(t, "C3", row.Codigo)
	assert.Equal(t, "Cables", row.Categoria)
	assert.Equal(t, "", row.Nombre)
	assert.Equal(t, 0, row.Cantidad)
	assert.True(t, row.PrecioLocal.IsZero())
	assert.Nil(t, row.PrecioReferencia)
}

func TestSchemaV1_DecodeNumerosConFormato(t *testing.T) {
	row := stock.SchemaV1.Decode([]string{"C3", "", "Cable", "4.0", "$ 1200.50", "0"})
	assert.Equal(t, 4, row.Cantidad)
	assert.True(t, row.PrecioLocal.Equal(decimal.RequireFromString("1200.50")))
	require.NotNil(t, row.PrecioReferencia)
	assert.True(t, row.PrecioReferencia.IsZero())
}

func TestSchemaV1_DecodeAllOmiteFilasSinCodigo(t *testing.T) {
	rows, pos := stock.SchemaV1.DecodeAll([][]string{
		{"A1", "x", "y", "1", "1"},
		{},
		{"", "huérfana"},
		{"B2", "x", "z", "2", "2"},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, []int{0, 3}, pos)
	assert.Equal(t, "B2", rows[1].Codigo)
}

func TestSchemaFor(t *testing.T) {
	s, err := stock.SchemaFor(1)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Version)

	_, err = stock.SchemaFor(7)
	assert.Error(t, err)
}

func TestColumnLetter(t *testing.T) {
	assert.Equal(t, "A", stock.ColumnLetter(0))
	assert.Equal(t, "F", stock.ColumnLetter(5))
	assert.Equal(t, "Z", stock.ColumnLetter(25))
	assert.Equal(t, "AA", stock.ColumnLetter(26))
	assert.Equal(t, "AZ", stock.ColumnLetter(51))
}
