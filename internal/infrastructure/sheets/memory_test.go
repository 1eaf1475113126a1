package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

func TestMemoryStore_ReadRange(t *testing.T) {
	m := NewMemoryStore()
	m.Seed("sid", "Stock", [][]string{
		{"codigo", "categoria", "nombre", "cantidad", "precio", "ref"},
		{"A1", "Screens", "iPhone Glass", "10", "5000", "40"},
		{"B2", "Cables", "USB", "3", "100"},
	})

	rows, err := m.ReadRange(context.Background(), "sid", "Stock!A2:F")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A1", rows[0][0])
	assert.Len(t, rows[1], 5)

	one, err := m.ReadRange(context.Background(), "sid", "Stock!A3:F3")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"B2", "Cables", "USB", "3", "100"}}, one)
}

func TestMemoryStore_WriteRowsYRange(t *testing.T) {
	m := NewMemoryStore()
	m.Seed("sid", "Mi hoja", [][]string{{"h"}, {"A1", "x", "y", "1", "2", ""}})

	err := m.WriteRows(context.Background(), "sid", []repository.RowWrite{
		{Range: "'Mi hoja'!A2:F2", Values: [][]any{{"A1", "x", "y", 9, 2.0, ""}}},
		{Range: "'Mi hoja'!A4:F4", Values: [][]any{{"C3", "z", "w", 1, 1.5, 0.0}}},
	})
	require.NoError(t, err)
	require.NoError(t, m.WriteRange(context.Background(), "sid", "'Mi hoja'!D2:D2", [][]any{{8}}))

	rows := m.Rows("sid", "Mi hoja")
	require.Len(t, rows, 4)
	assert.Equal(t, "8", rows[1][3])
	assert.Nil(t, rows[2])
	assert.Equal(t, "C3", rows[3][0])
	assert.Equal(t, []string{"C3", "z", "w", "1", "1.5", "0"}, rows[3])
	assert.Equal(t, 2, m.Writes)
}

func TestMemoryStore_RangoInvalido(t *testing.T) {
	m := NewMemoryStore()
	_, err := m.ReadRange(context.Background(), "sid", "sin-hoja")
	assert.Error(t, err)
}
