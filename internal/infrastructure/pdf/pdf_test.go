package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"999":     "999",
		"25000":   "25.000",
		"1000000": "1.000.000",
		"1500.5":  "1.500,50",
		"-4200":   "-4.200",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatMoney(in), in)
	}
}

func TestLabelGenerator_GeneraPDF(t *testing.T) {
	labels := []ports.Label{
		{Codigo: "A1", Nombre: "iPhone Glass", Precio: decimal.NewFromInt(5000)},
		{Codigo: "7790001234567", Nombre: "Cable USB-C reforzado de dos metros con malla", Precio: decimal.NewFromInt(1500)},
		{Codigo: "Ñ-1", Nombre: "Funda", Precio: decimal.NewFromInt(800)},
		{Codigo: "B2", Nombre: "Cargador", Precio: decimal.NewFromInt(3200)},
	}
	out, err := NewLabelGenerator().Labels("Mi Tienda", labels)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestTicketGenerator_GeneraPDF(t *testing.T) {
	sale := &entity.Sale{
		Numero:        "00042",
		PaymentMethod: entity.PaymentCash,
		Items: []entity.SaleItem{
			{Codigo: "A1", Nombre: "iPhone Glass", Cantidad: 2, Precio: decimal.NewFromInt(5000), Subtotal: decimal.NewFromInt(10000)},
			{Codigo: "B2", Cantidad: 1, Precio: decimal.RequireFromString("1500.5"), Subtotal: decimal.RequireFromString("1500.5")},
		},
		Total:     decimal.RequireFromString("11500.5"),
		CreatedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
	}
	out, err := NewTicketGenerator().Ticket("Tienda Ñandú", sale, "José")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$10.000", money(decimal.NewFromInt(10000)))
	assert.Equal(t, "$1.500,50", money(decimal.RequireFromString("1500.5")))
}
