package main

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestParseCSV_ComaYEncabezadoLibre(t *testing.T) {
	in := "nombre,codigo,cantidad,precio_local\n" +
		"iPhone Glass,A1,10,5000\n" +
		",,,\n" +
		"Cable,B2,,1500.5\n"
	rows, err := parseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "A1", rows[0].Codigo)
	assert.Equal(t, "iPhone Glass", *rows[0].Nombre)
	assert.Equal(t, 10, *rows[0].Cantidad)
	assert.Nil(t, rows[1].Cantidad)
	assert.True(t, rows[1].PrecioLocal.Equal(decimal.RequireFromString("1500.5")))
	assert.Nil(t, rows[1].PrecioReferencia)
}

func TestParseCSV_PuntoYComaLatin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("codigo;categoria;nombre;precio_referencia\nC3;Baterías;Batería 5000mAh;1.500,50\nC3;Baterías;Batería repetida;10\n")
	require.NoError(t, err)

	rows, err := parseCSV(transform.NewReader(strings.NewReader(raw), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Baterías", *rows[0].Categoria)
	assert.Equal(t, "Batería repetida", *rows[0].Nombre)
	assert.True(t, rows[0].PrecioReferencia.Equal(decimal.NewFromInt(10)))
}

func TestParseCSV_Errores(t *testing.T) {
	_, err := parseCSV(strings.NewReader("nombre,cantidad\nx,1\n"))
	assert.Error(t, err)

	_, err = parseCSV(strings.NewReader("codigo,cantidad\nA1,-3\n"))
	assert.Error(t, err)

	_, err = parseCSV(strings.NewReader("codigo,precio_local\nA1,abc\n"))
	assert.Error(t, err)
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "1500.50", normalizeNumber("$1.500,50"))
	assert.Equal(t, "1500.50", normalizeNumber("1500.50"))
	assert.Equal(t, "25000", normalizeNumber(" 25000 "))
}
