// Package stock contiene la lógica de conciliación de inventario contra la hoja de cálculo:
// mapeo explícito de columnas, fusión de actualizaciones parciales y descuento por venta.
package stock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// Field campo con nombre de una fila de stock.
type Field int

const (
	FieldCodigo Field = iota
	FieldCategoria
	FieldNombre
	FieldCantidad
	FieldPrecioLocal
	FieldPrecioReferencia
)

// Schema describe cómo se guarda una StockRow en columnas de la hoja.
// Un cambio de layout en la hoja se resuelve agregando una versión nueva aquí.
type Schema struct {
	Version    int
	HeaderRows int // filas de encabezado antes de los datos
	Columns    map[Field]int
}

// SchemaV1 layout original: A=código, B=categoría, C=nombre, D=cantidad, E=precio local, F=precio referencia.
var SchemaV1 = Schema{
	Version:    1,
	HeaderRows: 1,
	Columns: map[Field]int{
		FieldCodigo:           0,
		FieldCategoria:        1,
		FieldNombre:           2,
		FieldCantidad:         3,
		FieldPrecioLocal:      4,
		FieldPrecioReferencia: 5,
	},
}

var schemas = map[int]Schema{1: SchemaV1}

// SchemaFor devuelve el schema de la versión pedida o error si no existe.
func SchemaFor(version int) (Schema, error) {
	s, ok := schemas[version]
	if !ok {
		return Schema{}, fmt.Errorf("schema de stock v%d desconocido", version)
	}
	return s, nil
}

// Width cantidad de columnas que ocupa una fila.
func (s Schema) Width() int {
	w := 0
	for _, idx := range s.Columns {
		if idx+1 > w {
			w = idx + 1
		}
	}
	return w
}

// DataRange rango A1 con todas las filas de datos de la hoja (ej. "Stock!A2:F").
func (s Schema) DataRange(sheet string) string {
	return fmt.Sprintf("%s!A%d:%s", quoteSheet(sheet), s.HeaderRows+1, ColumnLetter(s.Width()-1))
}

// RowRange rango A1 de la fila de datos con índice idx (base 0).
func (s Schema) RowRange(sheet string, idx int) string {
	n := s.HeaderRows + idx + 1
	return fmt.Sprintf("%s!A%d:%s%d", quoteSheet(sheet), n, ColumnLetter(s.Width()-1), n)
}

// Decode convierte las celdas de una fila en StockRow. Celdas faltantes o vacías
// toman el valor por defecto ("" o 0); números ilegibles también.
func (s Schema) Decode(cells []string) entity.StockRow {
	cell := func(f Field) string {
		idx, ok := s.Columns[f]
		if !ok || idx >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[idx])
	}
	row := entity.StockRow{
		Codigo:      cell(FieldCodigo),
		Categoria:   cell(FieldCategoria),
		Nombre:      cell(FieldNombre),
		Cantidad:    parseInt(cell(FieldCantidad)),
		PrecioLocal: parseDecimal(cell(FieldPrecioLocal)),
	}
	if ref := cell(FieldPrecioReferencia); ref != "" {
		d := parseDecimal(ref)
		row.PrecioReferencia = &d
	}
	return row
}

// Encode convierte una StockRow en celdas tipadas en el orden de columnas del schema:
// textos como string, cantidad como int y precios como float64. Un precio de referencia
// ausente se escribe como "" para vaciar la celda.
func (s Schema) Encode(row entity.StockRow) []any {
	cells := make([]any, s.Width())
	for i := range cells {
		cells[i] = ""
	}
	set := func(f Field, v any) {
		if idx, ok := s.Columns[f]; ok {
			cells[idx] = v
		}
	}
	set(FieldCodigo, row.Codigo)
	set(FieldCategoria, row.Categoria)
	set(FieldNombre, row.Nombre)
	set(FieldCantidad, row.Cantidad)
	set(FieldPrecioLocal, row.PrecioLocal.InexactFloat64())
	if row.PrecioReferencia != nil {
		set(FieldPrecioReferencia, row.PrecioReferencia.InexactFloat64())
	}
	return cells
}

// DecodeAll decodifica un rango completo, omitiendo filas sin código.
// Devuelve también la posición original de cada fila dentro del rango.
func (s Schema) DecodeAll(values [][]string) ([]entity.StockRow, []int) {
	rows := make([]entity.StockRow, 0, len(values))
	pos := make([]int, 0, len(values))
	for i, cells := range values {
		row := s.Decode(cells)
		if row.Codigo == "" {
			continue
		}
		rows = append(rows, row)
		pos = append(pos, i)
	}
	return rows, pos
}

// ColumnLetter convierte un índice de columna base 0 en letra A1 (0 → A, 26 → AA).
func ColumnLetter(idx int) string {
	var b []byte
	for n := idx + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

func quoteSheet(sheet string) string {
	if strings.ContainsAny(sheet, " '!") {
		return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	}
	return sheet
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return int(parseDecimal(s).IntPart())
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
