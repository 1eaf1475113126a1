package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// IndexOf devuelve la posición de la primera fila con el código dado, o -1.
func IndexOf(rows []entity.StockRow, codigo string) int {
	for i := range rows {
		if rows[i].Codigo == codigo {
			return i
		}
	}
	return -1
}

// MergeBatch fusiona cada actualización parcial con la fila existente del mismo código.
// Devuelve una fila por cada entrada de incoming, en el mismo orden. Las filas que solo
// existen en existing no forman parte del resultado.
func MergeBatch(existing []entity.StockRow, incoming []entity.StockRowPatch) []entity.StockRow {
	out := make([]entity.StockRow, 0, len(incoming))
	for _, p := range incoming {
		var base *entity.StockRow
		if i := IndexOf(existing, p.Codigo); i >= 0 {
			base = &existing[i]
		}
		out = append(out, MergeRow(base, p))
	}
	return out
}

// MergeRow aplica la política de fusión sobre base (nil = fila nueva):
//   - categoría y nombre: valor entrante si no está vacío;
//   - cantidad y precio local: valor entrante si es distinto de cero;
//   - precio de referencia: valor entrante si está presente, aunque sea cero.
//
// En cualquier otro caso se conserva el valor existente o el valor por defecto.
func MergeRow(base *entity.StockRow, p entity.StockRowPatch) entity.StockRow {
	var cur entity.StockRow
	if base != nil {
		cur = *base
	}
	row := entity.StockRow{
		Codigo:      p.Codigo,
		Categoria:   cur.Categoria,
		Nombre:      cur.Nombre,
		Cantidad:    cur.Cantidad,
		PrecioLocal: cur.PrecioLocal,
	}
	if p.Categoria != nil && *p.Categoria != "" {
		row.Categoria = *p.Categoria
	}
	if p.Nombre != nil && *p.Nombre != "" {
		row.Nombre = *p.Nombre
	}
	if p.Cantidad != nil && *p.Cantidad != 0 {
		row.Cantidad = *p.Cantidad
	}
	if p.PrecioLocal != nil && !p.PrecioLocal.IsZero() {
		row.PrecioLocal = *p.PrecioLocal
	}
	switch {
	case p.PrecioReferencia != nil:
		row.PrecioReferencia = decimalPtr(*p.PrecioReferencia)
	case cur.PrecioReferencia != nil:
		row.PrecioReferencia = decimalPtr(*cur.PrecioReferencia)
	}
	if row.Cantidad < 0 {
		row.Cantidad = 0
	}
	return row
}

// Decrement resultado de descontar una venta de una fila.
type Decrement struct {
	Row      entity.StockRow // fila con la cantidad nueva
	Index    int             // posición de la fila en existing
	Previous int             // cantidad antes de la venta
	Oversold int             // unidades vendidas por encima del stock disponible
}

// DecrementQuantity descuenta sold unidades de la fila con el código dado.
// La cantidad resultante es max(0, actual - sold): una venta mayor al stock se recorta
// a cero y el excedente se informa en Oversold.
func DecrementQuantity(existing []entity.StockRow, codigo string, sold int) (Decrement, error) {
	if sold < 0 {
		return Decrement{}, domain.ErrInvalidInput
	}
	i := IndexOf(existing, codigo)
	if i < 0 {
		return Decrement{}, domain.NotFound("producto", codigo)
	}
	row := existing[i]
	if row.PrecioReferencia != nil {
		row.PrecioReferencia = decimalPtr(*row.PrecioReferencia)
	}
	prev := row.Cantidad
	next := prev - sold
	oversold := 0
	if next < 0 {
		oversold = -next
		next = 0
	}
	row.Cantidad = next
	return Decrement{Row: row, Index: i, Previous: prev, Oversold: oversold}, nil
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
