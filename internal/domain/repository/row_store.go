package repository

import "context"

// RowWrite reemplazo de un rango A1 por valores nuevos (una fila por elemento).
// Las celdas se escriben tal cual: string queda como texto literal (sin interpretar
// fórmulas, fechas ni ceros a la izquierda); int y float64 quedan como número.
type RowWrite struct {
	Range  string
	Values [][]any
}

// RowStore puerto hacia la hoja de cálculo que guarda el inventario.
// Las celdas vacías o faltantes se devuelven como "".
type RowStore interface {
	// ReadRange devuelve las filas del rango en orden.
	ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
	// WriteRows sobrescribe varios rangos en una sola llamada, uno a uno por posición.
	WriteRows(ctx context.Context, spreadsheetID string, writes []RowWrite) error
	// WriteRange sobrescribe un único rango.
	WriteRange(ctx context.Context, spreadsheetID, rng string, values [][]any) error
}
