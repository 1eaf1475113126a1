package sheets

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.RowStore = (*MemoryStore)(nil)

// MemoryStore RowStore en memoria para desarrollo local y tests. Entiende rangos A1
// simples de la forma Hoja!A2:F o 'Mi hoja'!A5:F5.
type MemoryStore struct {
	mu     sync.Mutex
	sheets map[string][][]string // spreadsheetID|hoja → filas desde la fila 1

	// Writes cuenta las llamadas de escritura recibidas.
	Writes int
}

// NewMemoryStore crea un almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: make(map[string][][]string)}
}

// Seed carga filas en la hoja empezando en la fila 1.
func (m *MemoryStore) Seed(spreadsheetID, sheet string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[spreadsheetID+"|"+sheet] = cloneRows(rows)
}

// Rows devuelve una copia del contenido de la hoja.
func (m *MemoryStore) Rows(spreadsheetID, sheet string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneRows(m.sheets[spreadsheetID+"|"+sheet])
}

func (m *MemoryStore) ReadRange(_ context.Context, spreadsheetID, rng string) ([][]string, error) {
	r, err := parseA1(rng)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data := m.sheets[spreadsheetID+"|"+r.sheet]
	var out [][]string
	for n := r.startRow; n <= len(data) && (r.endRow == 0 || n <= r.endRow); n++ {
		src := data[n-1]
		var cells []string
		for c := r.startCol; c <= r.endCol && c < len(src); c++ {
			cells = append(cells, src[c])
		}
		out = append(out, trimTrailing(cells))
	}
	// la API omite filas vacías al final del rango
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *MemoryStore) WriteRows(ctx context.Context, spreadsheetID string, writes []repository.RowWrite) error {
	for _, w := range writes {
		if _, err := parseA1(w.Range); err != nil {
			return err
		}
	}
	for _, w := range writes {
		if err := m.write(spreadsheetID, w.Range, w.Values); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Writes++
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) WriteRange(_ context.Context, spreadsheetID, rng string, values [][]any) error {
	if err := m.write(spreadsheetID, rng, values); err != nil {
		return err
	}
	m.mu.Lock()
	m.Writes++
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) write(spreadsheetID, rng string, values [][]any) error {
	r, err := parseA1(rng)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := spreadsheetID + "|" + r.sheet
	data := m.sheets[key]
	for i, row := range values {
		n := r.startRow + i
		for len(data) < n {
			data = append(data, nil)
		}
		dst := data[n-1]
		for j, v := range row {
			c := r.startCol + j
			for len(dst) <= c {
				dst = append(dst, "")
			}
			dst[c] = cellString(v)
		}
		data[n-1] = dst
	}
	m.sheets[key] = data
	return nil
}

type a1Range struct {
	sheet            string
	startCol, endCol int
	startRow, endRow int // endRow 0 = hasta el final
}

var a1Re = regexp.MustCompile(`^(?:'((?:[^']|'')+)'|([^!]+))!([A-Z]+)(\d+):([A-Z]+)(\d*)$`)

func parseA1(rng string) (a1Range, error) {
	m := a1Re.FindStringSubmatch(rng)
	if m == nil {
		return a1Range{}, fmt.Errorf("rango A1 no soportado: %q", rng)
	}
	sheet := m[2]
	if m[1] != "" {
		sheet = strings.ReplaceAll(m[1], "''", "'")
	}
	start, _ := strconv.Atoi(m[4])
	r := a1Range{
		sheet:    sheet,
		startCol: columnIndex(m[3]),
		endCol:   columnIndex(m[5]),
		startRow: start,
	}
	if m[6] != "" {
		r.endRow, _ = strconv.Atoi(m[6])
	}
	return r, nil
}

func columnIndex(letters string) int {
	n := 0
	for _, ch := range letters {
		n = n*26 + int(ch-'A'+1)
	}
	return n - 1
}

func trimTrailing(cells []string) []string {
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
