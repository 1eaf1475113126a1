// seedstock carga en la hoja de stock un CSV exportado de otro sistema (punto de venta,
// planilla vieja). Las filas se concilian igual que POST /api/stock/sync: los códigos
// existentes se actualizan en su lugar y los nuevos se agregan al final.
//
// Uso: go run ./cmd/seedstock -file stock.csv [-sheet Stock] [-latin1] [-dry-run]
//
// Columnas reconocidas por encabezado (orden libre): codigo, categoria, nombre,
// cantidad, precio_local, precio_referencia. Separador "," o ";".
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/stock"
	"github.com/jhoicas/tienda-api/internal/infrastructure/sheets"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

const batchSize = 500

func main() {
	file := flag.String("file", "stock.csv", "CSV a importar")
	sheet := flag.String("sheet", "", "pestaña destino (por defecto SHEETS_STOCK_SHEET)")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	dryRun := flag.Bool("dry-run", false, "solo validar y mostrar el resumen")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seedstock"})

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var src io.Reader = f
	if *latin1 {
		src = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := parseCSV(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if *dryRun {
		fmt.Printf("%d filas válidas en %s\n", len(rows), *file)
		return
	}

	hoja := *sheet
	if hoja == "" {
		hoja = cfg.Sheets.StockSheet
	}
	if cfg.Sheets.SpreadsheetID == "" {
		fmt.Fprintln(os.Stderr, "SHEETS_SPREADSHEET_ID es obligatorio")
		os.Exit(1)
	}
	schema, err := stock.SchemaFor(cfg.Sheets.SchemaVersion)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Esquema: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := sheets.NewRowStore(ctx, cfg.Sheets.CredentialsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hoja de cálculo: %v\n", err)
		os.Exit(1)
	}
	uc := inventory.NewReconcileUseCase(store, schema, nil, nil, nil,
		inventory.ReconcileConfig{Timeout: cfg.Sheets.Timeout}, log)

	updated, created := 0, 0
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		out, err := uc.SyncStock(ctx, dto.SyncStockRequest{
			StockTarget: dto.StockTarget{SpreadsheetID: cfg.Sheets.SpreadsheetID, Hoja: hoja},
			Rows:        rows[start:end],
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Lote %d-%d: %v\n", start+1, end, err)
			os.Exit(1)
		}
		updated += out.Updated
		created += out.Created
	}
	fmt.Printf("Importadas %d filas en %s: %d actualizadas, %d nuevas\n", len(rows), hoja, updated, created)
}

// parseCSV lee el encabezado para ubicar las columnas. Filas sin código se ignoran;
// un código repetido conserva la última aparición.
func parseCSV(r io.Reader) ([]dto.StockRowInput, error) {
	br := bufio.NewReader(r)
	first, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	rd := csv.NewReader(br)
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true
	if line, _, _ := bytes.Cut(first, []byte("\n")); bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		rd.Comma = ';'
	}

	header, err := rd.Read()
	if err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := cols["codigo"]; !ok {
		return nil, fmt.Errorf("falta la columna codigo")
	}

	var out []dto.StockRowInput
	seen := make(map[string]int)
	for line := 2; ; line++ {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(name string) (string, bool) {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return "", false
			}
			v := strings.TrimSpace(rec[i])
			return v, v != ""
		}
		codigo, _ := get("codigo")
		if codigo == "" {
			continue
		}
		in := dto.StockRowInput{Codigo: codigo}
		if v, ok := get("categoria"); ok {
			in.Categoria = &v
		}
		if v, ok := get("nombre"); ok {
			in.Nombre = &v
		}
		if v, ok := get("cantidad"); ok {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("línea %d: cantidad %q inválida", line, v)
			}
			in.Cantidad = &n
		}
		for name, dst := range map[string]**decimal.Decimal{
			"precio_local":      &in.PrecioLocal,
			"precio_referencia": &in.PrecioReferencia,
		} {
			v, ok := get(name)
			if !ok {
				continue
			}
			d, err := decimal.NewFromString(normalizeNumber(v))
			if err != nil || d.IsNegative() {
				return nil, fmt.Errorf("línea %d: %s %q inválido", line, name, v)
			}
			*dst = &d
		}
		if i, dup := seen[codigo]; dup {
			out[i] = in
			continue
		}
		seen[codigo] = len(out)
		out = append(out, in)
	}
	return out, nil
}

// normalizeNumber acepta "1.500,50" y "1500.50".
func normalizeNumber(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strings.TrimSpace(s)
}
