// Package sheets adaptador del RowStore sobre la API de Google Sheets v4.
package sheets

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

const (
	service       = "sheets"
	valueInputRaw = "RAW"
)

// Verificar en tiempo de compilación que RowStore implementa el puerto.
var _ repository.RowStore = (*RowStore)(nil)

// RowStore lee y escribe rangos A1. Los números se leen sin formato y se escriben en RAW
// para no depender de la configuración regional de la hoja: un texto como "00123" o
// "=1+1" se guarda literal y los números viajan como números JSON.
type RowStore struct {
	svc *gsheets.Service
}

// NewRowStore crea el cliente. Con credentialsFile vacío se usan las credenciales por defecto del entorno.
func NewRowStore(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*RowStore, error) {
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, option.WithScopes(gsheets.SpreadsheetsScope))
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: crear servicio: %w", err)
	}
	return &RowStore{svc: svc}, nil
}

func (s *RowStore) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, domain.Upstream(service, "leer "+rng, err)
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		out[i] = cells
	}
	return out, nil
}

func (s *RowStore) WriteRows(ctx context.Context, spreadsheetID string, writes []repository.RowWrite) error {
	if len(writes) == 0 {
		return nil
	}
	req := &gsheets.BatchUpdateValuesRequest{
		ValueInputOption: valueInputRaw,
		Data:             make([]*gsheets.ValueRange, 0, len(writes)),
	}
	for _, w := range writes {
		req.Data = append(req.Data, &gsheets.ValueRange{Range: w.Range, Values: w.Values})
	}
	if _, err := s.svc.Spreadsheets.Values.BatchUpdate(spreadsheetID, req).Context(ctx).Do(); err != nil {
		return domain.Upstream(service, "escritura por lotes", err)
	}
	return nil
}

func (s *RowStore) WriteRange(ctx context.Context, spreadsheetID, rng string, values [][]any) error {
	_, err := s.svc.Spreadsheets.Values.Update(spreadsheetID, rng, &gsheets.ValueRange{Values: values}).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return domain.Upstream(service, "escribir "+rng, err)
	}
	return nil
}

// cellString convierte el valor crudo de la API. Los enteros grandes (códigos de barra)
// llegan como float64 y no deben salir en notación científica.
func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(t)
	}
}
