// Package labels hojas de etiquetas de precio a partir de la hoja de stock.
package labels

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

const maxLabels = 600

// StockLookup busca filas de stock por código.
type StockLookup interface {
	Lookup(ctx context.Context, spreadsheetID, hoja string, codigos []string) ([]entity.StockRow, error)
}

// UseCase genera el PDF de etiquetas.
type UseCase struct {
	stock         StockLookup
	pdf           ports.LabelPDF
	spreadsheetID string
	hoja          string
	title         string
	log           *logger.Logger
}

// NewUseCase spreadsheetID y hoja se usan cuando el pedido no los indica.
func NewUseCase(stock StockLookup, pdf ports.LabelPDF, spreadsheetID, hoja, title string, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{stock: stock, pdf: pdf, spreadsheetID: spreadsheetID, hoja: hoja, title: title, log: log.Named("etiquetas")}
}

// Generate arma una etiqueta por código y copia, en el orden pedido.
// Un código inexistente en la hoja devuelve ErrNotFound.
func (uc *UseCase) Generate(ctx context.Context, in dto.LabelsRequest) ([]byte, error) {
	sid := firstNonEmpty(in.SpreadsheetID, uc.spreadsheetID)
	hoja := firstNonEmpty(in.Hoja, uc.hoja)
	if sid == "" || hoja == "" {
		return nil, fmt.Errorf("%w: spreadsheet_id y hoja son obligatorios", domain.ErrInvalidInput)
	}
	codigos := make([]string, 0, len(in.Codigos))
	for _, c := range in.Codigos {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, fmt.Errorf("%w: código vacío", domain.ErrInvalidInput)
		}
		codigos = append(codigos, c)
	}
	if len(codigos) == 0 {
		return nil, fmt.Errorf("%w: codigos requerido", domain.ErrInvalidInput)
	}
	copias := in.Copias
	if copias <= 0 {
		copias = 1
	}
	if len(codigos)*copias > maxLabels {
		return nil, fmt.Errorf("%w: máximo %d etiquetas por hoja", domain.ErrInvalidInput, maxLabels)
	}

	rows, err := uc.stock.Lookup(ctx, sid, hoja, codigos)
	if err != nil {
		return nil, err
	}
	byCodigo := make(map[string]entity.StockRow, len(rows))
	for _, r := range rows {
		byCodigo[r.Codigo] = r
	}

	out := make([]ports.Label, 0, len(codigos)*copias)
	for _, c := range codigos {
		r, ok := byCodigo[c]
		if !ok {
			return nil, domain.NotFound("producto", c)
		}
		for i := 0; i < copias; i++ {
			out = append(out, ports.Label{Codigo: r.Codigo, Nombre: r.Nombre, Precio: r.PrecioLocal})
		}
	}

	doc, err := uc.pdf.Labels(uc.title, out)
	if err != nil {
		uc.log.Error().Err(err).Int("etiquetas", len(out)).Msg("error generando etiquetas")
		return nil, err
	}
	return doc, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
