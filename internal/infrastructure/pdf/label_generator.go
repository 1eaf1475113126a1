// Package pdf genera los documentos imprimibles del negocio: hojas de etiquetas
// de precio (A4, Maroto) y tickets de venta (80 mm, fpdf).
//
// Layout de la hoja de etiquetas:
//
//	┌──────────────────────────────────────────┐
//	│  TÍTULO (negocio)                         │
//	│  ┌──────────┐ ┌──────────┐ ┌──────────┐  │
//	│  │ nombre   │ │ nombre   │ │ nombre   │  │
//	│  │ $ precio │ │ $ precio │ │ $ precio │  │
//	│  │ ||||||| │ │ ||||||| │ │ ||||||| │  │
//	│  └──────────┘ └──────────┘ └──────────┘  │
//	└──────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/tienda-api/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// labelsPerRow etiquetas por fila de la grilla (12 columnas / 4).
const labelsPerRow = 3

var _ ports.LabelPDF = (*LabelGenerator)(nil)

// LabelGenerator implementa ports.LabelPDF usando Maroto v2.
type LabelGenerator struct{}

// NewLabelGenerator construye el generador.
func NewLabelGenerator() *LabelGenerator { return &LabelGenerator{} }

// Labels genera la hoja y devuelve sus bytes.
func (g *LabelGenerator) Labels(title string, labels []ports.Label) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiquetas de precio", true).
		WithAuthor(title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
	)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for start := 0; start < len(labels); start += labelsPerRow {
		end := start + labelsPerRow
		if end > len(labels) {
			end = len(labels)
		}
		m.AddRows(labelRows(labels[start:end])...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

// labelRows arma una fila de etiquetas: textos, código de barras y separador.
func labelRows(group []ports.Label) []core.Row {
	size := 12 / labelsPerRow
	texts := make([]core.Col, 0, labelsPerRow)
	bars := make([]core.Col, 0, labelsPerRow)
	for _, l := range group {
		texts = append(texts, col.New(size).Add(
			text.New(truncate(l.Nombre, 34), props.Text{Size: 8, Top: 1, Left: 1, Right: 1}),
			text.New(money(l.Precio), props.Text{Style: fontstyle.Bold, Size: 13, Top: 6, Left: 1}),
		))
		bars = append(bars, barcodeCol(size, l.Codigo))
	}
	for len(texts) < labelsPerRow {
		texts = append(texts, col.New(size))
		bars = append(bars, col.New(size))
	}
	return []core.Row{
		row.New(14).Add(texts...),
		row.New(14).Add(bars...),
		line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.1}),
	}
}

// barcodeCol Code128 del código; si el código no es ASCII imprimible se muestra como texto.
func barcodeCol(size int, codigo string) core.Col {
	if !printableASCII(codigo) {
		return col.New(size).Add(text.New(codigo, props.Text{Size: 8, Align: align.Center, Top: 4}))
	}
	return col.New(size).Add(code.NewBar(codigo, props.Barcode{Percent: 90, Center: true}))
}

func printableASCII(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// FormatMoney inserta puntos de miles en la parte entera y conserva hasta dos decimales con coma.
// Ej: "25000" → "25.000", "1500.5" → "1.500,50".
func FormatMoney(s string) string {
	intPart, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i+1:]
			break
		}
	}
	neg := len(intPart) > 0 && intPart[0] == '-'
	if neg {
		intPart = intPart[1:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		buf = append(buf, ',')
		buf = append(buf, frac[:2]...)
	}
	return string(buf)
}
