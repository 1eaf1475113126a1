package ports

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// Label datos de una etiqueta de góndola.
type Label struct {
	Codigo string
	Nombre string
	Precio decimal.Decimal
}

// LabelPDF genera una hoja A4 con etiquetas.
type LabelPDF interface {
	Labels(title string, labels []Label) ([]byte, error)
}

// TicketPDF genera el comprobante de una venta en formato de ticket.
type TicketPDF interface {
	Ticket(negocio string, sale *entity.Sale, customerName string) ([]byte, error)
}
