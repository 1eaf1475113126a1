package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// LowStock lista las filas con cantidad menor o igual al umbral, primero las más críticas.
// threshold < 0 usa el umbral de aviso configurado.
func (uc *ReconcileUseCase) LowStock(ctx context.Context, spreadsheetID, hoja string, threshold int) (*dto.LowStockResponse, error) {
	if threshold < 0 {
		threshold = uc.cfg.AlertThreshold
	}
	if err := validateTarget(dto.StockTarget{SpreadsheetID: spreadsheetID, Hoja: hoja}); err != nil {
		return nil, err
	}
	rows, err := uc.Rows(ctx, spreadsheetID, hoja)
	if err != nil {
		return nil, err
	}
	out := make([]entity.StockRow, 0)
	for _, r := range rows {
		if r.Cantidad <= threshold {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Cantidad != out[j].Cantidad {
			return out[i].Cantidad < out[j].Cantidad
		}
		return out[i].Nombre < out[j].Nombre
	})
	return &dto.LowStockResponse{Envelope: dto.Success(), Threshold: threshold, Items: out}, nil
}
