// Package inventory concilia el stock contra la hoja de cálculo: carga masiva de filas
// y descuento por venta, con escritura serializada por fila y verificación de versión.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/domain/stock"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

const rowStoreService = "sheets"

// ReconcileConfig parámetros del caso de uso.
type ReconcileConfig struct {
	Timeout        time.Duration // tiempo máximo por llamada a la hoja
	AlertThreshold int           // aviso cuando una venta deja la cantidad en este valor o menos
}

// ReconcileUseCase lee, fusiona y escribe filas de stock en la hoja.
type ReconcileUseCase struct {
	store    repository.RowStore
	schema   stock.Schema
	locks    *KeyedLocker
	cache    ports.Cache
	notifier ports.Notifier
	cfg      ReconcileConfig
	log      *logger.Logger
}

// NewReconcileUseCase construye el caso de uso. cache, notifier y log pueden ser nil.
func NewReconcileUseCase(
	store repository.RowStore,
	schema stock.Schema,
	locks *KeyedLocker,
	cache ports.Cache,
	notifier ports.Notifier,
	cfg ReconcileConfig,
	log *logger.Logger,
) *ReconcileUseCase {
	if locks == nil {
		locks = NewKeyedLocker()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReconcileUseCase{
		store:    store,
		schema:   schema,
		locks:    locks,
		cache:    cache,
		notifier: notifier,
		cfg:      cfg,
		log:      log.Named("inventory"),
	}
}

// SoldItem unidades vendidas de un código.
type SoldItem struct {
	Codigo   string
	Cantidad int
}

// SyncStock fusiona el lote con las filas existentes y lo escribe en una sola llamada:
// las filas conocidas en su posición actual, las nuevas a continuación de la última.
func (uc *ReconcileUseCase) SyncStock(ctx context.Context, req dto.SyncStockRequest) (*dto.SyncStockResponse, error) {
	if err := validateTarget(req.StockTarget); err != nil {
		return nil, err
	}
	if len(req.Rows) == 0 {
		return nil, fmt.Errorf("%w: rows vacío", domain.ErrInvalidInput)
	}
	patches := make([]entity.StockRowPatch, 0, len(req.Rows))
	keys := make([]string, 0, len(req.Rows))
	seen := make(map[string]struct{}, len(req.Rows))
	for _, in := range req.Rows {
		codigo := strings.TrimSpace(in.Codigo)
		if codigo == "" {
			return nil, fmt.Errorf("%w: codigo requerido en todas las filas", domain.ErrInvalidInput)
		}
		if _, dup := seen[codigo]; dup {
			return nil, fmt.Errorf("%w: codigo %q repetido en el lote", domain.ErrInvalidInput, codigo)
		}
		seen[codigo] = struct{}{}
		p := in.Patch()
		p.Codigo = codigo
		patches = append(patches, p)
		keys = append(keys, RowKey(req.SpreadsheetID, req.Hoja, codigo))
	}
	// cualquier código puede resultar alta: se serializan las altas de la hoja
	keys = append(keys, SheetKey(req.SpreadsheetID, req.Hoja))

	unlock := uc.locks.Lock(keys...)
	defer unlock()

	dataRange := uc.schema.DataRange(req.Hoja)
	values, err := uc.read(ctx, req.SpreadsheetID, dataRange)
	if err != nil {
		return nil, err
	}
	existing, pos := uc.schema.DecodeAll(values)
	merged := stock.MergeBatch(existing, patches)

	resp := &dto.SyncStockResponse{Envelope: dto.Success(), Rows: merged}
	writes := make([]repository.RowWrite, 0, len(merged))
	touched := make([]int, 0, len(merged))
	next := len(values)
	for _, row := range merged {
		var at int
		if i := stock.IndexOf(existing, row.Codigo); i >= 0 {
			at = pos[i]
			resp.Updated++
		} else {
			at = next
			next++
			resp.Created++
		}
		touched = append(touched, at)
		writes = append(writes, repository.RowWrite{
			Range:  uc.schema.RowRange(req.Hoja, at),
			Values: [][]any{uc.schema.Encode(row)},
		})
	}

	if err := uc.checkUnchanged(ctx, req.SpreadsheetID, dataRange, values, touched); err != nil {
		return nil, err
	}
	if err := uc.writeRows(ctx, req.SpreadsheetID, writes); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, req.SpreadsheetID, req.Hoja)

	uc.log.Info().
		Str("spreadsheet_id", req.SpreadsheetID).
		Str("hoja", req.Hoja).
		Int("updated", resp.Updated).
		Int("created", resp.Created).
		Msg("stock sincronizado")
	return resp, nil
}

// RegisterSale descuenta una venta de una fila y escribe solo ese rango.
func (uc *ReconcileUseCase) RegisterSale(ctx context.Context, req dto.DecrementRequest) (*dto.DecrementResponse, error) {
	if req.Cantidad == nil {
		return nil, fmt.Errorf("%w: cantidad requerida", domain.ErrInvalidInput)
	}
	decs, err := uc.RegisterSaleItems(ctx, req.StockTarget, []SoldItem{{Codigo: req.Codigo, Cantidad: *req.Cantidad}})
	if err != nil {
		return nil, err
	}
	d := decs[0]
	return &dto.DecrementResponse{
		Envelope: dto.Success(),
		Row:      d.Row,
		Previous: d.Previous,
		Oversold: d.Oversold,
	}, nil
}

// RegisterSaleItems descuenta varias líneas de venta bajo un mismo lock. Líneas con el mismo
// código se suman. Si algún código no existe no se escribe nada.
func (uc *ReconcileUseCase) RegisterSaleItems(ctx context.Context, target dto.StockTarget, items []SoldItem) ([]stock.Decrement, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: sin ítems", domain.ErrInvalidInput)
	}
	order := make([]string, 0, len(items))
	sold := make(map[string]int, len(items))
	keys := make([]string, 0, len(items))
	for _, it := range items {
		codigo := strings.TrimSpace(it.Codigo)
		if codigo == "" {
			return nil, fmt.Errorf("%w: codigo requerido", domain.ErrInvalidInput)
		}
		if it.Cantidad < 0 {
			return nil, fmt.Errorf("%w: cantidad negativa para %q", domain.ErrInvalidInput, codigo)
		}
		if _, ok := sold[codigo]; !ok {
			order = append(order, codigo)
			keys = append(keys, RowKey(target.SpreadsheetID, target.Hoja, codigo))
		}
		sold[codigo] += it.Cantidad
	}

	unlock := uc.locks.Lock(keys...)
	defer unlock()

	dataRange := uc.schema.DataRange(target.Hoja)
	values, err := uc.read(ctx, target.SpreadsheetID, dataRange)
	if err != nil {
		return nil, err
	}
	existing, pos := uc.schema.DecodeAll(values)

	decs := make([]stock.Decrement, 0, len(order))
	for _, codigo := range order {
		d, err := stock.DecrementQuantity(existing, codigo, sold[codigo])
		if err != nil {
			return nil, err
		}
		decs = append(decs, d)
	}

	writes := make([]repository.RowWrite, 0, len(decs))
	for _, d := range decs {
		at := pos[d.Index]
		rng := uc.schema.RowRange(target.Hoja, at)
		if err := uc.checkRowUnchanged(ctx, target.SpreadsheetID, rng, values[at]); err != nil {
			return nil, err
		}
		writes = append(writes, repository.RowWrite{Range: rng, Values: [][]any{uc.schema.Encode(d.Row)}})
	}

	if len(writes) == 1 {
		err = uc.writeRange(ctx, target.SpreadsheetID, writes[0].Range, writes[0].Values)
	} else {
		err = uc.writeRows(ctx, target.SpreadsheetID, writes)
	}
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, target.SpreadsheetID, target.Hoja)
	// los avisos salen por red: no se envían con las filas tomadas
	unlock()

	for _, d := range decs {
		var ev *zerolog.Event
		if d.Oversold > 0 {
			ev = uc.log.Warn().Int("oversold", d.Oversold)
		} else {
			ev = uc.log.Info()
		}
		ev.Str("hoja", target.Hoja).
			Str("codigo", d.Row.Codigo).
			Int("previous", d.Previous).
			Int("cantidad", d.Row.Cantidad).
			Msg("venta descontada de stock")
		uc.alertLowStock(ctx, d)
	}
	return decs, nil
}

// Rows devuelve las filas de la hoja en orden, sin las que no tienen código.
func (uc *ReconcileUseCase) Rows(ctx context.Context, spreadsheetID, hoja string) ([]entity.StockRow, error) {
	if err := validateTarget(dto.StockTarget{SpreadsheetID: spreadsheetID, Hoja: hoja}); err != nil {
		return nil, err
	}
	values, err := uc.read(ctx, spreadsheetID, uc.schema.DataRange(hoja))
	if err != nil {
		return nil, err
	}
	rows, _ := uc.schema.DecodeAll(values)
	return rows, nil
}

// Lookup devuelve las filas de los códigos pedidos, en el mismo orden. NotFound con el primer faltante.
func (uc *ReconcileUseCase) Lookup(ctx context.Context, spreadsheetID, hoja string, codigos []string) ([]entity.StockRow, error) {
	rows, err := uc.Rows(ctx, spreadsheetID, hoja)
	if err != nil {
		return nil, err
	}
	out := make([]entity.StockRow, 0, len(codigos))
	for _, c := range codigos {
		i := stock.IndexOf(rows, strings.TrimSpace(c))
		if i < 0 {
			return nil, domain.NotFound("producto", c)
		}
		out = append(out, rows[i])
	}
	return out, nil
}

// checkUnchanged vuelve a leer el rango completo y compara las filas que se van a escribir
// y la cantidad de filas (las altas se agregan al final).
func (uc *ReconcileUseCase) checkUnchanged(ctx context.Context, spreadsheetID, rng string, snapshot [][]string, touched []int) error {
	current, err := uc.read(ctx, spreadsheetID, rng)
	if err != nil {
		return err
	}
	if len(current) != len(snapshot) {
		return uc.conflict(rng)
	}
	for _, at := range touched {
		if at >= len(snapshot) {
			continue
		}
		if !sameCells(current[at], snapshot[at]) {
			return uc.conflict(rng)
		}
	}
	return nil
}

func (uc *ReconcileUseCase) checkRowUnchanged(ctx context.Context, spreadsheetID, rng string, snapshot []string) error {
	current, err := uc.read(ctx, spreadsheetID, rng)
	if err != nil {
		return err
	}
	var row []string
	if len(current) > 0 {
		row = current[0]
	}
	if !sameCells(row, snapshot) {
		return uc.conflict(rng)
	}
	return nil
}

func (uc *ReconcileUseCase) conflict(rng string) error {
	uc.log.Warn().Str("range", rng).Msg("la hoja cambió entre lectura y escritura")
	return fmt.Errorf("%w: %s", domain.ErrConflict, rng)
}

func (uc *ReconcileUseCase) alertLowStock(ctx context.Context, d stock.Decrement) {
	if uc.notifier == nil || d.Previous <= uc.cfg.AlertThreshold || d.Row.Cantidad > uc.cfg.AlertThreshold {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.Timeout)
	defer cancel()
	msg := fmt.Sprintf("Stock bajo: %s (%s) quedan %d", d.Row.Nombre, d.Row.Codigo, d.Row.Cantidad)
	if err := uc.notifier.Notify(ctx, msg); err != nil {
		uc.log.Warn().Err(err).Str("codigo", d.Row.Codigo).Msg("no se pudo enviar aviso de stock bajo")
	}
}

func (uc *ReconcileUseCase) invalidate(ctx context.Context, spreadsheetID, hoja string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, catalog.CacheKeys(spreadsheetID, hoja)...); err != nil {
		uc.log.Warn().Err(err).Str("hoja", hoja).Msg("no se pudo invalidar caché de catálogo")
	}
}

func (uc *ReconcileUseCase) read(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()
	values, err := uc.store.ReadRange(ctx, spreadsheetID, rng)
	if err != nil {
		return nil, uc.upstream("leer "+rng, err)
	}
	return values, nil
}

func (uc *ReconcileUseCase) writeRows(ctx context.Context, spreadsheetID string, writes []repository.RowWrite) error {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()
	if err := uc.store.WriteRows(ctx, spreadsheetID, writes); err != nil {
		return uc.upstream("escritura por lotes", err)
	}
	return nil
}

func (uc *ReconcileUseCase) writeRange(ctx context.Context, spreadsheetID, rng string, values [][]any) error {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()
	if err := uc.store.WriteRange(ctx, spreadsheetID, rng, values); err != nil {
		return uc.upstream("escribir "+rng, err)
	}
	return nil
}

// upstream registra el detalle y garantiza que el error quede clasificado como externo.
func (uc *ReconcileUseCase) upstream(op string, err error) error {
	uc.log.Error().Err(err).Str("op", op).Msg("fallo en la hoja de cálculo")
	if errors.Is(err, domain.ErrUpstream) {
		return err
	}
	return domain.Upstream(rowStoreService, op, err)
}

func validateTarget(t dto.StockTarget) error {
	if strings.TrimSpace(t.SpreadsheetID) == "" || strings.TrimSpace(t.Hoja) == "" {
		return fmt.Errorf("%w: spreadsheet_id y hoja son requeridos", domain.ErrInvalidInput)
	}
	return nil
}

// sameCells compara dos filas ignorando celdas vacías al final.
func sameCells(a, b []string) bool {
	return slices.Equal(trimRow(a), trimRow(b))
}

func trimRow(r []string) []string {
	for len(r) > 0 && strings.TrimSpace(r[len(r)-1]) == "" {
		r = r[:len(r)-1]
	}
	return r
}
