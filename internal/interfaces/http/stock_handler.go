package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// StockHandler conciliación de stock contra la hoja de cálculo (protegido).
type StockHandler struct {
	uc            *inventory.ReconcileUseCase
	spreadsheetID string
	hoja          string
}

// NewStockHandler construye el handler. spreadsheetID y hoja son los valores por defecto de las consultas.
func NewStockHandler(uc *inventory.ReconcileUseCase, spreadsheetID, hoja string) *StockHandler {
	return &StockHandler{uc: uc, spreadsheetID: spreadsheetID, hoja: hoja}
}

// Sync godoc
// @Summary      Conciliar lote de filas de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SyncStockRequest  true  "spreadsheet_id, hoja, rows"
// @Success      200   {object}  dto.SyncStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/stock/sync [post]
func (h *StockHandler) Sync(c *fiber.Ctx) error {
	var in dto.SyncStockRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.SyncStock(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Sale godoc
// @Summary      Descontar unidades vendidas de un código
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DecrementRequest  true  "spreadsheet_id, hoja, codigo, cantidad"
// @Success      200   {object}  dto.DecrementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/stock/sale [post]
func (h *StockHandler) Sale(c *fiber.Ctx) error {
	var in dto.DecrementRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RegisterSale(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Low godoc
// @Summary      Productos con stock bajo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        spreadsheet_id  query  string  false  "hoja de cálculo (por defecto la configurada)"
// @Param        hoja            query  string  false  "pestaña (por defecto la configurada)"
// @Param        threshold       query  int     false  "umbral (por defecto STOCK_ALERT_THRESHOLD)"
// @Success      200  {object}  dto.LowStockResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) Low(c *fiber.Ctx) error {
	threshold := -1
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return domain.ErrInvalidInput
		}
		threshold = n
	}
	out, err := h.uc.LowStock(c.UserContext(),
		c.Query("spreadsheet_id", h.spreadsheetID),
		c.Query("hoja", h.hoja),
		threshold)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
