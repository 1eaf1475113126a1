package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ventas"
)

// SaleHandler ventas con número de comprobante (protegido).
type SaleHandler struct {
	uc *ventas.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *ventas.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "items, payment_method, customer_id opcional"
// @Success      201   {object}  dto.CreateSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetNegocioID(c), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// NextNumber godoc
// @Summary      Próximo número de comprobante (orientativo)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NextNumberResponse
// @Router       /api/sales/next-number [get]
func (h *SaleHandler) NextNumber(c *fiber.Ctx) error {
	n, err := h.uc.NextNumber(c.UserContext(), GetNegocioID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NextNumberResponse{Envelope: dto.Success(), Numero: n})
}

// Get godoc
// @Summary      Venta por número
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        numero  path  string  true  "número de comprobante"
// @Success      200  {object}  dto.GetSaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{numero} [get]
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.UserContext(), GetNegocioID(c), c.Params("numero"))
	if err != nil {
		return err
	}
	return c.JSON(dto.GetSaleResponse{Envelope: dto.Success(), Sale: dto.NewSaleResponse(s)})
}

// Ticket godoc
// @Summary      Ticket PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        numero  path  string  true  "número de comprobante"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{numero}/ticket [get]
func (h *SaleHandler) Ticket(c *fiber.Ctx) error {
	numero := c.Params("numero")
	doc, err := h.uc.Ticket(c.UserContext(), GetNegocioID(c), numero)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="ticket-`+numero+`.pdf"`)
	return c.Send(doc)
}
