package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/clientes"
	"github.com/jhoicas/tienda-api/internal/application/dto"
)

// CustomerHandler clientes, cuenta corriente y pagos (protegido).
type CustomerHandler struct {
	uc *clientes.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *clientes.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "name, phone, email"
// @Success      201   {object}  dto.CustomerEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetNegocioID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CustomerEnvelope{Envelope: dto.Success(), Customer: *out})
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return err
	}
	page.DefaultPage()
	items, err := h.uc.List(c.UserContext(), GetNegocioID(c), page)
	if err != nil {
		return err
	}
	return c.JSON(dto.CustomerListResponse{
		Envelope: dto.Success(),
		Items:    items,
		Page:     dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Get godoc
// @Summary      Cliente por id
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id del cliente"
// @Success      200  {object}  dto.CustomerEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetNegocioID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.CustomerEnvelope{Envelope: dto.Success(), Customer: *out})
}

// RegisterPayment godoc
// @Summary      Registrar pago de cuenta corriente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "id del cliente"
// @Param        body  body  dto.RegisterPaymentRequest  true  "amount, method, note, date"
// @Success      201   {object}  dto.RegisterPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/payments [post]
func (h *CustomerHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RegisterPayment(c.UserContext(), GetNegocioID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayments godoc
// @Summary      Pagos de un cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id del cliente"
// @Success      200  {object}  dto.PaymentListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/payments [get]
func (h *CustomerHandler) ListPayments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return err
	}
	page.DefaultPage()
	items, err := h.uc.ListPayments(c.UserContext(), GetNegocioID(c), c.Params("id"), page)
	if err != nil {
		return err
	}
	return c.JSON(dto.PaymentListResponse{
		Envelope: dto.Success(),
		Items:    items,
		Page:     dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
