package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/billing"
	"github.com/jhoicas/tienda-api/internal/application/dto"
)

// SubscriptionHandler suscripción del negocio y webhook del proveedor de pagos.
type SubscriptionHandler struct {
	uc *billing.SubscriptionUseCase
}

// NewSubscriptionHandler construye el handler.
func NewSubscriptionHandler(uc *billing.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc}
}

// Create godoc
// @Summary      Iniciar suscripción (checkout)
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.SubscriptionEnvelope
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/subscriptions [post]
func (h *SubscriptionHandler) Create(c *fiber.Ctx) error {
	out, err := h.uc.Create(c.UserContext(), GetNegocioID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubscriptionEnvelope{Envelope: dto.Success(), Subscription: *out})
}

// Current godoc
// @Summary      Suscripción vigente
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SubscriptionEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subscriptions/current [get]
func (h *SubscriptionHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.Current(c.UserContext(), GetNegocioID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.SubscriptionEnvelope{Envelope: dto.Success(), Subscription: *out})
}

// Webhook godoc
// @Summary      Notificación de pago
// @Description  Público. El proveedor puede enviar el id por query (?type=payment&data.id=) o en el cuerpo.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentWebhookRequest  false  "type, data.id"
// @Success      200   {object}  dto.WebhookResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/webhooks/payments [post]
func (h *SubscriptionHandler) Webhook(c *fiber.Ctx) error {
	var in dto.PaymentWebhookRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
		}
	}
	if in.Type == "" {
		in.Type = c.Query("type", c.Query("topic"))
	}
	if in.Data.ID == "" {
		in.Data.ID = c.Query("data.id", c.Query("id"))
	}
	out, err := h.uc.HandleWebhook(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
