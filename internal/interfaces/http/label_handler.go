package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/labels"
)

// LabelHandler hojas de etiquetas de precio (protegido).
type LabelHandler struct {
	uc *labels.UseCase
}

// NewLabelHandler construye el handler.
func NewLabelHandler(uc *labels.UseCase) *LabelHandler {
	return &LabelHandler{uc: uc}
}

// Generate godoc
// @Summary      PDF de etiquetas
// @Tags         labels
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.LabelsRequest  true  "codigos, copias"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/labels [post]
func (h *LabelHandler) Generate(c *fiber.Ctx) error {
	var in dto.LabelsRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	doc, err := h.uc.Generate(c.UserContext(), in)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="etiquetas.pdf"`)
	return c.Send(doc)
}
