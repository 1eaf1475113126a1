package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/dto"
)

// CatalogHandler catálogo público de productos con stock.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List godoc
// @Summary      Catálogo público
// @Tags         catalog
// @Produce      json
// @Param        categoria  query  string  false  "filtrar por categoría"
// @Param        q          query  string  false  "buscar por nombre o código"
// @Success      200  {object}  dto.CatalogResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/catalog [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	var q dto.CatalogQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	items, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(dto.CatalogResponse{Envelope: dto.Success(), Items: items})
}

// Categories godoc
// @Summary      Categorías con stock
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.CategoriesResponse
// @Router       /api/catalog/categories [get]
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.CategoriesResponse{Envelope: dto.Success(), Categories: cats})
}
