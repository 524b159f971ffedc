// FILE: internal/controller/catalog_controller.go
package controller

import (
	"doc-templates-be/internal/pkg/serverutils"
	"doc-templates-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(api fiber.Router)
}

type catalogController struct {
	service service.ICatalogService
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{service: service}
}

func (c *catalogController) RegisterRoutes(api fiber.Router) {
	api.Get("/templates", c.ListTemplates)
	api.Get("/templates/:id", c.GetTemplate)
	api.Get("/categories", c.Categories)
	api.Get("/plans", c.Plans)
}

// ListTemplates
// @Summary List document templates
// @Tags Catalog
// @Param category query string false "Category name, empty for all"
// @Param q query string false "Case-insensitive title search"
// @Router /api/templates [get]
func (c *catalogController) ListTemplates(ctx *fiber.Ctx) error {
	res, err := c.service.ListTemplates(ctx.Context(), ctx.Query("category"), ctx.Query("q"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Templates retrieved", res))
}

func (c *catalogController) GetTemplate(ctx *fiber.Ctx) error {
	res, err := c.service.GetTemplate(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Template retrieved", res))
}

func (c *catalogController) Categories(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Categories retrieved", c.service.Categories(ctx.Context())))
}

// Plans returns the tariffs for the pricing page
// @Router /api/plans [get]
func (c *catalogController) Plans(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", c.service.Plans(ctx.Context())))
}
