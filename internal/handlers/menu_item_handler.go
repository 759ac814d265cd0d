package handlers

import (
	"littlelemon/internal/query"
	"littlelemon/internal/repositories"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MenuItemHandler handles HTTP requests for menu items and categories.
type MenuItemHandler struct {
	catalog *services.CatalogService
	paging  Paging
}

// NewMenuItemHandler creates a new MenuItemHandler.
func NewMenuItemHandler(catalog *services.CatalogService, paging Paging) *MenuItemHandler {
	return &MenuItemHandler{catalog: catalog, paging: paging}
}

// RegisterRoutes registers the catalog routes. Wrong roles get 403 here.
func (h *MenuItemHandler) RegisterRoutes(router fiber.Router) {
	items := router.Group("/menu-items")
	items.Get("/", h.HandleGetMenuItems)
	items.Post("/", h.HandleCreateMenuItem)
	items.Get("/:id", h.HandleGetMenuItem)
	items.Put("/:id", h.HandleUpdateMenuItem)
	items.Patch("/:id", h.HandlePatchMenuItem)
	items.Delete("/:id", h.HandleDeleteMenuItem)

	categories := router.Group("/categories")
	categories.Get("/", h.HandleGetCategories)
	categories.Post("/", h.HandleCreateCategory)
}

func menuItemFilter(c *fiber.Ctx) (repositories.MenuItemFilter, error) {
	filter := repositories.MenuItemFilter{
		CategoryTitle: c.Query("category"),
		Search:        c.Query("search"),
		Ordering:      c.Query("ordering"),
	}
	maxPrice, err := query.Decimal("to_price", c.Query("to_price", c.Query("price")))
	if err != nil {
		return filter, err
	}
	featured, err := query.Bool("featured", c.Query("featured"))
	if err != nil {
		return filter, err
	}
	filter.MaxPrice, filter.Featured = maxPrice, featured
	return filter, nil
}

// HandleGetMenuItems lists menu items.
func (h *MenuItemHandler) HandleGetMenuItems(c *fiber.Ctx) error {
	filter, err := menuItemFilter(c)
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	page, err := h.paging.parse(c)
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}

	items, total, err := h.catalog.ListMenuItems(c.UserContext(), filter, page)
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	return respondList(c, newMenuItemResponses(items), total)
}

// HandleGetMenuItem retrieves a single menu item by its ID.
func (h *MenuItemHandler) HandleGetMenuItem(c *fiber.Ctx) error {
	item, err := h.catalog.GetMenuItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	return c.JSON(newMenuItemResponse(*item))
}

// HandleCreateMenuItem creates a menu item.
func (h *MenuItemHandler) HandleCreateMenuItem(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	var in services.MenuItemInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}

	item, err := h.catalog.CreateMenuItem(c.UserContext(), p, in)
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	return c.Status(fiber.StatusCreated).JSON(newMenuItemResponse(*item))
}

// HandleUpdateMenuItem replaces a menu item.
func (h *MenuItemHandler) HandleUpdateMenuItem(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	var in services.MenuItemInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}

	item, err := h.catalog.UpdateMenuItem(c.UserContext(), p, c.Params("id"), in)
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	return c.JSON(newMenuItemResponse(*item))
}

// HandlePatchMenuItem updates the supplied fields of a menu item.
func (h *MenuItemHandler) HandlePatchMenuItem(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	var patch services.MenuItemPatch
	if err := parseBody(c, &patch); err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}

	item, err := h.catalog.PatchMenuItem(c.UserContext(), p, c.Params("id"), patch)
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	return c.JSON(newMenuItemResponse(*item))
}

// HandleDeleteMenuItem deletes a menu item.
func (h *MenuItemHandler) HandleDeleteMenuItem(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	if err := h.catalog.DeleteMenuItem(c.UserContext(), p, c.Params("id")); err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	return c.JSON(fiber.Map{"message": "Menu item deleted"})
}

// HandleGetCategories lists every category.
func (h *MenuItemHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	return respondList(c, categories, int64(len(categories)))
}

// HandleCreateCategory creates a category.
func (h *MenuItemHandler) HandleCreateCategory(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	var in services.CategoryInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}

	category, err := h.catalog.CreateCategory(c.UserContext(), p, in)
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}
