package handlers

import (
	"littlelemon/internal/query"
	"littlelemon/internal/repositories"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart. Wrong roles get 401.
type CartHandler struct {
	cart   *services.CartService
	paging Paging
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart *services.CartService, paging Paging) *CartHandler {
	return &CartHandler{cart: cart, paging: paging}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart/menu-items")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart lists the caller's cart entries.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	maxPrice, err := query.Decimal("to_price", c.Query("to_price", c.Query("price")))
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	page, err := h.paging.parse(c)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}

	filter := repositories.CartFilter{MenuItemID: c.Query("menuitem"), MaxPrice: maxPrice}
	entries, total, err := h.cart.List(c.UserContext(), p, filter, page)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	return respondList(c, newCartEntryResponses(entries), total)
}

// HandleAddToCart adds a menu item to the caller's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	var in services.CartInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}

	entry, err := h.cart.Add(c.UserContext(), p, in)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	return c.Status(fiber.StatusCreated).JSON(newCartEntryResponse(*entry))
}

// HandleClearCart deletes every entry of the caller's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	removed, err := h.cart.Clear(c.UserContext(), p)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
		"deleted": removed,
	})
}
