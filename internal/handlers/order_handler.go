package handlers

import (
	"littlelemon/internal/query"
	"littlelemon/internal/repositories"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders. Wrong roles get 401.
type OrderHandler struct {
	service *services.OrderService
	paging  Paging
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, paging Paging) *OrderHandler {
	return &OrderHandler{service: service, paging: paging}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
	orderRoutes.Patch("/:id", h.HandlePatchOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

func orderFilter(c *fiber.Ctx) (repositories.OrderFilter, error) {
	filter := repositories.OrderFilter{
		DeliveryCrewID: c.Query("delivery_crew"),
		Username:       c.Query("username", c.Query("search")),
	}
	date, err := query.Date("date", c.Query("date"))
	if err != nil {
		return filter, err
	}
	status, err := query.Bool("status", c.Query("status"))
	if err != nil {
		return filter, err
	}
	filter.OnOrBefore, filter.Status = date, status
	return filter, nil
}

// HandleGetOrders lists the orders visible to the caller.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	filter, err := orderFilter(c)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	page, err := h.paging.parse(c)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}

	orders, total, err := h.service.ListOrders(c.UserContext(), p, filter, page)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	return respondList(c, newOrderResponses(orders), total)
}

// HandleCreateOrder places an order from the caller's cart.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	order, err := h.service.PlaceOrder(c.UserContext(), p)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	return c.Status(fiber.StatusCreated).JSON(newOrderResponse(*order))
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	order, err := h.service.GetOrder(c.UserContext(), p, c.Params("id"))
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	return c.JSON(newOrderResponse(*order))
}

// HandleUpdateOrder replaces the status and delivery crew of an order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	var in services.OrderUpdate
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}

	order, err := h.service.UpdateOrder(c.UserContext(), p, c.Params("id"), in)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	return c.JSON(newOrderResponse(*order))
}

// HandlePatchOrder updates the status and/or delivery crew of an order.
func (h *OrderHandler) HandlePatchOrder(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	var patch services.OrderPatch
	if err := parseBody(c, &patch); err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}

	order, err := h.service.PatchOrder(c.UserContext(), p, c.Params("id"), patch)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	return c.JSON(newOrderResponse(*order))
}

// HandleDeleteOrder deletes an order and its items.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	if err := h.service.DeleteOrder(c.UserContext(), p, c.Params("id")); err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}
