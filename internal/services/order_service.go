package services

import (
	"context"
	"errors"
	"time"

	"littlelemon/internal/access"
	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/query"
	"littlelemon/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// OrderUpdate is the full representation accepted by PUT. A nil
// DeliveryCrewID unassigns the order.
type OrderUpdate struct {
	Status         bool    `json:"status"`
	DeliveryCrewID *string `json:"delivery_crew_id" validate:"omitempty,min=1"`
}

// OrderPatch carries the fields a PATCH may change. Nil means unchanged.
type OrderPatch struct {
	Status         *bool   `json:"status"`
	DeliveryCrewID *string `json:"delivery_crew_id" validate:"omitempty,min=1"`
}

// OrderService turns carts into orders and runs the staff workflow on them.
type OrderService struct {
	store     *repositories.Store
	publisher EventPublisher
	validate  *validator.Validate
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(store *repositories.Store, publisher EventPublisher) *OrderService {
	return &OrderService{
		store:     store,
		publisher: publisher,
		validate:  NewValidator(),
		now:       time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

func (s *OrderService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PlaceOrder converts the principal's cart into an order. Creating the order,
// copying every cart entry into an order item, storing the total and
// emptying the cart happen in one transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, p access.Principal) (*models.Order, error) {
	if !p.IsCustomer() {
		return nil, apperr.RoleDenied("only customers can place orders")
	}

	var orderID string
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		entries, err := tx.Cart().FindAllByUser(ctx, p.UserID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return apperr.Validation("cart is empty")
		}

		order := &models.Order{
			UserID: p.UserID,
			Total:  decimal.Zero,
			Date:   s.today(),
		}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(entries))
		for _, e := range entries {
			if e.Quantity <= 0 || !models.ValidMoney(e.Price) {
				return apperr.Validation("cart line for menu item %s has quantity %d and price %s", e.MenuItemID, e.Quantity, e.Price.StringFixed(2))
			}
			items = append(items, models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: e.MenuItemID,
				Quantity:   e.Quantity,
				UnitPrice:  e.UnitPrice,
				Price:      e.Price,
			})
			order.Total = order.Total.Add(e.Price)
		}
		if !models.ValidMoney(order.Total) {
			return apperr.Validation("order total %s must be between 0.01 and %s", order.Total.StringFixed(2), models.MaxMoney.StringFixed(2))
		}
		if err := tx.Orders().CreateItems(ctx, items); err != nil {
			return err
		}
		if err := tx.Orders().UpdateTotal(ctx, order.ID, order.Total); err != nil {
			return err
		}
		if _, err := tx.Cart().ClearByUser(ctx, p.UserID); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	publishOrderEvent(s.publisher, EventOrderCreated, order, s.now())
	return order, nil
}

// ListOrders returns the orders the principal may see: managers see all,
// delivery crew the ones assigned to them, customers their own.
func (s *OrderService) ListOrders(ctx context.Context, p access.Principal, filter repositories.OrderFilter, page query.Page) ([]models.Order, int64, error) {
	filter.OwnerID, filter.AssignedTo = "", ""
	switch p.Role() {
	case access.Manager:
	case access.DeliveryCrew:
		filter.AssignedTo = p.UserID
	default:
		filter.OwnerID = p.UserID
	}
	return s.store.Orders().List(ctx, filter, page)
}

// GetOrder returns one order to the customer who placed it.
func (s *OrderService) GetOrder(ctx context.Context, p access.Principal, id string) (*models.Order, error) {
	if !p.IsCustomer() {
		return nil, apperr.RoleDenied("only the customer who placed an order can view it")
	}
	order, err := s.store.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != p.UserID {
		return nil, apperr.Forbidden("order %s belongs to another customer", id)
	}
	return order, nil
}

// UpdateOrder replaces status and delivery crew. Managers only.
func (s *OrderService) UpdateOrder(ctx context.Context, p access.Principal, id string, in OrderUpdate) (*models.Order, error) {
	if !p.IsManager() {
		return nil, apperr.RoleDenied("only managers can update orders")
	}
	order, err := s.store.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	return s.applyDelivery(ctx, order, in.Status, in.DeliveryCrewID)
}

// PatchOrder lets a manager change status and/or delivery crew, and the
// assigned delivery crew member change the status only.
func (s *OrderService) PatchOrder(ctx context.Context, p access.Principal, id string, patch OrderPatch) (*models.Order, error) {
	role := p.Role()
	if role == access.Customer {
		return nil, apperr.RoleDenied("customers cannot update orders")
	}
	order, err := s.store.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if role == access.DeliveryCrew {
		if !order.AssignedTo(p.UserID) {
			return nil, apperr.Forbidden("order %s is not assigned to you", id)
		}
		if patch.DeliveryCrewID != nil {
			return nil, apperr.Validation("delivery crew can only update the status")
		}
		if patch.Status == nil {
			return nil, apperr.Validation("status is required")
		}
		return s.applyDelivery(ctx, order, *patch.Status, order.DeliveryCrewID)
	}

	if patch.Status == nil && patch.DeliveryCrewID == nil {
		return nil, apperr.Validation("nothing to update, send status and/or delivery_crew_id")
	}
	if err := validateStruct(s.validate, patch); err != nil {
		return nil, err
	}
	status, crew := order.Status, order.DeliveryCrewID
	if patch.Status != nil {
		status = *patch.Status
	}
	if patch.DeliveryCrewID != nil {
		crew = patch.DeliveryCrewID
	}
	return s.applyDelivery(ctx, order, status, crew)
}

// DeleteOrder removes an order. Managers only.
func (s *OrderService) DeleteOrder(ctx context.Context, p access.Principal, id string) error {
	if !p.IsManager() {
		return apperr.RoleDenied("only managers can delete orders")
	}
	order, err := s.store.Orders().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Orders().Delete(ctx, id); err != nil {
		return err
	}
	publishOrderEvent(s.publisher, EventOrderDeleted, order, s.now())
	return nil
}

// applyDelivery enforces the pending -> delivered transition and that the
// assignee is delivery crew, then stores both fields.
func (s *OrderService) applyDelivery(ctx context.Context, order *models.Order, status bool, crewID *string) (*models.Order, error) {
	if order.Status && !status {
		return nil, apperr.Validation("order %s is already delivered", order.ID)
	}
	if crewID != nil && !order.AssignedTo(*crewID) {
		ok, err := s.store.Users().InGroup(ctx, *crewID, access.GroupDeliveryCrew)
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Validation("delivery crew user %s does not exist", *crewID)
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Validation("user %s is not in the %s group", *crewID, access.GroupDeliveryCrew)
		}
	}

	if err := s.store.Orders().UpdateDelivery(ctx, order.ID, status, crewID); err != nil {
		return nil, err
	}
	updated, err := s.store.Orders().GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	publishOrderEvent(s.publisher, EventOrderUpdated, updated, s.now())
	return updated, nil
}
