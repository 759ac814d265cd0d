package repositories

import (
	"context"
	"time"

	"littlelemon/internal/models"
	"littlelemon/internal/query"

	"github.com/shopspring/decimal"
)

// OrderFilter narrows an order listing. OwnerID and AssignedTo restrict the
// visible set by role; the remaining fields come from the query string.
type OrderFilter struct {
	OwnerID        string
	AssignedTo     string
	OnOrBefore     *time.Time
	Status         *bool
	DeliveryCrewID string
	Username       string
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	List(ctx context.Context, filter OrderFilter, page query.Page) ([]models.Order, int64, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	CreateItems(ctx context.Context, items []models.OrderItem) error
	UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error
	UpdateDelivery(ctx context.Context, id string, status bool, deliveryCrewID *string) error
	Delete(ctx context.Context, id string) error
}
