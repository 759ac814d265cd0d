package repositories

import (
	"context"
	"fmt"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/query"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var orderPreloads = []string{"User", "DeliveryCrew", "Items", "Items.MenuItem", "Items.MenuItem.Category"}

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// List returns one page of orders ordered by date, with items and users loaded.
func (r *GORMOrderRepository) List(ctx context.Context, filter OrderFilter, page query.Page) ([]models.Order, int64, error) {
	listing := query.Listing{Order: "date, created_at, id", Preloads: orderPreloads}

	if filter.OwnerID != "" {
		listing.Where(func(db *gorm.DB) *gorm.DB { return db.Where("user_id = ?", filter.OwnerID) })
	}
	if filter.AssignedTo != "" {
		listing.Where(func(db *gorm.DB) *gorm.DB { return db.Where("delivery_crew_id = ?", filter.AssignedTo) })
	}
	if filter.OnOrBefore != nil {
		listing.Where(func(db *gorm.DB) *gorm.DB { return db.Where("date <= ?", *filter.OnOrBefore) })
	}
	if filter.Status != nil {
		listing.Where(func(db *gorm.DB) *gorm.DB { return db.Where("status = ?", *filter.Status) })
	}
	if filter.DeliveryCrewID != "" {
		listing.Where(func(db *gorm.DB) *gorm.DB { return db.Where("delivery_crew_id = ?", filter.DeliveryCrewID) })
	}
	if filter.Username != "" {
		users := r.db.Model(&models.User{}).Select("id").
			Where("LOWER(username) LIKE ?"+query.LikeEscape, query.Contains(filter.Username))
		listing.Where(func(db *gorm.DB) *gorm.DB { return db.Where("user_id IN (?)", users) })
	}

	orders, total, err := query.List[models.Order](r.db.WithContext(ctx), listing, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// GetByID retrieves an order with its items, owner and delivery crew.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	db := r.db.WithContext(ctx)
	for _, p := range orderPreloads {
		db = db.Preload(p)
	}
	var order models.Order
	if err := db.First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err, "order with ID %s", id)
	}
	return &order, nil
}

// Create inserts the order row only; items are written by CreateItems.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error; err != nil {
		return translate(err, "order for user %s", order.UserID)
	}
	return nil
}

// CreateItems inserts order items in one statement.
func (r *GORMOrderRepository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&items).Error; err != nil {
		return translate(err, "items of order %s", items[0].OrderID)
	}
	return nil
}

// UpdateTotal stores the order total.
func (r *GORMOrderRepository) UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error {
	return r.update(ctx, id, map[string]interface{}{"total": total})
}

// UpdateDelivery sets status and delivery crew. A nil crew unassigns the order.
func (r *GORMOrderRepository) UpdateDelivery(ctx context.Context, id string, status bool, deliveryCrewID *string) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":           status,
		"delivery_crew_id": deliveryCrewID,
	})
}

func (r *GORMOrderRepository) update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Order{ID: id}).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, "order with ID %s", id)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("order with ID %s not found for update", id)
	}
	return nil
}

// Delete removes an order together with its items.
func (r *GORMOrderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return translate(err, "items of order %s", id)
		}
		res := tx.Delete(&models.Order{}, "id = ?", id)
		if res.Error != nil {
			return translate(res.Error, "order with ID %s", id)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("order with ID %s not found for deletion", id)
		}
		return nil
	})
}
