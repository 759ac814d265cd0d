package repositories

import (
	"context"
	"fmt"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// ListByUser returns one page of the user's cart with menu items loaded.
func (r *GORMCartRepository) ListByUser(ctx context.Context, userID string, filter CartFilter, page query.Page) ([]models.CartEntry, int64, error) {
	listing := query.Listing{
		Order:    "created_at, id",
		Preloads: []string{"User", "MenuItem", "MenuItem.Category"},
	}
	listing.Where(func(db *gorm.DB) *gorm.DB { return db.Where("user_id = ?", userID) })
	if filter.MenuItemID != "" {
		listing.Where(func(db *gorm.DB) *gorm.DB { return db.Where("menu_item_id = ?", filter.MenuItemID) })
	}
	if filter.MaxPrice != nil {
		listing.Where(func(db *gorm.DB) *gorm.DB { return db.Where("price <= ?", *filter.MaxPrice) })
	}

	entries, total, err := query.List[models.CartEntry](r.db.WithContext(ctx), listing, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cart for user %s: %w", userID, err)
	}
	return entries, total, nil
}

// FindAllByUser returns the user's whole cart in insertion order.
func (r *GORMCartRepository) FindAllByUser(ctx context.Context, userID string) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&entries).Error; err != nil {
		return nil, translate(err, "cart of user %s", userID)
	}
	return entries, nil
}

// FindEntry returns the user's entry for menuItemID. Inside a transaction
// the row stays locked until commit.
func (r *GORMCartRepository) FindEntry(ctx context.Context, userID, menuItemID string) (*models.CartEntry, error) {
	var entry models.CartEntry
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		First(&entry).Error
	if err != nil {
		return nil, translate(err, "cart entry for menu item %s", menuItemID)
	}
	return &entry, nil
}

// Insert adds a new entry unless the user already has a line for the same
// menu item, in which case it reports false and writes nothing.
func (r *GORMCartRepository) Insert(ctx context.Context, entry *models.CartEntry) (bool, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	res := r.db.WithContext(ctx).Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
			DoNothing: true,
		}).
		Create(entry)
	if res.Error != nil {
		return false, translate(res.Error, "cart entry for menu item %s", entry.MenuItemID)
	}
	return res.RowsAffected == 1, nil
}

// Save inserts a new entry, or rewrites quantity and prices of an existing one.
func (r *GORMCartRepository) Save(ctx context.Context, entry *models.CartEntry) error {
	db := r.db.WithContext(ctx).Omit(clause.Associations)
	if entry.ID == "" {
		entry.ID = uuid.New().String()
		if err := db.Create(entry).Error; err != nil {
			return translate(err, "cart entry for menu item %s", entry.MenuItemID)
		}
		return nil
	}

	res := db.Model(&models.CartEntry{ID: entry.ID}).Updates(map[string]interface{}{
		"quantity":   entry.Quantity,
		"unit_price": entry.UnitPrice,
		"price":      entry.Price,
	})
	if res.Error != nil {
		return translate(res.Error, "cart entry %s", entry.ID)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("cart entry %s not found for update", entry.ID)
	}
	return nil
}

// ClearByUser deletes every entry of the user and returns how many were removed.
func (r *GORMCartRepository) ClearByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartEntry{})
	if res.Error != nil {
		return 0, translate(res.Error, "cart of user %s", userID)
	}
	return res.RowsAffected, nil
}
