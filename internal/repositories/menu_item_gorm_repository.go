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

var menuItemOrdering = map[string]string{
	"price": "price",
	"title": "title",
}

// GORMMenuItemRepository is a GORM implementation of MenuItemRepository.
type GORMMenuItemRepository struct {
	db *gorm.DB
}

// NewGORMMenuItemRepository creates a new instance of GORMMenuItemRepository.
func NewGORMMenuItemRepository(db *gorm.DB) *GORMMenuItemRepository {
	return &GORMMenuItemRepository{db: db}
}

// List returns one page of menu items matching filter, with their category.
func (r *GORMMenuItemRepository) List(ctx context.Context, filter MenuItemFilter, page query.Page) ([]models.MenuItem, int64, error) {
	order, err := query.Ordering(filter.Ordering, menuItemOrdering, "title")
	if err != nil {
		return nil, 0, err
	}
	listing := query.Listing{Order: order + ", id", Preloads: []string{"Category"}}

	if filter.CategoryTitle != "" {
		titles := r.db.Model(&models.Category{}).Select("id").Where("title = ?", filter.CategoryTitle)
		listing.Where(func(db *gorm.DB) *gorm.DB { return db.Where("category_id IN (?)", titles) })
	}
	if filter.MaxPrice != nil {
		listing.Where(func(db *gorm.DB) *gorm.DB { return db.Where("price <= ?", *filter.MaxPrice) })
	}
	if filter.Featured != nil {
		listing.Where(func(db *gorm.DB) *gorm.DB { return db.Where("featured = ?", *filter.Featured) })
	}
	if filter.Search != "" {
		listing.Where(func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(title) LIKE ?"+query.LikeEscape, query.Contains(filter.Search))
		})
	}

	items, total, err := query.List[models.MenuItem](r.db.WithContext(ctx), listing, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, total, nil
}

// GetByID retrieves a menu item and its category.
func (r *GORMMenuItemRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).Preload("Category").First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err, "menu item with ID %s", id)
	}
	return &item, nil
}

// Create inserts a menu item. The referenced category must already exist.
func (r *GORMMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return translate(err, "menu item %s", item.Title)
	}
	return nil
}

// Update writes every column of item, including zero values.
func (r *GORMMenuItemRepository) Update(ctx context.Context, item *models.MenuItem) error {
	res := r.db.WithContext(ctx).
		Model(&models.MenuItem{ID: item.ID}).
		Select("title", "price", "featured", "category_id").
		Updates(item)
	if res.Error != nil {
		return translate(res.Error, "menu item with ID %s", item.ID)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("menu item with ID %s not found for update", item.ID)
	}
	return nil
}

// Delete removes a menu item and any cart entries holding it. Items that
// appear on an order cannot be deleted.
func (r *GORMMenuItemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ordered int64
		if err := tx.Model(&models.OrderItem{}).Where("menu_item_id = ?", id).Count(&ordered).Error; err != nil {
			return translate(err, "order items for menu item %s", id)
		}
		if ordered > 0 {
			return apperr.Conflict("menu item with ID %s is part of %d order(s)", id, ordered)
		}
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.CartEntry{}).Error; err != nil {
			return translate(err, "cart entries for menu item %s", id)
		}
		res := tx.Delete(&models.MenuItem{}, "id = ?", id)
		if res.Error != nil {
			return translate(res.Error, "menu item with ID %s", id)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("menu item with ID %s not found for deletion", id)
		}
		return nil
	})
}
