package services

import (
	"context"
	"errors"
	"fmt"

	"littlelemon/internal/access"
	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/query"
	"littlelemon/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MenuItemInput is the full representation accepted on create and PUT.
type MenuItemInput struct {
	Title      string          `json:"title" validate:"required,min=1,max=255"`
	Price      decimal.Decimal `json:"price" validate:"money"`
	Featured   bool            `json:"featured"`
	CategoryID string          `json:"category_id" validate:"required"`
}

// MenuItemPatch carries the fields a PATCH may change. Nil means unchanged.
type MenuItemPatch struct {
	Title      *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Price      *decimal.Decimal `json:"price" validate:"omitempty,money"`
	Featured   *bool            `json:"featured"`
	CategoryID *string          `json:"category_id" validate:"omitempty,min=1"`
}

// CategoryInput is accepted when a manager creates a category.
type CategoryInput struct {
	Slug  string `json:"slug" validate:"required,min=2,max=100"`
	Title string `json:"title" validate:"required,max=255"`
}

// CatalogService handles business logic for categories and menu items.
type CatalogService struct {
	items      repositories.MenuItemRepository
	categories repositories.CategoryRepository
	validate   *validator.Validate
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(items repositories.MenuItemRepository, categories repositories.CategoryRepository) *CatalogService {
	return &CatalogService{
		items:      items,
		categories: categories,
		validate:   NewValidator(),
	}
}

func requireManager(p access.Principal, action string) error {
	if !p.IsManager() {
		return apperr.RoleDenied("only managers can %s", action)
	}
	return nil
}

// ListMenuItems returns one page of menu items.
func (s *CatalogService) ListMenuItems(ctx context.Context, filter repositories.MenuItemFilter, page query.Page) ([]models.MenuItem, int64, error) {
	return s.items.List(ctx, filter, page)
}

// GetMenuItem retrieves a single menu item.
func (s *CatalogService) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.items.GetByID(ctx, id)
}

// CreateMenuItem adds a menu item. The category must exist; an unknown
// category id is a validation failure rather than a missing resource.
func (s *CatalogService) CreateMenuItem(ctx context.Context, p access.Principal, in MenuItemInput) (*models.MenuItem, error) {
	if err := requireManager(p, "create menu items"); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Title:      in.Title,
		Price:      in.Price,
		Featured:   in.Featured,
		CategoryID: category.ID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	item.Category = *category
	return item, nil
}

// UpdateMenuItem replaces every field of a menu item.
func (s *CatalogService) UpdateMenuItem(ctx context.Context, p access.Principal, id string, in MenuItemInput) (*models.MenuItem, error) {
	if err := requireManager(p, "update menu items"); err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	item.Title = in.Title
	item.Price = in.Price
	item.Featured = in.Featured
	item.CategoryID = category.ID
	item.Category = *category
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// PatchMenuItem changes only the fields present in patch.
func (s *CatalogService) PatchMenuItem(ctx context.Context, p access.Principal, id string, patch MenuItemPatch) (*models.MenuItem, error) {
	if err := requireManager(p, "update menu items"); err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, patch); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Featured != nil {
		item.Featured = *patch.Featured
	}
	if patch.CategoryID != nil {
		category, err := s.resolveCategory(ctx, *patch.CategoryID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = category.ID
		item.Category = *category
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem removes a menu item.
func (s *CatalogService) DeleteMenuItem(ctx context.Context, p access.Principal, id string) error {
	if err := requireManager(p, "delete menu items"); err != nil {
		return err
	}
	return s.items.Delete(ctx, id)
}

// ListCategories returns every category.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetAll(ctx)
}

// CreateCategory adds a category.
func (s *CatalogService) CreateCategory(ctx context.Context, p access.Principal, in CategoryInput) (*models.Category, error) {
	if err := requireManager(p, "create categories"); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	category := &models.Category{Slug: in.Slug, Title: in.Title}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) resolveCategory(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, &apperr.FieldError{Fields: map[string]string{
			"category_id": fmt.Sprintf("Category_Id %s invalid", id),
		}}
	}
	return category, err
}
