// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"context"
	"testing"

	"littlelemon/internal/access"
	"littlelemon/internal/config"
	"littlelemon/internal/database"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory SQLite database with the schema migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.Config{
		DBDriver:    "sqlite",
		DatabaseDSN: "file:" + uuid.New().String() + "?mode=memory&cache=shared&_foreign_keys=1",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser stores a user who belongs to groups.
func CreateUser(t testing.TB, store *repositories.Store, username string, groups ...string) *models.User {
	t.Helper()
	ctx := context.Background()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "not-a-real-hash"}
	require.NoError(t, store.Users().Create(ctx, user))
	for _, g := range groups {
		require.NoError(t, store.Users().AddToGroup(ctx, user.ID, g))
	}
	return user
}

// Principal returns the principal of user as the auth middleware would build it.
func Principal(t testing.TB, store *repositories.Store, user *models.User) access.Principal {
	t.Helper()
	loaded, err := store.Users().GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	return access.NewPrincipal(loaded.ID, loaded.Username, loaded.GroupNames())
}

// CreateCategory stores a category.
func CreateCategory(t testing.TB, store *repositories.Store, slug, title string) *models.Category {
	t.Helper()
	c := &models.Category{Slug: slug, Title: title}
	require.NoError(t, store.Categories().Create(context.Background(), c))
	return c
}

// CreateMenuItem stores a menu item priced at price.
func CreateMenuItem(t testing.TB, store *repositories.Store, category *models.Category, title, price string, featured bool) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		Featured:   featured,
		CategoryID: category.ID,
	}
	require.NoError(t, store.MenuItems().Create(context.Background(), item))
	return item
}
