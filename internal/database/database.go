// Package database opens the GORM connection and prepares the schema.
package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"littlelemon/internal/access"
	"littlelemon/internal/config"
	"littlelemon/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured driver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	level := logger.Warn
	if cfg.DBDebug {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// Migrate creates or updates every table and makes sure both role groups exist.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Group{},
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.CartEntry{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	for _, name := range []string{access.GroupManager, access.GroupDeliveryCrew} {
		var group models.Group
		err := db.Where(models.Group{Name: name}).
			Attrs(models.Group{ID: uuid.New().String()}).
			FirstOrCreate(&group).Error
		if err != nil {
			return fmt.Errorf("failed to ensure group %s: %w", name, err)
		}
	}
	return nil
}

// SeedCategories inserts "slug:Title" entries that are not present yet.
func SeedCategories(db *gorm.DB, entries []string) error {
	for _, entry := range entries {
		slug, title, ok := strings.Cut(entry, ":")
		if !ok || slug == "" || title == "" {
			return fmt.Errorf("invalid category seed %q, want slug:Title", entry)
		}

		var existing models.Category
		err := db.First(&existing, "slug = ?", slug).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up category %s: %w", slug, err)
		}

		category := models.Category{ID: uuid.New().String(), Slug: slug, Title: title}
		if err := db.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", slug, err)
		}
		log.Printf("Seeded category: %s (ID: %s)", category.Slug, category.ID)
	}
	return nil
}
