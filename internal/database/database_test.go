package database_test

import (
	"testing"

	"littlelemon/internal/access"
	"littlelemon/internal/config"
	"littlelemon/internal/database"
	"littlelemon/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		DBDriver:    "sqlite",
		DatabaseDSN: "file:" + uuid.New().String() + "?mode=memory&cache=shared&_foreign_keys=1",
	}
}

func TestMigrateCreatesGroupsOnce(t *testing.T) {
	db, err := database.Open(memoryConfig())
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Migrate(db))

	var groups []models.Group
	require.NoError(t, db.Order("name").Find(&groups).Error)
	require.Len(t, groups, 2)
	assert.Equal(t, access.GroupDeliveryCrew, groups[0].Name)
	assert.Equal(t, access.GroupManager, groups[1].Name)
}

func TestSeedCategoriesIsIdempotent(t *testing.T) {
	db, err := database.Open(memoryConfig())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	seeds := []string{"main:Main", "drinks:Drinks"}
	require.NoError(t, database.SeedCategories(db, seeds))
	require.NoError(t, database.SeedCategories(db, seeds))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	assert.Error(t, database.SeedCategories(db, []string{"no-title"}))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open(&config.Config{DBDriver: "mysql"})
	assert.Error(t, err)
}
