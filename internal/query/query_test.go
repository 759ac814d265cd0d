package query_test

import (
	"errors"
	"fmt"
	"testing"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/query"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestParsePage(t *testing.T) {
	p, err := query.ParsePage("", "", 2, 100)
	require.NoError(t, err)
	assert.Equal(t, query.Page{Number: 1, Size: 2}, p)
	assert.Equal(t, 0, p.Offset())

	p, err = query.ParsePage("3", "10", 2, 100)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Offset())

	p, err = query.ParsePage("1", "500", 2, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, p.Size)

	for _, bad := range [][2]string{{"0", ""}, {"x", ""}, {"", "-1"}, {"", "two"}} {
		_, err = query.ParsePage(bad[0], bad[1], 2, 100)
		assert.True(t, errors.Is(err, apperr.ErrValidation), "%v", bad)
	}
}

func TestScalarParsers(t *testing.T) {
	d, err := query.Decimal("to_price", "")
	assert.NoError(t, err)
	assert.Nil(t, d)
	d, err = query.Decimal("to_price", "9.5")
	require.NoError(t, err)
	assert.Equal(t, "9.5", d.String())
	_, err = query.Decimal("to_price", "cheap")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	b, err := query.Bool("featured", "True")
	require.NoError(t, err)
	assert.True(t, *b)
	_, err = query.Bool("featured", "yes please")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	day, err := query.Date("date", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", day.Format(query.DateLayout))
	_, err = query.Date("date", "29/02/2024")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestOrdering(t *testing.T) {
	allowed := map[string]string{"price": "price", "title": "title"}

	got, err := query.Ordering("", allowed, "title")
	require.NoError(t, err)
	assert.Equal(t, "title", got)

	got, err = query.Ordering("-price", allowed, "title")
	require.NoError(t, err)
	assert.Equal(t, "price DESC", got)

	_, err = query.Ordering("password", allowed, "title")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestContainsEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%pizza%", query.Contains("Pizza"))
	assert.Equal(t, `%50\%\_off%`, query.Contains("50%_off"))
}

func TestListPaginates(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}))

	for i := 1; i <= 5; i++ {
		c := models.Category{ID: uuid.New().String(), Slug: fmt.Sprintf("cat-%d", i), Title: fmt.Sprintf("Category %d", i)}
		require.NoError(t, db.Create(&c).Error)
	}

	listing := query.Listing{Order: "slug"}
	listing.Where(func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(title) LIKE ?"+query.LikeEscape, query.Contains("category"))
	})

	rows, total, err := query.List[models.Category](db, listing, query.Page{Number: 2, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "cat-3", rows[0].Slug)
	assert.Equal(t, "cat-4", rows[1].Slug)

	rows, total, err = query.List[models.Category](db, listing, query.Page{Number: 3, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, rows, 1)

	rows, _, err = query.List[models.Category](db, listing, query.Page{Number: 9, Size: 2})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
