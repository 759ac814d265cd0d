// Package query parses list query parameters and applies filtering and
// pagination to GORM queries in the same way for every listing.
package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"littlelemon/internal/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DateLayout is the wire format of dates in query strings and responses.
const DateLayout = "2006-01-02"

// Scope narrows a query.
type Scope = func(*gorm.DB) *gorm.DB

// Page selects a window of a result set. Number starts at 1.
type Page struct {
	Number int
	Size   int
}

// Offset is the number of rows skipped before the page.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// ParsePage reads the page and perpage values. Empty values fall back to
// page 1 and defaultSize; perpage is capped at maxSize.
func ParsePage(page, perPage string, defaultSize, maxSize int) (Page, error) {
	p := Page{Number: 1, Size: defaultSize}
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return Page{}, apperr.Validation("page must be a positive integer")
		}
		p.Number = n
	}
	if perPage != "" {
		n, err := strconv.Atoi(perPage)
		if err != nil || n < 1 {
			return Page{}, apperr.Validation("perpage must be a positive integer")
		}
		p.Size = n
	}
	if maxSize > 0 && p.Size > maxSize {
		p.Size = maxSize
	}
	return p, nil
}

// Listing describes one list request: the filters, the sort order and the
// associations to load for the returned rows.
type Listing struct {
	Filters  []Scope
	Order    string
	Preloads []string
}

// Where adds a filter.
func (l *Listing) Where(s Scope) {
	l.Filters = append(l.Filters, s)
}

// List counts every row matching l and returns the rows of the requested page.
// A page past the end yields an empty slice.
func List[T any](db *gorm.DB, l Listing, page Page) ([]T, int64, error) {
	base := db.Model(new(T)).Scopes(l.Filters...).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count rows: %w", err)
	}

	rows := make([]T, 0)
	if int64(page.Offset()) >= total {
		return rows, total, nil
	}

	find := base
	for _, p := range l.Preloads {
		find = find.Preload(p)
	}
	if l.Order != "" {
		find = find.Order(l.Order)
	}
	if err := find.Offset(page.Offset()).Limit(page.Size).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list rows: %w", err)
	}
	return rows, total, nil
}

// Decimal parses an optional decimal parameter.
func Decimal(name, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperr.Validation("%s must be a decimal number", name)
	}
	return &d, nil
}

// Bool parses an optional boolean parameter. It accepts true/false, 1/0 and
// the capitalised True/False forms.
func Bool(name, raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperr.Validation("%s must be true or false", name)
	}
	return &b, nil
}

// Date parses an optional YYYY-MM-DD parameter as midnight UTC.
func Date(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return nil, apperr.Validation("%s must be a date in YYYY-MM-DD format", name)
	}
	return &d, nil
}

// Ordering maps a user facing ordering key ("price", "-price") to an ORDER BY
// clause. Keys not present in allowed are rejected.
func Ordering(raw string, allowed map[string]string, fallback string) (string, error) {
	if raw == "" {
		return fallback, nil
	}
	desc := strings.HasPrefix(raw, "-")
	column, ok := allowed[strings.TrimPrefix(raw, "-")]
	if !ok {
		return "", apperr.Validation("cannot order by %q", raw)
	}
	if desc {
		return column + " DESC", nil
	}
	return column, nil
}

// LikeEscape follows a LIKE placeholder filled by Contains.
const LikeEscape = ` ESCAPE '\'`

// Contains builds a LIKE pattern for substring search. The column side must
// be wrapped in LOWER() for the match to be case-insensitive.
func Contains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
