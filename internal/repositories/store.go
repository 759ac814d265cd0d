package repositories

import (
	"context"
	"errors"
	"fmt"

	"littlelemon/internal/apperr"

	"gorm.io/gorm"
)

// Store hands out repositories that share one *gorm.DB, which is either the
// pool or an open transaction.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on top of db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn inside a database transaction. Every repository
// obtained from the Store passed to fn takes part in it; returning an error
// from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Categories() *GORMCategoryRepository { return NewGORMCategoryRepository(s.db) }
func (s *Store) MenuItems() *GORMMenuItemRepository { return NewGORMMenuItemRepository(s.db) }
func (s *Store) Cart() *GORMCartRepository          { return NewGORMCartRepository(s.db) }
func (s *Store) Orders() *GORMOrderRepository       { return NewGORMOrderRepository(s.db) }
func (s *Store) Users() *GORMUserRepository         { return NewGORMUserRepository(s.db) }

// translate maps GORM errors onto the apperr taxonomy.
func translate(err error, format string, args ...interface{}) error {
	what := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("%s not found", what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("%s already exists", what)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.Conflict("%s is still referenced", what)
	default:
		return fmt.Errorf("failed to access %s: %w", what, err)
	}
}
