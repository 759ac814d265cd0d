package repositories

import (
	"context"
	"fmt"

	"littlelemon/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return translate(err, "user %s", user.Username)
	}
	return nil
}

// GetByUsername retrieves a user by their username, groups included.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

// GetByEmail retrieves a user by their email, groups included.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

// GetByID retrieves a user by their ID, groups included.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GORMUserRepository) first(ctx context.Context, cond string, arg string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Groups").First(&user, cond, arg).Error; err != nil {
		return nil, translate(err, "user %s", arg)
	}
	return &user, nil
}

// ListByGroup returns the members of a group ordered by username.
func (r *GORMUserRepository) ListByGroup(ctx context.Context, group string) ([]models.User, error) {
	users := make([]models.User, 0)
	err := r.db.WithContext(ctx).
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Joins(`JOIN "groups" ON "groups".id = user_groups.group_id`).
		Where(`"groups".name = ?`, group).
		Order("users.username").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list members of %s: %w", group, err)
	}
	return users, nil
}

// AddToGroup makes the user a member of group. Adding an existing member is a no-op.
func (r *GORMUserRepository) AddToGroup(ctx context.Context, userID, group string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, g, err := r.userAndGroup(tx, userID, group)
		if err != nil {
			return err
		}
		if err := tx.Model(user).Association("Groups").Append(g); err != nil {
			return fmt.Errorf("failed to add user %s to %s: %w", userID, group, err)
		}
		return nil
	})
}

// RemoveFromGroup ends the user's membership of group. Removing a non-member is a no-op.
func (r *GORMUserRepository) RemoveFromGroup(ctx context.Context, userID, group string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, g, err := r.userAndGroup(tx, userID, group)
		if err != nil {
			return err
		}
		if err := tx.Model(user).Association("Groups").Delete(g); err != nil {
			return fmt.Errorf("failed to remove user %s from %s: %w", userID, group, err)
		}
		return nil
	})
}

// InGroup reports whether the user belongs to group. An unknown user is a not found error.
func (r *GORMUserRepository) InGroup(ctx context.Context, userID, group string) (bool, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, g := range user.Groups {
		if g.Name == group {
			return true, nil
		}
	}
	return false, nil
}

func (r *GORMUserRepository) userAndGroup(tx *gorm.DB, userID, group string) (*models.User, *models.Group, error) {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		return nil, nil, translate(err, "user with ID %s", userID)
	}
	var g models.Group
	if err := tx.First(&g, "name = ?", group).Error; err != nil {
		return nil, nil, translate(err, "group %s", group)
	}
	return &user, &g, nil
}
