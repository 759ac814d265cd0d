package services

import (
	"context"

	"littlelemon/internal/access"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// MembershipInput is the body of an add-to-group request.
type MembershipInput struct {
	UserID string `json:"user_id" validate:"required"`
}

// GroupService manages Manager and Delivery Crew membership.
type GroupService struct {
	users    repositories.UserRepository
	validate *validator.Validate
}

// NewGroupService creates a new GroupService.
func NewGroupService(users repositories.UserRepository) *GroupService {
	return &GroupService{users: users, validate: NewValidator()}
}

// Members lists the users in group.
func (s *GroupService) Members(ctx context.Context, p access.Principal, group string) ([]models.User, error) {
	if err := requireManager(p, "view group members"); err != nil {
		return nil, err
	}
	return s.users.ListByGroup(ctx, group)
}

// AddMember puts a user into group and returns that user.
func (s *GroupService) AddMember(ctx context.Context, p access.Principal, group string, in MembershipInput) (*models.User, error) {
	if err := requireManager(p, "change group membership"); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	if err := s.users.AddToGroup(ctx, in.UserID, group); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, in.UserID)
}

// RemoveMember takes a user out of group.
func (s *GroupService) RemoveMember(ctx context.Context, p access.Principal, group, userID string) error {
	if err := requireManager(p, "change group membership"); err != nil {
		return err
	}
	return s.users.RemoveFromGroup(ctx, userID, group)
}
