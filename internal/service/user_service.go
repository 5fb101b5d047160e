package service

import (
	"context"
	"errors"
	"fmt"

	"vehicle_rental/internal/model"
	"vehicle_rental/internal/repository"
)

var (
	ErrUserNotFound          = errors.New("User not found in the database")
	ErrUpdateNotAuthorized   = errors.New("You are not authorized to update this user")
	ErrRoleChangeNotAllowed  = errors.New("You are not authorized to change user role")
	ErrNoFieldsToUpdate      = errors.New("No fields to update")
	ErrUserHasActiveBookings = errors.New("Cannot delete user with active bookings. Please cancel or complete all bookings first.")
)

// UserService provides user management
type UserService interface {
	GetAllUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest, actorID int, actorRole string) (*model.User, error)
	DeleteUser(ctx context.Context, id int) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies a partial update. A user may update themselves; an admin
// may update anyone; only an admin may change a role.
func (s *userService) UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest, actorID int, actorRole string) (*model.User, error) {
	target, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	isAdmin := actorRole == model.RoleAdmin
	if !isAdmin && actorID != id {
		return nil, ErrUpdateNotAuthorized
	}
	if !isAdmin && req.Role != nil {
		return nil, ErrRoleChangeNotAllowed
	}
	if req.Role != nil && !model.ValidRole(*req.Role) {
		return nil, newValidationError([]string{"Role must be either 'admin' or 'customer'"})
	}

	updated, err := s.userRepo.Update(ctx, id, req, isAdmin)
	if err != nil {
		if errors.Is(err, repository.ErrNoFieldsToUpdate) {
			return nil, ErrNoFieldsToUpdate
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	return updated, nil
}

// DeleteUser removes a user unless they still hold an active booking.
// The guard lives here rather than in a DB constraint.
func (s *userService) DeleteUser(ctx context.Context, id int) error {
	active, err := s.userRepo.HasActiveBooking(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check active bookings: %w", err)
	}
	if active {
		return ErrUserHasActiveBookings
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
