package user

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrUserNotFound is reported by the HTTP layer when a lookup comes back empty
var ErrUserNotFound = errors.New("user not found")

// Store is the persistence the user service needs; *Repository implements it
type Store interface {
	Create(ctx context.Context, req *CreateUserRequest) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*UserWithPassword, error)
	List(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, id int64, req *UpdateProfileRequest) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
}

// Service handles user business logic. Lookups return nil, nil for absent
// users and store failures pass through unchanged.
type Service struct {
	store Store
}

// NewService creates a new user service with store dependency injected
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create creates a new user
func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	user, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("created_user_id", user.ID).Msg("user created")
	return user, nil
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.store.GetByID(ctx, id)
}

// GetByEmail retrieves a user by their email
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.store.GetByEmail(ctx, email)
}

// GetByEmailWithPassword retrieves a user with their stored credential, for authentication
func (s *Service) GetByEmailWithPassword(ctx context.Context, email string) (*UserWithPassword, error) {
	return s.store.GetByEmailWithPassword(ctx, email)
}

// List retrieves all users, newest first
func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.store.List(ctx)
}

// UpdateProfile changes a user's name, email or image
func (s *Service) UpdateProfile(ctx context.Context, id int64, req *UpdateProfileRequest) (*User, error) {
	user, err := s.store.UpdateProfile(ctx, id, req)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("updated_user_id", id).Msg("user profile updated")
	return user, nil
}

// Delete removes a user
func (s *Service) Delete(ctx context.Context, id int64) (*User, error) {
	user, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("deleted_user_id", id).Msg("user deleted")
	return user, nil
}
