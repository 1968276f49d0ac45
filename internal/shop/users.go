package shop

import (
	"context"
	"errors"
	"strings"

	"github.com/duartesilva/plantshop/internal/apperr"
	"github.com/duartesilva/plantshop/internal/database"
	"github.com/duartesilva/plantshop/internal/models"
)

type ProfileStore interface {
	CreateUser(ctx context.Context, fullName string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id, fullName, address string) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// ProfileService manages customer accounts and their shipping data.
type ProfileService struct {
	users ProfileStore
}

func NewProfileService(users ProfileStore) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) CreateUser(ctx context.Context, fullName string) (*models.User, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, apperr.New(apperr.KindPrecondition, "full name is required")
	}
	return s.users.CreateUser(ctx, fullName)
}

func (s *ProfileService) User(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, "user not found", err)
		}
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) Users(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}

// UpdateProfile replaces the user's name and shipping address. An empty
// address is allowed here; order placement is where it becomes mandatory.
func (s *ProfileService) UpdateProfile(ctx context.Context, id, fullName, address string) (*models.User, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, apperr.New(apperr.KindPrecondition, "full name is required")
	}

	if err := s.users.UpdateUserProfile(ctx, id, fullName, address); err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, "user not found", err)
		}
		return nil, err
	}

	return s.User(ctx, id)
}
