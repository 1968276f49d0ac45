package shop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duartesilva/plantshop/internal/apperr"
	"github.com/duartesilva/plantshop/internal/database"
	"github.com/duartesilva/plantshop/internal/models"
)

type fakeProfileStore struct {
	user      *models.User
	getErr    error
	updateErr error
	updated   bool
}

func (f *fakeProfileStore) CreateUser(_ context.Context, fullName string) (*models.User, error) {
	return &models.User{ID: "user-1", FullName: fullName}, nil
}

func (f *fakeProfileStore) GetUser(_ context.Context, _ string) (*models.User, error) {
	return f.user, f.getErr
}

func (f *fakeProfileStore) UpdateUserProfile(_ context.Context, _, _, _ string) error {
	f.updated = true
	return f.updateErr
}

func (f *fakeProfileStore) ListUsers(_ context.Context) ([]models.User, error) {
	return nil, nil
}

func TestCreateUserRequiresName(t *testing.T) {
	svc := NewProfileService(&fakeProfileStore{})

	_, err := svc.CreateUser(context.Background(), "  ")

	require.Error(t, err)
	assert.Equal(t, apperr.KindPrecondition, apperr.KindOf(err))
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewProfileService(&fakeProfileStore{updateErr: database.ErrUserNotFound})

	_, err := svc.UpdateProfile(context.Background(), "missing", "Maria Duarte", "Rua das Flores 12")

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateProfileReturnsFreshUser(t *testing.T) {
	store := &fakeProfileStore{
		user: &models.User{ID: "user-1", FullName: "Maria Duarte", Address: "Rua das Flores 12"},
	}
	svc := NewProfileService(store)

	user, err := svc.UpdateProfile(context.Background(), "user-1", "Maria Duarte", "Rua das Flores 12")

	require.NoError(t, err)
	assert.True(t, store.updated)
	assert.Equal(t, "Rua das Flores 12", user.Address)
}
