package service

import (
	"testing"
	"time"

	"hotelbook/internal/store"
	userserrors "hotelbook/internal/users/errors"
	"hotelbook/internal/users/repository"
	"hotelbook/internal/users/validator"
	"hotelbook/pkg/config"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepository struct {
	createFunc         func(user *model.User) (*model.User, error)
	findByUsernameFunc func(username string) (*model.User, error)
	deleteFunc         func(username string) error
}

func (m *mockUserRepository) Create(user *model.User) (*model.User, error) {
	if m.createFunc != nil {
		return m.createFunc(user)
	}
	return user, nil
}

func (m *mockUserRepository) FindByUsername(username string) (*model.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(username)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindAll() []model.User {
	return nil
}

func (m *mockUserRepository) Delete(username string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(username)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{Log: logger.Discard()}
}

func newSeededService(t *testing.T) (UserService, *store.Store) {
	t.Helper()
	st := store.New()
	require.NoError(t, st.Seed())
	cfg := testConfig()
	return NewUserService(repository.NewUserRepository(st), validator.NewUserValidator(cfg.Log), cfg), st
}

func TestLogin(t *testing.T) {
	svc, _ := newSeededService(t)

	user, err := svc.Login("admin", "admin")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)

	_, err = svc.Login("ghost", "x")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	_, err = svc.Login("user", "wrong")
	assert.Equal(t, apperrors.StatusForbidden, apperrors.AsAppError(err).StatusCode())
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newSeededService(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid", "user", "user", false},
		{"wrong password", "user", "nope", true},
		{"unknown user", "nobody", "user", true},
		{"password is case sensitive", "user", "USER", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(tt.username, tt.password)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			appErr := apperrors.AsAppError(err)
			assert.Equal(t, apperrors.StatusForbidden, appErr.StatusCode())
			assert.Equal(t, MsgInvalidCredentials, appErr.Message)
		})
	}
}

func TestAuthorizeAdmin(t *testing.T) {
	svc, _ := newSeededService(t)

	_, err := svc.AuthorizeAdmin("admin", "admin")
	assert.NoError(t, err)

	_, err = svc.AuthorizeAdmin("user", "user")
	require.Error(t, err)
	assert.Equal(t, MsgUnauthorized, apperrors.AsAppError(err).Message)

	_, err = svc.AuthorizeAdmin("admin", "user")
	assert.Error(t, err)
}

func TestCreate(t *testing.T) {
	svc, _ := newSeededService(t)

	created, err := svc.Create("alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.False(t, created.IsAdmin)

	_, err = svc.Create("alice", "other")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	_, err = svc.Create("", "pw")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = svc.Create("bob", "two words")
	require.Error(t, err)
	assert.Equal(t, []string{"  Password cannot contain spaces"}, apperrors.AsAppError(err).Details)
}

func TestCreate_RepositoryFailure(t *testing.T) {
	cfg := testConfig()
	repo := &mockUserRepository{
		createFunc: func(user *model.User) (*model.User, error) {
			return nil, assert.AnError
		},
	}
	svc := NewUserService(repo, validator.NewUserValidator(cfg.Log), cfg)

	_, err := svc.Create("carol", "pw")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}

func TestRemove(t *testing.T) {
	svc, st := newSeededService(t)

	err := svc.Remove("admin")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	err = svc.Remove("ghost")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	user, err := st.FindUser("user")
	require.NoError(t, err)
	st.AddBooking(model.Booking{
		RoomID:        1,
		UserID:        user.ID,
		TransactionID: 1,
		CheckIn:       time.Now().Add(24 * time.Hour),
		CheckOut:      time.Now().Add(48 * time.Hour),
	})
	err = svc.Remove("user")
	require.Error(t, err)
	assert.Equal(t, "Cannot remove user with future bookings", apperrors.AsAppError(err).Message)

	_, err = svc.Create("dave", "pw")
	require.NoError(t, err)
	assert.NoError(t, svc.Remove("dave"))
	assert.Len(t, svc.List(), 2)
}

func TestRemove_DeleteRaceReportsNotFound(t *testing.T) {
	cfg := testConfig()
	repo := &mockUserRepository{
		findByUsernameFunc: func(username string) (*model.User, error) {
			return &model.User{ID: 9, Username: username}, nil
		},
		deleteFunc: func(username string) error {
			return userserrors.ErrNotFound
		},
	}
	svc := NewUserService(repo, validator.NewUserValidator(cfg.Log), cfg)

	err := svc.Remove("eve")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
