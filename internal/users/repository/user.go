package repository

import (
	"errors"

	userserrors "hotelbook/internal/users/errors"
	"hotelbook/internal/store"
	"hotelbook/pkg/model"
)

type UserRepository interface {
	Create(user *model.User) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindAll() []model.User
	Delete(username string) error
}

type storeUserRepository struct {
	store *store.Store
}

func NewUserRepository(st *store.Store) UserRepository {
	return &storeUserRepository{store: st}
}

func (r *storeUserRepository) Create(user *model.User) (*model.User, error) {
	created, err := r.store.CreateUser(user)
	if errors.Is(err, store.ErrUserExists) {
		return nil, userserrors.ErrAlreadyExists
	}
	return created, err
}

func (r *storeUserRepository) FindByUsername(username string) (*model.User, error) {
	u, err := r.store.FindUser(username)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, userserrors.ErrNotFound
	}
	return u, err
}

func (r *storeUserRepository) FindAll() []model.User {
	return r.store.ListUsers()
}

func (r *storeUserRepository) Delete(username string) error {
	err := r.store.DeleteUser(username)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return userserrors.ErrNotFound
	case errors.Is(err, store.ErrUserHasFutureBookings):
		return userserrors.ErrHasFutureBookings
	}
	return err
}
