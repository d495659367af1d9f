package service

import (
	"errors"

	userserrors "hotelbook/internal/users/errors"
	"hotelbook/internal/users/repository"
	"hotelbook/internal/users/validator"
	"hotelbook/pkg/config"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/model"
	"hotelbook/pkg/sanitizer"
)

const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgUnauthorized       = "Unauthorized access"
)

type UserService interface {
	Login(username, password string) (*model.User, error)
	Authenticate(username, password string) (*model.User, error)
	AuthorizeAdmin(username, password string) (*model.User, error)
	Create(username, password string) (*model.User, error)
	List() []model.User
	Remove(username string) error
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// Login distinguishes an unknown user from a wrong password; Authenticate does
// not.
func (s *userService) Login(username, password string) (*model.User, error) {
	user, err := s.repo.FindByUsername(sanitizer.SanitizeUsername(username))
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}
	if !user.CheckPassword(password) {
		s.cfg.Log.Warn("Login rejected", "username", username)
		return nil, apperrors.Forbidden("Invalid password")
	}

	s.cfg.Log.Debug("Login successful", "username", username, "admin", user.IsAdmin)
	return user, nil
}

func (s *userService) Authenticate(username, password string) (*model.User, error) {
	user, err := s.repo.FindByUsername(sanitizer.SanitizeUsername(username))
	if err != nil || !user.CheckPassword(password) {
		return nil, apperrors.Unauthorized(MsgInvalidCredentials)
	}
	return user, nil
}

func (s *userService) AuthorizeAdmin(username, password string) (*model.User, error) {
	user, err := s.Authenticate(username, password)
	if err != nil || !user.IsAdmin {
		s.cfg.Log.Warn("Admin authorization rejected", "username", username)
		return nil, apperrors.Unauthorized(MsgUnauthorized)
	}
	return user, nil
}

func (s *userService) Create(username, password string) (*model.User, error) {
	user := &model.User{
		Username: sanitizer.SanitizeUsername(username),
		Password: password,
	}
	if err := s.validator.Validate(user); err != nil {
		s.cfg.Log.Warn("User validation failed", "username", user.Username, "error", err)
		return nil, validationError("User validation failed", err)
	}

	created, err := s.repo.Create(user)
	if err != nil {
		if errors.Is(err, userserrors.ErrAlreadyExists) {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created successfully", "id", created.ID, "username", created.Username)
	return created, nil
}

func (s *userService) List() []model.User {
	return s.repo.FindAll()
}

// Remove refuses administrators and users who still hold a booking that has
// not checked out yet.
func (s *userService) Remove(username string) error {
	username = sanitizer.SanitizeUsername(username)

	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFound("User")
		}
		return apperrors.Internal("Failed to look up user", err)
	}
	if user.IsAdmin {
		return apperrors.Forbidden("Cannot remove admin user")
	}

	if err := s.repo.Delete(username); err != nil {
		switch {
		case errors.Is(err, userserrors.ErrNotFound):
			return apperrors.NotFound("User")
		case errors.Is(err, userserrors.ErrHasFutureBookings):
			return apperrors.BadRequest("Cannot remove user with future bookings")
		}
		return apperrors.Internal("Failed to remove user", err)
	}

	s.cfg.Log.Info("User removed successfully", "id", user.ID, "username", username)
	return nil
}

func validationError(msg string, err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, v := range verrs {
			details = append(details, "  "+v.Message)
		}
		return apperrors.Validation(msg, details...)
	}
	return apperrors.Validation(msg, "  "+err.Error())
}
