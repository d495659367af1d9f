package service

import (
	"errors"

	hotelserrors "hotelbook/internal/hotels/errors"
	"hotelbook/internal/hotels/repository"
	"hotelbook/internal/hotels/validator"
	"hotelbook/pkg/config"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/model"
	"hotelbook/pkg/sanitizer"
)

// HotelListing is a hotel together with the rooms it currently owns.
type HotelListing struct {
	model.Hotel
	Rooms []model.Room
}

type HotelService interface {
	Create(name string) (*model.Hotel, error)
	Update(id int64, name string) (*model.Hotel, error)
	Remove(id int64) error
	List() []HotelListing
}

type hotelService struct {
	repo      repository.HotelRepository
	rooms     repository.RoomRepository
	validator *validator.HotelValidator
	cfg       *config.Config
}

func NewHotelService(
	repo repository.HotelRepository,
	rooms repository.RoomRepository,
	validator *validator.HotelValidator,
	cfg *config.Config,
) HotelService {
	return &hotelService{
		repo:      repo,
		rooms:     rooms,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *hotelService) Create(name string) (*model.Hotel, error) {
	hotel := &model.Hotel{Name: sanitizer.SanitizeHotelName(name)}
	if err := s.validator.ValidateHotel(hotel); err != nil {
		s.cfg.Log.Warn("Hotel validation failed", "name", hotel.Name, "error", err)
		return nil, validationError("Hotel validation failed", err)
	}

	created := s.repo.Create(hotel)
	s.cfg.Log.Info("Hotel created successfully", "id", created.ID, "name", created.Name)
	return created, nil
}

func (s *hotelService) Update(id int64, name string) (*model.Hotel, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("Invalid hotel ID")
	}

	update := &model.HotelUpdate{Name: sanitizer.SanitizeHotelName(name)}
	if err := s.validator.ValidateHotelUpdate(update); err != nil {
		return nil, validationError("Hotel validation failed", err)
	}

	updated, err := s.repo.Update(id, update)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrHotelNotFound) {
			return nil, apperrors.NotFound("Hotel")
		}
		return nil, apperrors.Internal("Failed to update hotel", err)
	}

	s.cfg.Log.Info("Hotel updated successfully", "id", id, "name", updated.Name)
	return updated, nil
}

// Remove refuses a hotel that still owns rooms; rooms are removed one by one
// first.
func (s *hotelService) Remove(id int64) error {
	if id <= 0 {
		return apperrors.InvalidInput("Invalid hotel ID")
	}

	if err := s.repo.Delete(id); err != nil {
		switch {
		case errors.Is(err, hotelserrors.ErrHotelNotFound):
			return apperrors.NotFound("Hotel")
		case errors.Is(err, hotelserrors.ErrHotelHasRooms):
			return apperrors.BadRequest("Cannot remove hotel with existing rooms")
		}
		return apperrors.Internal("Failed to remove hotel", err)
	}

	s.cfg.Log.Info("Hotel removed successfully", "id", id)
	return nil
}

func (s *hotelService) List() []HotelListing {
	hotels := s.repo.FindAll()
	out := make([]HotelListing, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, HotelListing{
			Hotel: h,
			Rooms: s.rooms.FindByHotel(h.ID),
		})
	}
	return out
}

func validationError(msg string, err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(msg, verrs.Messages()...)
	}
	return apperrors.Validation(msg, "  "+err.Error())
}
