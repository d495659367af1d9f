package service

import (
	"errors"
	"strings"

	hotelserrors "hotelbook/internal/hotels/errors"
	"hotelbook/internal/hotels/repository"
	"hotelbook/internal/hotels/validator"
	"hotelbook/pkg/config"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/model"
	"hotelbook/pkg/sanitizer"
)

var MsgInvalidRoomType = "Invalid room type. Valid types: " + roomTypeList()

// RoomInput carries the fields of CREATE ROOM and UPDATE ROOM as they arrive
// on the wire.
type RoomInput struct {
	HotelID int64
	Number  string
	Type    string
	Price   int
}

// RoomListing is a room with the name of its hotel resolved.
type RoomListing struct {
	model.Room
	HotelName string
}

type RoomService interface {
	Create(in RoomInput) (*model.Room, error)
	Update(id int64, in RoomInput) (*model.Room, error)
	Remove(id int64) error
	List() []RoomListing
}

type roomService struct {
	repo      repository.RoomRepository
	hotels    repository.HotelRepository
	validator *validator.HotelValidator
	cfg       *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	hotels repository.HotelRepository,
	validator *validator.HotelValidator,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:      repo,
		hotels:    hotels,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *roomService) Create(in RoomInput) (*model.Room, error) {
	roomType, ok := parseRoomType(in.Type)
	if !ok {
		return nil, apperrors.BadRequest(MsgInvalidRoomType)
	}

	room := &model.Room{
		HotelID: in.HotelID,
		Number:  sanitizer.SanitizeRoomNumber(in.Number),
		Type:    roomType,
		Price:   in.Price,
	}
	if err := s.validator.ValidateRoom(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "hotel_id", in.HotelID, "error", err)
		return nil, validationError("Room validation failed", err)
	}

	created, err := s.repo.Create(room)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrHotelNotFound) {
			return nil, apperrors.NotFound("Hotel")
		}
		return nil, apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created successfully",
		"id", created.ID,
		"hotel_id", created.HotelID,
		"number", created.Number,
		"type", created.Type,
	)
	return created, nil
}

// Update rewrites every field of the room. It does not wait for bookings in
// progress on the same room.
func (s *roomService) Update(id int64, in RoomInput) (*model.Room, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("Invalid room ID")
	}
	roomType, ok := parseRoomType(in.Type)
	if !ok {
		return nil, apperrors.BadRequest(MsgInvalidRoomType)
	}

	update := &model.RoomUpdate{
		HotelID: in.HotelID,
		Number:  sanitizer.SanitizeRoomNumber(in.Number),
		Type:    roomType,
		Price:   in.Price,
	}
	if err := s.validator.ValidateRoomUpdate(update); err != nil {
		return nil, validationError("Room validation failed", err)
	}

	updated, err := s.repo.Update(id, update)
	if err != nil {
		switch {
		case errors.Is(err, hotelserrors.ErrRoomNotFound):
			return nil, apperrors.NotFound("Room")
		case errors.Is(err, hotelserrors.ErrHotelNotFound):
			return nil, apperrors.NotFound("Hotel")
		}
		return nil, apperrors.Internal("Failed to update room", err)
	}

	s.cfg.Log.Info("Room updated successfully", "id", id, "hotel_id", updated.HotelID)
	return updated, nil
}

func (s *roomService) Remove(id int64) error {
	if id <= 0 {
		return apperrors.InvalidInput("Invalid room ID")
	}

	if err := s.repo.Delete(id); err != nil {
		switch {
		case errors.Is(err, hotelserrors.ErrRoomNotFound):
			return apperrors.NotFound("Room")
		case errors.Is(err, hotelserrors.ErrRoomHasFutureBookings):
			return apperrors.BadRequest("Cannot remove room with future bookings")
		}
		return apperrors.Internal("Failed to remove room", err)
	}

	s.cfg.Log.Info("Room removed successfully", "id", id)
	return nil
}

func (s *roomService) List() []RoomListing {
	names := make(map[int64]string)
	for _, h := range s.hotels.FindAll() {
		names[h.ID] = h.Name
	}

	rooms := s.repo.FindAll()
	out := make([]RoomListing, 0, len(rooms))
	for _, r := range rooms {
		name, ok := names[r.HotelID]
		if !ok {
			name = "Unknown"
		}
		out = append(out, RoomListing{Room: r, HotelName: name})
	}
	return out
}

func parseRoomType(s string) (model.RoomType, bool) {
	return model.ParseRoomType(sanitizer.SanitizeRoomType(s))
}

func roomTypeList() string {
	types := model.RoomTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
