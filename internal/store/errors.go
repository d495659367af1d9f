package store

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserExists            = errors.New("user already exists")
	ErrUserHasFutureBookings = errors.New("user has future bookings")
	ErrHotelNotFound         = errors.New("hotel not found")
	ErrHotelHasRooms         = errors.New("hotel still has rooms")
	ErrRoomNotFound          = errors.New("room not found")
	ErrRoomHasFutureBookings = errors.New("room has future bookings")
	ErrBookingNotFound       = errors.New("booking not found")
)
