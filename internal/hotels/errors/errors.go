package errors

import "errors"

var (
	ErrHotelNotFound = errors.New("hotel not found")

	ErrHotelHasRooms = errors.New("hotel still has rooms")

	ErrRoomNotFound = errors.New("room not found")

	ErrRoomHasFutureBookings = errors.New("room has future bookings")
)
