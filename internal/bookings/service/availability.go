package service

import (
	"time"

	"hotelbook/internal/bookings/repository"
	"hotelbook/pkg/model"
)

// AvailableRoom is a CHECK result row.
type AvailableRoom struct {
	Room      model.Room
	HotelName string
}

// AvailabilityOracle answers "is this room free for this interval". It never
// takes a room lock: the answer is only final while the caller holds one.
type AvailabilityOracle interface {
	IsAvailable(roomID int64, checkIn, checkOut time.Time) bool
	AvailableRooms(checkIn, checkOut time.Time) []AvailableRoom
}

type availabilityOracle struct {
	repo repository.BookingRepository
}

func NewAvailabilityOracle(repo repository.BookingRepository) AvailabilityOracle {
	return &availabilityOracle{repo: repo}
}

func (o *availabilityOracle) IsAvailable(roomID int64, checkIn, checkOut time.Time) bool {
	for _, b := range o.repo.FindByRoom(roomID) {
		if b.Overlaps(checkIn, checkOut) {
			return false
		}
	}
	return true
}

func (o *availabilityOracle) AvailableRooms(checkIn, checkOut time.Time) []AvailableRoom {
	hotelNames := make(map[int64]string)
	var out []AvailableRoom
	for _, room := range o.repo.ListRooms() {
		if !o.IsAvailable(room.ID, checkIn, checkOut) {
			continue
		}
		name, ok := hotelNames[room.HotelID]
		if !ok {
			name = "Unknown"
			if h, err := o.repo.FindHotel(room.HotelID); err == nil {
				name = h.Name
			}
			hotelNames[room.HotelID] = name
		}
		out = append(out, AvailableRoom{Room: room, HotelName: name})
	}
	return out
}
