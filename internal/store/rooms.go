package store

import (
	"sort"

	"hotelbook/pkg/model"
)

// CreateRoom stores the room and notifies observers before the room becomes
// visible to readers.
func (s *Store) CreateRoom(r *model.Room) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hotels[r.HotelID]; !ok {
		return nil, ErrHotelNotFound
	}

	s.nextRoomID++
	stored := *r
	stored.ID = s.nextRoomID
	stored.CreatedAt = s.now()
	for _, o := range s.observers {
		o.RoomCreated(stored.ID)
	}
	s.rooms[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *Store) FindRoom(id int64) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	out := *r
	return &out, nil
}

// UpdateRoom is not serialized against bookings of the same room.
func (s *Store) UpdateRoom(id int64, update *model.RoomUpdate) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if _, ok := s.hotels[update.HotelID]; !ok {
		return nil, ErrHotelNotFound
	}
	r.HotelID = update.HotelID
	r.Number = update.Number
	r.Type = update.Type
	r.Price = update.Price

	out := *r
	return &out, nil
}

// ListRooms returns every room ordered by ID.
func (s *Store) ListRooms() []model.Room {
	s.mu.RLock()
	out := make([]model.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, *r)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) RoomsByHotel(hotelID int64) []model.Room {
	all := s.ListRooms()
	out := all[:0]
	for _, r := range all {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return out
}

// DeleteRoom refuses while the room has a booking whose check-out is still
// ahead.
func (s *Store) DeleteRoom(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bookings.anyFuture(s.now(), func(b *model.Booking) bool { return b.RoomID == id }) {
		return ErrRoomHasFutureBookings
	}
	if _, ok := s.rooms[id]; !ok {
		return ErrRoomNotFound
	}
	delete(s.rooms, id)
	for _, o := range s.observers {
		o.RoomRemoved(id)
	}
	return nil
}
