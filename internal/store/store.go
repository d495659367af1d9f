// Package store holds every user, hotel, room and booking of a running server.
//
// Identifiers are per-type counters starting at 1 and are never reused, even
// after deletion. Each counter is advanced inside the same critical section
// that inserts the record, so concurrent creators never observe a duplicate.
//
// Users, hotels and rooms share one catalog lock. Bookings live in a separate
// copy-on-write table: readers take an immutable snapshot and never block
// writers, and a snapshot never contains a half-built record.
package store

import (
	"sync"
	"time"

	"hotelbook/pkg/model"
)

// RoomObserver is told about room creation and removal while the catalog lock
// is held, so whatever it tracks per room exists exactly as long as the room.
type RoomObserver interface {
	RoomCreated(roomID int64)
	RoomRemoved(roomID int64)
}

type Option func(*Store)

func WithRoomObserver(o RoomObserver) Option {
	return func(s *Store) {
		s.observers = append(s.observers, o)
	}
}

// WithClock overrides time.Now for CreatedAt stamps and "future booking" checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

type Store struct {
	mu          sync.RWMutex
	users       map[string]*model.User
	hotels      map[int64]*model.Hotel
	rooms       map[int64]*model.Room
	nextUserID  int64
	nextHotelID int64
	nextRoomID  int64

	bookings *bookingTable

	observers []RoomObserver
	now       func() time.Time
}

func New(opts ...Option) *Store {
	s := &Store{
		users:    make(map[string]*model.User),
		hotels:   make(map[int64]*model.Hotel),
		rooms:    make(map[int64]*model.Room),
		bookings: newBookingTable(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats is a point-in-time count of every collection.
type Stats struct {
	Users    int `json:"users"`
	Hotels   int `json:"hotels"`
	Rooms    int `json:"rooms"`
	Bookings int `json:"bookings"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	st := Stats{
		Users:  len(s.users),
		Hotels: len(s.hotels),
		Rooms:  len(s.rooms),
	}
	s.mu.RUnlock()
	st.Bookings = len(s.bookings.snapshot())
	return st
}
