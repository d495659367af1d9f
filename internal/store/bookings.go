package store

import (
	"sync"
	"sync/atomic"
	"time"

	"hotelbook/pkg/model"
)

// bookingTable is copy-on-write. Writers serialize on mu and publish a fresh
// bookingState; readers load the current state without locking and must treat
// it as read-only.
type bookingTable struct {
	mu     sync.Mutex
	state  atomic.Pointer[bookingState]
	nextID int64

	// transaction ids handed out to requests that have not finished yet
	inFlight map[int64]struct{}
}

// bookingState is one published version: every booking in insertion order
// plus the same records grouped by room.
type bookingState struct {
	list   []model.Booking
	byRoom map[int64][]model.Booking
}

func indexByRoom(list []model.Booking) map[int64][]model.Booking {
	byRoom := make(map[int64][]model.Booking)
	for _, b := range list {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}
	return byRoom
}

func newBookingTable() *bookingTable {
	t := &bookingTable{inFlight: make(map[int64]struct{})}
	t.state.Store(&bookingState{list: []model.Booking{}, byRoom: map[int64][]model.Booking{}})
	return t
}

func (t *bookingTable) snapshot() []model.Booking {
	return t.state.Load().list
}

func (t *bookingTable) forRoom(roomID int64) []model.Booking {
	return t.state.Load().byRoom[roomID]
}

func (t *bookingTable) anyFuture(now time.Time, match func(b *model.Booking) bool) bool {
	cur := t.snapshot()
	for i := range cur {
		if b := &cur[i]; match(b) && b.CheckOut.After(now) {
			return true
		}
	}
	return false
}

// AddBooking assigns the next booking ID and publishes the record.
func (s *Store) AddBooking(b model.Booking) model.Booking {
	t := s.bookings
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	b.ID = t.nextID
	b.CreatedAt = s.now()

	cur := t.state.Load()
	next := make([]model.Booking, len(cur.list), len(cur.list)+1)
	copy(next, cur.list)
	next = append(next, b)

	byRoom := make(map[int64][]model.Booking, len(cur.byRoom)+1)
	for id, list := range cur.byRoom {
		byRoom[id] = list
	}
	room := cur.byRoom[b.RoomID]
	grown := make([]model.Booking, len(room), len(room)+1)
	copy(grown, room)
	byRoom[b.RoomID] = append(grown, b)

	t.state.Store(&bookingState{list: next, byRoom: byRoom})
	return b
}

// Bookings returns a copy of every booking in insertion order.
func (s *Store) Bookings() []model.Booking {
	cur := s.bookings.snapshot()
	out := make([]model.Booking, len(cur))
	copy(out, cur)
	return out
}

func (s *Store) BookingsForRoom(roomID int64) []model.Booking {
	cur := s.bookings.forRoom(roomID)
	if len(cur) == 0 {
		return nil
	}
	out := make([]model.Booking, len(cur))
	copy(out, cur)
	return out
}

func (s *Store) BookingsForUser(userID int64) []model.Booking {
	var out []model.Booking
	for _, b := range s.bookings.snapshot() {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

func (s *Store) RemoveBooking(id int64) (*model.Booking, error) {
	removed := s.removeWhere(func(b *model.Booking) bool { return b.ID == id })
	if len(removed) == 0 {
		return nil, ErrBookingNotFound
	}
	return &removed[0], nil
}

// RemoveTransaction deletes every booking stamped with txnID and returns them.
func (s *Store) RemoveTransaction(txnID int64) []model.Booking {
	return s.removeWhere(func(b *model.Booking) bool { return b.TransactionID == txnID })
}

func (s *Store) removeWhere(match func(b *model.Booking) bool) []model.Booking {
	t := s.bookings
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := t.snapshot()
	next := make([]model.Booking, 0, len(cur))
	var removed []model.Booking
	for i := range cur {
		if match(&cur[i]) {
			removed = append(removed, cur[i])
			continue
		}
		next = append(next, cur[i])
	}
	if len(removed) > 0 {
		t.state.Store(&bookingState{list: next, byRoom: indexByRoom(next)})
	}
	return removed
}

// ReserveTransactionID returns one more than the largest transaction id seen
// in stored bookings or held by unfinished requests, and holds it until
// ReleaseTransactionID. A request that ends up booking nothing leaves no trace,
// so the next request reuses the number.
func (s *Store) ReserveTransactionID() int64 {
	t := s.bookings
	t.mu.Lock()
	defer t.mu.Unlock()

	var maxID int64
	for _, b := range t.snapshot() {
		if b.TransactionID > maxID {
			maxID = b.TransactionID
		}
	}
	for id := range t.inFlight {
		if id > maxID {
			maxID = id
		}
	}
	id := maxID + 1
	t.inFlight[id] = struct{}{}
	return id
}

func (s *Store) ReleaseTransactionID(id int64) {
	t := s.bookings
	t.mu.Lock()
	delete(t.inFlight, id)
	t.mu.Unlock()
}
