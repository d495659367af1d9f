package store

import (
	"sort"

	"hotelbook/pkg/model"
)

func (s *Store) CreateUser(u *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.Username]; exists {
		return nil, ErrUserExists
	}

	s.nextUserID++
	stored := *u
	stored.ID = s.nextUserID
	stored.CreatedAt = s.now()
	s.users[stored.Username] = &stored

	out := stored
	return &out, nil
}

func (s *Store) FindUser(username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *Store) FindUserByID(id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

// ListUsers returns every user ordered by ID.
func (s *Store) ListUsers() []model.User {
	s.mu.RLock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DeleteUser refuses while the user holds a booking whose check-out is still
// ahead.
func (s *Store) DeleteUser(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return ErrUserNotFound
	}
	if s.bookings.anyFuture(s.now(), func(b *model.Booking) bool { return b.UserID == u.ID }) {
		return ErrUserHasFutureBookings
	}
	delete(s.users, username)
	return nil
}
