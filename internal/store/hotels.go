package store

import (
	"sort"

	"hotelbook/pkg/model"
)

func (s *Store) CreateHotel(h *model.Hotel) *model.Hotel {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextHotelID++
	stored := *h
	stored.ID = s.nextHotelID
	stored.CreatedAt = s.now()
	s.hotels[stored.ID] = &stored

	out := stored
	return &out
}

func (s *Store) FindHotel(id int64) (*model.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.hotels[id]
	if !ok {
		return nil, ErrHotelNotFound
	}
	out := *h
	return &out, nil
}

func (s *Store) UpdateHotel(id int64, update *model.HotelUpdate) (*model.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hotels[id]
	if !ok {
		return nil, ErrHotelNotFound
	}
	h.Name = update.Name

	out := *h
	return &out, nil
}

// ListHotels returns every hotel ordered by ID.
func (s *Store) ListHotels() []model.Hotel {
	s.mu.RLock()
	out := make([]model.Hotel, 0, len(s.hotels))
	for _, h := range s.hotels {
		out = append(out, *h)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DeleteHotel refuses while any room still belongs to the hotel.
func (s *Store) DeleteHotel(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rooms {
		if r.HotelID == id {
			return ErrHotelHasRooms
		}
	}
	if _, ok := s.hotels[id]; !ok {
		return ErrHotelNotFound
	}
	delete(s.hotels, id)
	return nil
}
