package repository

import (
	"errors"

	hotelserrors "hotelbook/internal/hotels/errors"
	"hotelbook/internal/store"
	"hotelbook/pkg/model"
)

type HotelRepository interface {
	Create(hotel *model.Hotel) *model.Hotel
	FindAll() []model.Hotel
	Update(id int64, update *model.HotelUpdate) (*model.Hotel, error)
	Delete(id int64) error
}

type RoomRepository interface {
	Create(room *model.Room) (*model.Room, error)
	FindAll() []model.Room
	FindByHotel(hotelID int64) []model.Room
	Update(id int64, update *model.RoomUpdate) (*model.Room, error)
	Delete(id int64) error
}

type storeHotelRepository struct {
	store *store.Store
}

func NewHotelRepository(st *store.Store) HotelRepository {
	return &storeHotelRepository{store: st}
}

func (r *storeHotelRepository) Create(hotel *model.Hotel) *model.Hotel {
	return r.store.CreateHotel(hotel)
}

func (r *storeHotelRepository) FindAll() []model.Hotel {
	return r.store.ListHotels()
}

func (r *storeHotelRepository) Update(id int64, update *model.HotelUpdate) (*model.Hotel, error) {
	h, err := r.store.UpdateHotel(id, update)
	return h, translate(err)
}

func (r *storeHotelRepository) Delete(id int64) error {
	return translate(r.store.DeleteHotel(id))
}

type storeRoomRepository struct {
	store *store.Store
}

func NewRoomRepository(st *store.Store) RoomRepository {
	return &storeRoomRepository{store: st}
}

func (r *storeRoomRepository) Create(room *model.Room) (*model.Room, error) {
	created, err := r.store.CreateRoom(room)
	return created, translate(err)
}

func (r *storeRoomRepository) FindAll() []model.Room {
	return r.store.ListRooms()
}

func (r *storeRoomRepository) FindByHotel(hotelID int64) []model.Room {
	return r.store.RoomsByHotel(hotelID)
}

func (r *storeRoomRepository) Update(id int64, update *model.RoomUpdate) (*model.Room, error) {
	room, err := r.store.UpdateRoom(id, update)
	return room, translate(err)
}

func (r *storeRoomRepository) Delete(id int64) error {
	return translate(r.store.DeleteRoom(id))
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrHotelNotFound):
		return hotelserrors.ErrHotelNotFound
	case errors.Is(err, store.ErrHotelHasRooms):
		return hotelserrors.ErrHotelHasRooms
	case errors.Is(err, store.ErrRoomNotFound):
		return hotelserrors.ErrRoomNotFound
	case errors.Is(err, store.ErrRoomHasFutureBookings):
		return hotelserrors.ErrRoomHasFutureBookings
	}
	return err
}
