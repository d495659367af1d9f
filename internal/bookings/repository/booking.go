package repository

import (
	"errors"

	bookingserrors "hotelbook/internal/bookings/errors"
	"hotelbook/internal/store"
	"hotelbook/pkg/model"
)

type BookingRepository interface {
	Create(booking model.Booking) model.Booking
	FindAll() []model.Booking
	FindByRoom(roomID int64) []model.Booking
	FindByUser(userID int64) []model.Booking
	Delete(id int64) (*model.Booking, error)
	DeleteByTransaction(txnID int64) []model.Booking

	ReserveTransactionID() int64
	ReleaseTransactionID(id int64)

	FindRoom(id int64) (*model.Room, error)
	ListRooms() []model.Room
	FindHotel(id int64) (*model.Hotel, error)
	FindUserByID(id int64) (*model.User, error)
}

type storeBookingRepository struct {
	store *store.Store
}

func NewBookingRepository(st *store.Store) BookingRepository {
	return &storeBookingRepository{store: st}
}

func (r *storeBookingRepository) Create(booking model.Booking) model.Booking {
	return r.store.AddBooking(booking)
}

func (r *storeBookingRepository) FindAll() []model.Booking {
	return r.store.Bookings()
}

func (r *storeBookingRepository) FindByRoom(roomID int64) []model.Booking {
	return r.store.BookingsForRoom(roomID)
}

func (r *storeBookingRepository) FindByUser(userID int64) []model.Booking {
	return r.store.BookingsForUser(userID)
}

func (r *storeBookingRepository) Delete(id int64) (*model.Booking, error) {
	b, err := r.store.RemoveBooking(id)
	if errors.Is(err, store.ErrBookingNotFound) {
		return nil, bookingserrors.ErrNotFound
	}
	return b, err
}

func (r *storeBookingRepository) DeleteByTransaction(txnID int64) []model.Booking {
	return r.store.RemoveTransaction(txnID)
}

func (r *storeBookingRepository) ReserveTransactionID() int64 {
	return r.store.ReserveTransactionID()
}

func (r *storeBookingRepository) ReleaseTransactionID(id int64) {
	r.store.ReleaseTransactionID(id)
}

func (r *storeBookingRepository) FindRoom(id int64) (*model.Room, error) {
	room, err := r.store.FindRoom(id)
	if errors.Is(err, store.ErrRoomNotFound) {
		return nil, bookingserrors.ErrRoomNotFound
	}
	return room, err
}

func (r *storeBookingRepository) ListRooms() []model.Room {
	return r.store.ListRooms()
}

func (r *storeBookingRepository) FindHotel(id int64) (*model.Hotel, error) {
	return r.store.FindHotel(id)
}

func (r *storeBookingRepository) FindUserByID(id int64) (*model.User, error) {
	return r.store.FindUserByID(id)
}
