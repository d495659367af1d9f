package model

import (
	"time"
)

type Booking struct {
	ID            int64     `json:"id"`
	RoomID        int64     `json:"room_id"`
	UserID        int64     `json:"user_id"`
	TransactionID int64     `json:"transaction_id"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	CreatedAt     time.Time `json:"created_at"`
}

// Overlaps uses closed intervals: a stay ending exactly when another begins
// still conflicts with it.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut)
}

func Overlaps(inA, outA, inB, outB time.Time) bool {
	return !inA.After(outB) && !outA.Before(inB)
}

type BookingRequest struct {
	RoomIDs  []int64   `validate:"required,min=1,dive,min=1"`
	CheckIn  time.Time `validate:"required"`
	CheckOut time.Time `validate:"required,gtfield=CheckIn"`
	UserID   int64     `validate:"required,min=1"`
}

type TxState string

const (
	TxAcquiring  TxState = "ACQUIRING"
	TxBooking    TxState = "BOOKING"
	TxCommitted  TxState = "COMMITTED"
	TxRolledBack TxState = "ROLLED_BACK"
	TxFailed     TxState = "FAILED"
)

// RoomOutcome is one line of a booking result, in request order.
type RoomOutcome struct {
	RoomID     int64  `json:"room_id"`
	RoomNumber string `json:"room_number,omitempty"`
	BookingID  int64  `json:"booking_id,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func (o RoomOutcome) Booked() bool {
	return o.BookingID != 0
}

type BookingResult struct {
	TransactionID int64         `json:"transaction_id"`
	State         TxState       `json:"state"`
	Rooms         []RoomOutcome `json:"rooms"`
}
