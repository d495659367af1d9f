package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	bookingserrors "hotelbook/internal/bookings/errors"
	"hotelbook/internal/bookings/events"
	"hotelbook/internal/bookings/repository"
	"hotelbook/internal/bookings/validator"
	"hotelbook/pkg/config"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/model"
)

const (
	MsgNoRoomsBooked = "No rooms were successfully booked"

	ReasonRoomNotFound = "Room not found"
	ReasonNotAvailable = "Not available for selected dates"
	ReasonRoomBusy     = "Room is busy, please try again"
	ReasonRolledBack   = "Rolled back"
)

type BookingService interface {
	AvailabilityOracle
	Book(ctx context.Context, req *model.BookingRequest) (*model.BookingResult, error)
	List(requester *model.User) []TransactionBookings
	Remove(ctx context.Context, id int64) error
}

// BookingDetail is a booking joined with the names LIST BOOKINGS prints.
type BookingDetail struct {
	model.Booking
	RoomNumber string
	RoomType   model.RoomType
	HotelName  string
	Username   string
}

type TransactionBookings struct {
	TransactionID int64
	Bookings      []BookingDetail
}

type bookingService struct {
	AvailabilityOracle

	repo      repository.BookingRepository
	locks     repository.RoomLockTable
	validator *validator.BookingValidator
	events    events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	locks repository.RoomLockTable,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		AvailabilityOracle: NewAvailabilityOracle(repo),
		repo:               repo,
		locks:              locks,
		validator:          validator,
		events:             publisher,
		cfg:                cfg,
	}
}

// Book runs one multi-room request as a transaction. Either every requested
// room is booked under one transaction id, or nothing the request created
// survives. The returned result is non-nil whenever the request got past
// validation, also on failure.
func (s *bookingService) Book(ctx context.Context, req *model.BookingRequest) (*model.BookingResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.execute(ctx, req)

	if err != nil {
		s.cfg.Log.Warn("Booking request failed",
			"transaction_id", result.TransactionID,
			"state", result.State,
			"user_id", req.UserID,
			"room_ids", req.RoomIDs,
			"duration", time.Since(start),
			"error", err,
		)
	} else {
		s.cfg.Log.Info("Booking committed",
			"transaction_id", result.TransactionID,
			"user_id", req.UserID,
			"room_ids", req.RoomIDs,
			"duration", time.Since(start),
		)
	}
	s.publishOutcome(ctx, req, result)
	return result, err
}

func (s *bookingService) execute(ctx context.Context, req *model.BookingRequest) (result *model.BookingResult, err error) {
	result = &model.BookingResult{State: model.TxAcquiring}

	leases, failedID, err := s.acquireAll(ctx, req.RoomIDs)
	if err != nil {
		reason := ReasonRoomBusy
		if errors.Is(err, bookingserrors.ErrRoomNotFound) {
			reason = ReasonRoomNotFound
		}
		result.Rooms = []model.RoomOutcome{{RoomID: failedID, Reason: reason}}
		result.State = model.TxFailed
		return result, lockError(failedID, err)
	}
	defer s.releaseAll(leases)

	txnID := s.repo.ReserveTransactionID()
	defer s.repo.ReleaseTransactionID(txnID)
	result.TransactionID = txnID
	result.State = model.TxBooking

	defer func() {
		if r := recover(); r != nil {
			removed := s.repo.DeleteByTransaction(txnID)
			s.cfg.Log.Error("Panic during booking transaction",
				"transaction_id", txnID,
				"panic", r,
				"rolled_back", len(removed),
			)
			markRolledBack(result)
			result.State = model.TxRolledBack
			err = apperrors.Internal("Booking error", fmt.Errorf("panic: %v", r))
		}
	}()

	// Request order, duplicates included: a repeated room fails as unavailable.
	for _, roomID := range req.RoomIDs {
		room, findErr := s.repo.FindRoom(roomID)
		if findErr != nil {
			failed := model.RoomOutcome{RoomID: roomID, Reason: ReasonRoomNotFound}
			line := fmt.Sprintf("  Room ID %d: %s", roomID, ReasonRoomNotFound)
			return result, s.rollback(result, failed,
				apperrors.New(apperrors.CodeNotFound, MsgNoRoomsBooked, apperrors.StatusNotFound).WithDetails(line))
		}

		if !s.IsAvailable(roomID, req.CheckIn, req.CheckOut) {
			failed := model.RoomOutcome{RoomID: roomID, RoomNumber: room.Number, Reason: ReasonNotAvailable}
			line := fmt.Sprintf("  Room %s: %s", room.Number, ReasonNotAvailable)
			return result, s.rollback(result, failed,
				apperrors.Conflict(MsgNoRoomsBooked).WithDetails(line))
		}

		booking := s.repo.Create(model.Booking{
			RoomID:        roomID,
			UserID:        req.UserID,
			TransactionID: txnID,
			CheckIn:       req.CheckIn,
			CheckOut:      req.CheckOut,
		})
		result.Rooms = append(result.Rooms, model.RoomOutcome{
			RoomID:     roomID,
			RoomNumber: room.Number,
			BookingID:  booking.ID,
		})
	}

	result.State = model.TxCommitted
	return result, nil
}

// acquireAll takes the lock of every distinct room in ascending id order. On
// the first failure it releases what it holds and reports the room it could
// not lock.
func (s *bookingService) acquireAll(ctx context.Context, roomIDs []int64) ([]*repository.RoomLease, int64, error) {
	ids := distinct(roomIDs)
	leases := make([]*repository.RoomLease, 0, len(ids))

	for _, id := range ids {
		lease, err := s.locks.Acquire(ctx, id, s.cfg.LockTimeout)
		if err != nil {
			s.releaseAll(leases)
			return nil, id, err
		}
		leases = append(leases, lease)
	}
	return leases, 0, nil
}

func (s *bookingService) releaseAll(leases []*repository.RoomLease) {
	for _, lease := range leases {
		if !lease.Release() {
			s.cfg.Log.Warn("Room lock was already released", "room_id", lease.RoomID())
		}
	}
}

func lockError(roomID int64, err error) error {
	switch {
	case errors.Is(err, bookingserrors.ErrRoomNotFound):
		return apperrors.New(apperrors.CodeNotFound, MsgNoRoomsBooked, apperrors.StatusNotFound).
			WithDetails(fmt.Sprintf("  Room ID %d: %s", roomID, ReasonRoomNotFound))
	case errors.Is(err, bookingserrors.ErrLockTimeout):
		return apperrors.Timeout(MsgNoRoomsBooked).
			WithDetails(fmt.Sprintf("  Room ID %d: %s", roomID, ReasonRoomBusy))
	default:
		return apperrors.Wrap(err, apperrors.CodeTimeout, MsgNoRoomsBooked, apperrors.StatusConflict).
			WithDetails(fmt.Sprintf("  Room ID %d: %s", roomID, ReasonRoomBusy))
	}
}

// rollback removes every booking stamped with the result's transaction id.
func (s *bookingService) rollback(result *model.BookingResult, failed model.RoomOutcome, cause *apperrors.AppError) error {
	removed := s.repo.DeleteByTransaction(result.TransactionID)
	markRolledBack(result)
	result.Rooms = append(result.Rooms, failed)
	result.State = model.TxRolledBack

	s.cfg.Log.Debug("Booking transaction rolled back",
		"transaction_id", result.TransactionID,
		"room_id", failed.RoomID,
		"reason", failed.Reason,
		"removed", len(removed),
	)
	return cause
}

func markRolledBack(result *model.BookingResult) {
	for i := range result.Rooms {
		if result.Rooms[i].Booked() {
			result.Rooms[i].BookingID = 0
			result.Rooms[i].Reason = ReasonRolledBack
		}
	}
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// List returns the requester's bookings, or everyone's for an admin, grouped
// by transaction in ascending order.
func (s *bookingService) List(requester *model.User) []TransactionBookings {
	var bookings []model.Booking
	if requester.IsAdmin {
		bookings = s.repo.FindAll()
	} else {
		bookings = s.repo.FindByUser(requester.ID)
	}

	rooms := make(map[int64]*model.Room)
	hotels := make(map[int64]string)
	users := make(map[int64]string)

	groups := make(map[int64]*TransactionBookings)
	var order []int64
	for _, b := range bookings {
		detail := BookingDetail{Booking: b, RoomNumber: "unknown", HotelName: "Unknown", Username: "unknown"}

		room, ok := rooms[b.RoomID]
		if !ok {
			room, _ = s.repo.FindRoom(b.RoomID)
			rooms[b.RoomID] = room
		}
		if room != nil {
			detail.RoomNumber = room.Number
			detail.RoomType = room.Type
			name, ok := hotels[room.HotelID]
			if !ok {
				if h, err := s.repo.FindHotel(room.HotelID); err == nil {
					name = h.Name
				} else {
					name = "Unknown"
				}
				hotels[room.HotelID] = name
			}
			detail.HotelName = name
		}

		username, ok := users[b.UserID]
		if !ok {
			if u, err := s.repo.FindUserByID(b.UserID); err == nil {
				username = u.Username
			} else {
				username = "unknown"
			}
			users[b.UserID] = username
		}
		detail.Username = username

		g, ok := groups[b.TransactionID]
		if !ok {
			g = &TransactionBookings{TransactionID: b.TransactionID}
			groups[b.TransactionID] = g
			order = append(order, b.TransactionID)
		}
		g.Bookings = append(g.Bookings, detail)
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	out := make([]TransactionBookings, 0, len(order))
	for _, id := range order {
		g := groups[id]
		sort.Slice(g.Bookings, func(i, j int) bool { return g.Bookings[i].ID < g.Bookings[j].ID })
		out = append(out, *g)
	}
	return out
}

// Remove deletes a single booking directly. It takes no room lock.
func (s *bookingService) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.InvalidInput(fmt.Sprintf("Invalid booking ID: %d", id))
	}

	removed, err := s.repo.Delete(id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return apperrors.Internal("Failed to remove booking", err)
	}

	s.cfg.Log.Info("Booking removed successfully",
		"id", id,
		"room_id", removed.RoomID,
		"transaction_id", removed.TransactionID,
	)
	s.events.Publish(ctx, events.BookingEvent{
		Type:          events.TypeBookingRemoved,
		TransactionID: removed.TransactionID,
		UserID:        removed.UserID,
		RoomIDs:       []int64{removed.RoomID},
		BookingIDs:    []int64{removed.ID},
		CheckIn:       removed.CheckIn,
		CheckOut:      removed.CheckOut,
	})
	return nil
}

// --- Helpers ---

func (s *bookingService) validate(req *model.BookingRequest) error {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.Validation(MsgNoRoomsBooked, verrs.Messages()...)
		}
		return apperrors.Validation(MsgNoRoomsBooked, "  "+err.Error())
	}
	return nil
}

func (s *bookingService) publishOutcome(ctx context.Context, req *model.BookingRequest, result *model.BookingResult) {
	ev := events.BookingEvent{
		TransactionID: result.TransactionID,
		UserID:        req.UserID,
		RoomIDs:       req.RoomIDs,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
	}

	switch result.State {
	case model.TxCommitted:
		ev.Type = events.TypeBookingCommitted
		for _, r := range result.Rooms {
			ev.BookingIDs = append(ev.BookingIDs, r.BookingID)
		}
	case model.TxRolledBack:
		ev.Type = events.TypeBookingRolledBack
	case model.TxFailed:
		ev.Type = events.TypeBookingFailed
	default:
		return
	}
	if ev.Type != events.TypeBookingCommitted {
		if n := len(result.Rooms); n > 0 {
			ev.Reason = result.Rooms[n-1].Reason
		}
	}
	s.events.Publish(ctx, ev)
}
