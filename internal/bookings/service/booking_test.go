package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotelbook/internal/bookings/events"
	"hotelbook/internal/bookings/repository"
	"hotelbook/internal/bookings/validator"
	"hotelbook/internal/store"
	"hotelbook/pkg/config"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminID = int64(1)
	userID  = int64(2)
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.BookingEvent) {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

// faultyRepository lets a test break individual repository calls.
type faultyRepository struct {
	repository.BookingRepository
	findRoomFunc func(id int64) (*model.Room, error)
	createFunc   func(b model.Booking) model.Booking
}

func (r *faultyRepository) FindRoom(id int64) (*model.Room, error) {
	if r.findRoomFunc != nil {
		return r.findRoomFunc(id)
	}
	return r.BookingRepository.FindRoom(id)
}

func (r *faultyRepository) Create(b model.Booking) model.Booking {
	if r.createFunc != nil {
		return r.createFunc(b)
	}
	return r.BookingRepository.Create(b)
}

type fixture struct {
	svc       *bookingService
	store     *store.Store
	locks     repository.RoomLockTable
	repo      repository.BookingRepository
	publisher *recordingPublisher
}

func newFixture(t *testing.T, lockTimeout time.Duration) *fixture {
	t.Helper()

	locks := repository.NewRoomLockTable()
	st := store.New(store.WithRoomObserver(locks))
	require.NoError(t, st.Seed())

	cfg := &config.Config{
		Log:         logger.Discard(),
		LockTimeout: lockTimeout,
	}
	repo := repository.NewBookingRepository(st)
	publisher := &recordingPublisher{}

	svc := NewBookingService(repo, locks, validator.NewBookingValidator(cfg.Log), publisher, cfg).(*bookingService)
	return &fixture{svc: svc, store: st, locks: locks, repo: repo, publisher: publisher}
}

// withRepo swaps the repository the coordinator talks to.
func (f *fixture) withRepo(repo repository.BookingRepository) {
	f.svc.repo = repo
	f.svc.AvailabilityOracle = NewAvailabilityOracle(repo)
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func request(in, out string, rooms ...int64) *model.BookingRequest {
	return &model.BookingRequest{RoomIDs: rooms, CheckIn: at(in), CheckOut: at(out), UserID: userID}
}

func requireCode(t *testing.T, err error, code string, status int) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, status, appErr.StatusCode())
	assert.Equal(t, MsgNoRoomsBooked, appErr.Message)
	return appErr
}

func assertAllUnlocked(t *testing.T, locks repository.RoomLockTable, rooms ...int64) {
	t.Helper()
	for _, id := range rooms {
		assert.False(t, locks.Locked(id), "room %d still locked", id)
	}
}

func TestBook_RoomFiveScenario(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx := context.Background()

	result, err := f.svc.Book(ctx, request("2025-06-01T10:00", "2025-06-03T10:00", 5))
	require.NoError(t, err)
	assert.Equal(t, model.TxCommitted, result.State)
	assert.Equal(t, int64(1), result.TransactionID)
	require.Len(t, result.Rooms, 1)
	assert.Equal(t, "C101", result.Rooms[0].RoomNumber)
	assert.True(t, result.Rooms[0].Booked())

	result, err = f.svc.Book(ctx, request("2025-06-02T10:00", "2025-06-04T10:00", 5))
	appErr := requireCode(t, err, apperrors.CodeConflict, apperrors.StatusConflict)
	assert.Equal(t, []string{"  Room C101: Not available for selected dates"}, appErr.Details)
	assert.Equal(t, model.TxRolledBack, result.State)

	assert.Len(t, f.store.BookingsForRoom(5), 1)
	assertAllUnlocked(t, f.locks, 5)
}

func TestBook_NoDoubleBookingUnderContention(t *testing.T) {
	f := newFixture(t, 10*time.Second)

	const n = 100
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, conflicts := 0, 0

	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.svc.Book(context.Background(), request("2025-07-01T10:00", "2025-07-05T10:00", 7))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if apperrors.HasCode(err, apperrors.CodeConflict) {
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
	assert.Len(t, f.store.BookingsForRoom(7), 1)
	assertAllUnlocked(t, f.locks, 7)
}

func TestBook_OverlappingMultiRoomRequestsNeverDoubleBook(t *testing.T) {
	f := newFixture(t, 10*time.Second)

	sets := [][]int64{{1, 2}, {2, 3}, {3, 1}, {1, 2, 3}, {3}}
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(rooms []int64) {
			defer wg.Done()
			_, _ = f.svc.Book(context.Background(), request("2025-08-01T10:00", "2025-08-02T10:00", rooms...))
		}(sets[i%len(sets)])
	}
	wg.Wait()

	for _, room := range []int64{1, 2, 3} {
		assert.LessOrEqual(t, len(f.store.BookingsForRoom(room)), 1, "room %d double booked", room)
	}
	for _, b := range f.store.Bookings() {
		assert.Equal(t, userID, b.UserID)
	}
	assertAllUnlocked(t, f.locks, 1, 2, 3)
}

func TestBook_AtomicMultiRoomRollback(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, request("2025-06-10T10:00", "2025-06-12T10:00", 3))
	require.NoError(t, err)

	result, err := f.svc.Book(ctx, request("2025-06-11T10:00", "2025-06-13T10:00", 1, 2, 3))
	requireCode(t, err, apperrors.CodeConflict, apperrors.StatusConflict)

	assert.Equal(t, model.TxRolledBack, result.State)
	require.Len(t, result.Rooms, 3)
	assert.Equal(t, ReasonRolledBack, result.Rooms[0].Reason)
	assert.Equal(t, ReasonRolledBack, result.Rooms[1].Reason)
	assert.Equal(t, ReasonNotAvailable, result.Rooms[2].Reason)

	assert.Empty(t, f.store.BookingsForRoom(1))
	assert.Empty(t, f.store.BookingsForRoom(2))
	assert.Len(t, f.store.BookingsForRoom(3), 1)
	assertAllUnlocked(t, f.locks, 1, 2, 3)
}

func TestBook_TouchingIntervalsConflict(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, request("2025-06-01T10:00", "2025-06-01T12:00", 4))
	require.NoError(t, err)

	_, err = f.svc.Book(ctx, request("2025-06-01T12:00", "2025-06-01T14:00", 4))
	requireCode(t, err, apperrors.CodeConflict, apperrors.StatusConflict)

	_, err = f.svc.Book(ctx, request("2025-06-01T12:01", "2025-06-01T14:00", 4))
	assert.NoError(t, err)
}

func TestBook_TransactionGrouping(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx := context.Background()

	first, err := f.svc.Book(ctx, request("2025-06-01T10:00", "2025-06-02T10:00", 1))
	require.NoError(t, err)

	result, err := f.svc.Book(ctx, request("2025-06-01T10:00", "2025-06-02T10:00", 2, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, first.TransactionID+1, result.TransactionID)

	var grouped []model.Booking
	for _, b := range f.store.Bookings() {
		if b.TransactionID == result.TransactionID {
			grouped = append(grouped, b)
		}
	}
	require.Len(t, grouped, 3)
	for i, outcome := range result.Rooms {
		assert.Equal(t, grouped[i].ID, outcome.BookingID)
	}
}

func TestBook_FailedRequestDoesNotConsumeTransactionID(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, request("2025-06-01T10:00", "2025-06-02T10:00", 1))
	require.NoError(t, err)
	_, err = f.svc.Book(ctx, request("2025-06-01T10:00", "2025-06-02T10:00", 2, 1))
	require.Error(t, err)

	result, err := f.svc.Book(ctx, request("2025-06-01T10:00", "2025-06-02T10:00", 2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TransactionID)
}

func TestBook_UnknownRoomFailsBeforeBooking(t *testing.T) {
	f := newFixture(t, time.Second)

	result, err := f.svc.Book(context.Background(), request("2025-06-01T10:00", "2025-06-02T10:00", 1, 999))
	appErr := requireCode(t, err, apperrors.CodeNotFound, apperrors.StatusNotFound)
	assert.Equal(t, []string{"  Room ID 999: Room not found"}, appErr.Details)

	assert.Equal(t, model.TxFailed, result.State)
	assert.Zero(t, result.TransactionID)
	assert.Empty(t, f.store.Bookings())
	assertAllUnlocked(t, f.locks, 1)
}

func TestBook_LockTimeout(t *testing.T) {
	f := newFixture(t, 50*time.Millisecond)

	held, err := f.locks.Acquire(context.Background(), 2, time.Second)
	require.NoError(t, err)

	start := time.Now()
	result, err := f.svc.Book(context.Background(), request("2025-06-01T10:00", "2025-06-02T10:00", 1, 2))
	appErr := requireCode(t, err, apperrors.CodeTimeout, apperrors.StatusConflict)
	assert.Equal(t, []string{"  Room ID 2: Room is busy, please try again"}, appErr.Details)
	assert.Less(t, time.Since(start), time.Second)

	assert.Equal(t, model.TxFailed, result.State)
	assert.Empty(t, f.store.Bookings())
	assertAllUnlocked(t, f.locks, 1)

	held.Release()
	_, err = f.svc.Book(context.Background(), request("2025-06-01T10:00", "2025-06-02T10:00", 1, 2))
	assert.NoError(t, err)
	assertAllUnlocked(t, f.locks, 1, 2)
}

func TestBook_RoomVanishesAfterLocking(t *testing.T) {
	f := newFixture(t, time.Second)
	f.withRepo(&faultyRepository{
		BookingRepository: f.repo,
		findRoomFunc: func(id int64) (*model.Room, error) {
			if id == 2 {
				return nil, store.ErrRoomNotFound
			}
			return f.repo.FindRoom(id)
		},
	})

	result, err := f.svc.Book(context.Background(), request("2025-06-01T10:00", "2025-06-02T10:00", 1, 2))
	appErr := requireCode(t, err, apperrors.CodeNotFound, apperrors.StatusNotFound)
	assert.Equal(t, []string{"  Room ID 2: Room not found"}, appErr.Details)
	assert.Equal(t, model.TxRolledBack, result.State)
	assert.Empty(t, f.store.Bookings())
	assertAllUnlocked(t, f.locks, 1, 2)
}

func TestBook_DuplicateRoomInRequest(t *testing.T) {
	f := newFixture(t, time.Second)

	result, err := f.svc.Book(context.Background(), request("2025-06-01T10:00", "2025-06-02T10:00", 6, 6))
	requireCode(t, err, apperrors.CodeConflict, apperrors.StatusConflict)
	assert.Equal(t, model.TxRolledBack, result.State)
	assert.Empty(t, f.store.Bookings())
	assertAllUnlocked(t, f.locks, 6)
}

func TestBook_PanicRollsBackAndReleases(t *testing.T) {
	f := newFixture(t, time.Second)
	calls := 0
	f.withRepo(&faultyRepository{
		BookingRepository: f.repo,
		createFunc: func(b model.Booking) model.Booking {
			calls++
			if calls == 2 {
				panic("store exploded")
			}
			return f.repo.Create(b)
		},
	})

	result, err := f.svc.Book(context.Background(), request("2025-06-01T10:00", "2025-06-02T10:00", 1, 2))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
	assert.Equal(t, model.TxRolledBack, result.State)
	assert.Empty(t, f.store.Bookings())
	assertAllUnlocked(t, f.locks, 1, 2)
}

func TestBook_Validation(t *testing.T) {
	f := newFixture(t, time.Second)

	result, err := f.svc.Book(context.Background(), request("2025-06-02T10:00", "2025-06-01T10:00", 1))
	require.Error(t, err)
	assert.Nil(t, result)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, []string{"  Check-out time must be after check-in time"}, appErr.Details)
	assert.Empty(t, f.publisher.types())
}

func TestBook_PublishesOutcome(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, request("2025-06-01T10:00", "2025-06-02T10:00", 1, 2))
	require.NoError(t, err)
	_, _ = f.svc.Book(ctx, request("2025-06-01T10:00", "2025-06-02T10:00", 2))
	_, _ = f.svc.Book(ctx, request("2025-06-01T10:00", "2025-06-02T10:00", 404))

	assert.Equal(t, []string{
		events.TypeBookingCommitted,
		events.TypeBookingRolledBack,
		events.TypeBookingFailed,
	}, f.publisher.types())
	assert.Len(t, f.publisher.events[0].BookingIDs, 2)
	assert.Equal(t, ReasonNotAvailable, f.publisher.events[1].Reason)
	assert.Equal(t, ReasonRoomNotFound, f.publisher.events[2].Reason)
}

func TestIsAvailable_Idempotent(t *testing.T) {
	f := newFixture(t, time.Second)
	_, err := f.svc.Book(context.Background(), request("2025-06-01T10:00", "2025-06-03T10:00", 8))
	require.NoError(t, err)

	tests := []struct {
		name     string
		in, out  string
		expected bool
	}{
		{"inside", "2025-06-02T00:00", "2025-06-02T12:00", false},
		{"touching start", "2025-05-30T10:00", "2025-06-01T10:00", false},
		{"touching end", "2025-06-03T10:00", "2025-06-04T10:00", false},
		{"before", "2025-05-30T10:00", "2025-06-01T09:59", true},
		{"after", "2025-06-03T10:01", "2025-06-04T10:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := f.svc.IsAvailable(8, at(tt.in), at(tt.out))
			second := f.svc.IsAvailable(8, at(tt.in), at(tt.out))
			assert.Equal(t, tt.expected, first)
			assert.Equal(t, first, second)
		})
	}
}

func TestAvailableRooms(t *testing.T) {
	f := newFixture(t, time.Second)
	_, err := f.svc.Book(context.Background(), request("2025-06-01T10:00", "2025-06-03T10:00", 1, 20))
	require.NoError(t, err)

	rooms := f.svc.AvailableRooms(at("2025-06-02T10:00"), at("2025-06-02T11:00"))
	require.Len(t, rooms, 18)
	assert.Equal(t, int64(2), rooms[0].Room.ID)
	assert.Equal(t, "Taj Hotel - Mumbai", rooms[0].HotelName)
	assert.Equal(t, "Taj Hotel - Ahmedabad", rooms[len(rooms)-1].HotelName)
}

func TestList(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, request("2025-06-01T10:00", "2025-06-02T10:00", 1, 2))
	require.NoError(t, err)
	adminReq := request("2025-06-01T10:00", "2025-06-02T10:00", 9)
	adminReq.UserID = adminID
	_, err = f.svc.Book(ctx, adminReq)
	require.NoError(t, err)

	user, err := f.store.FindUser("user")
	require.NoError(t, err)
	own := f.svc.List(user)
	require.Len(t, own, 1)
	require.Len(t, own[0].Bookings, 2)
	assert.Equal(t, "A101", own[0].Bookings[0].RoomNumber)
	assert.Equal(t, model.RoomSingle, own[0].Bookings[0].RoomType)
	assert.Equal(t, "Taj Hotel - Mumbai", own[0].Bookings[0].HotelName)
	assert.Equal(t, "user", own[0].Bookings[0].Username)

	admin, err := f.store.FindUser("admin")
	require.NoError(t, err)
	all := f.svc.List(admin)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].TransactionID)
	assert.Equal(t, int64(2), all[1].TransactionID)
	assert.Equal(t, "Taj Hotel - Udaipur", all[1].Bookings[0].HotelName)
}

func TestRemove(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx := context.Background()

	result, err := f.svc.Book(ctx, request("2025-06-01T10:00", "2025-06-02T10:00", 10))
	require.NoError(t, err)

	err = f.svc.Remove(ctx, 999)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	require.NoError(t, f.svc.Remove(ctx, result.Rooms[0].BookingID))
	assert.Empty(t, f.store.Bookings())
	assert.Contains(t, f.publisher.types(), events.TypeBookingRemoved)

	_, err = f.svc.Book(ctx, request("2025-06-01T10:00", "2025-06-02T10:00", 10))
	assert.NoError(t, err, "room is bookable again after removal")
}
