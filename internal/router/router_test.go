package router

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"hotelbook/internal/bookings/events"
	bookingrepo "hotelbook/internal/bookings/repository"
	bookingservice "hotelbook/internal/bookings/service"
	bookingvalidator "hotelbook/internal/bookings/validator"
	hotelrepo "hotelbook/internal/hotels/repository"
	hotelservice "hotelbook/internal/hotels/service"
	hotelvalidator "hotelbook/internal/hotels/validator"
	"hotelbook/internal/store"
	userrepo "hotelbook/internal/users/repository"
	userservice "hotelbook/internal/users/service"
	uservalidator "hotelbook/internal/users/validator"
	"hotelbook/pkg/config"
	"hotelbook/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*Router, *store.Store) {
	t.Helper()

	locks := bookingrepo.NewRoomLockTable()
	st := store.New(store.WithRoomObserver(locks))
	require.NoError(t, st.Seed())

	cfg := &config.Config{Log: logger.Discard(), LockTimeout: time.Second}
	hotels := hotelrepo.NewHotelRepository(st)
	rooms := hotelrepo.NewRoomRepository(st)
	hv := hotelvalidator.NewHotelValidator(cfg.Log)

	svc := Services{
		Users:  userservice.NewUserService(userrepo.NewUserRepository(st), uservalidator.NewUserValidator(cfg.Log), cfg),
		Hotels: hotelservice.NewHotelService(hotels, rooms, hv, cfg),
		Rooms:  hotelservice.NewRoomService(rooms, hotels, hv, cfg),
		Bookings: bookingservice.NewBookingService(
			bookingrepo.NewBookingRepository(st),
			locks,
			bookingvalidator.NewBookingValidator(cfg.Log),
			events.NewNoopPublisher(),
			cfg,
		),
	}
	return New(svc, cfg.Log), st
}

func TestHandle_Syntax(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name    string
		line    string
		status  int
		message string
	}{
		{name: "empty", line: "   ", status: 400, message: "Empty command"},
		{name: "unknown verb", line: "DANCE user user", status: 400, message: "Unknown command"},
		{name: "unknown noun", line: "CREATE SPACESHIP x admin admin", status: 400, message: "Unknown command"},
		{name: "missing credentials", line: "LIST ROOMS user", status: 400, message: "Invalid command format"},
		{name: "too many args", line: "REMOVE ROOM 1 2 admin admin", status: 400, message: "Invalid command format"},
		{name: "login wrong arity", line: "LOGIN user", status: 400, message: "Invalid command format"},
		{name: "lower case verb", line: "login user user", status: 200, message: "Login successful. User: user (ID: 2), Admin: No"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := r.Handle(context.Background(), tt.line)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestHandle_Authentication(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := r.Handle(context.Background(), "LIST ROOMS user wrong")
	assert.Equal(t, 403, resp.Status)
	assert.Equal(t, "Invalid credentials", resp.Message)

	resp = r.Handle(context.Background(), "CREATE HOTEL Plaza user user")
	assert.Equal(t, 403, resp.Status)
	assert.Equal(t, "Unauthorized access", resp.Message)

	resp = r.Handle(context.Background(), "LIST USERS user user")
	assert.Equal(t, 403, resp.Status)
}

func TestHandle_Login(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, "Login successful. User: admin (ID: 1), Admin: Yes",
		r.Handle(context.Background(), "LOGIN admin admin").Message)

	resp := r.Handle(context.Background(), "LOGIN ghost pw")
	assert.Equal(t, 404, resp.Status)
	assert.Equal(t, "User not found", resp.Message)

	resp = r.Handle(context.Background(), "LOGIN user nope")
	assert.Equal(t, 403, resp.Status)
	assert.Equal(t, "Invalid password", resp.Message)
}

func TestHandle_UserLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)
	ctx := context.Background()

	resp := r.Handle(ctx, "CREATE USER alice secret")
	require.Equal(t, 200, resp.Status)
	assert.Equal(t, "User created successfully: alice (ID: 3)", resp.Message)

	resp = r.Handle(ctx, "CREATE USER alice other")
	assert.Equal(t, 409, resp.Status)
	assert.Equal(t, "User already exists", resp.Message)

	resp = r.Handle(ctx, "LIST USERS admin admin")
	require.Equal(t, 200, resp.Status)
	assert.Contains(t, resp.Lines, "  User ID: 3 - Username: alice - Admin: No")

	resp = r.Handle(ctx, "REMOVE USER admin admin admin")
	assert.Equal(t, 403, resp.Status)
	assert.Equal(t, "Cannot remove admin user", resp.Message)

	resp = r.Handle(ctx, "REMOVE USER alice admin admin")
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "User removed successfully", resp.Message)
}

func TestHandle_HotelAndRoomLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)
	ctx := context.Background()

	resp := r.Handle(ctx, "CREATE HOTEL Sea View Resort admin admin")
	require.Equal(t, 200, resp.Status)
	assert.Equal(t, "Hotel added successfully - ID: 4 - Name: Sea View Resort", resp.Message)

	resp = r.Handle(ctx, "UPDATE HOTEL 4 Sea View admin admin")
	assert.Equal(t, "Hotel updated successfully", resp.Message)

	resp = r.Handle(ctx, "CREATE ROOM 4 101 DELUX_ROOM 300 admin admin")
	require.Equal(t, 200, resp.Status)
	assert.Equal(t, "Room added successfully - ID: 21", resp.Message)

	resp = r.Handle(ctx, "CREATE ROOM 4 102 CASTLE 300 admin admin")
	assert.Equal(t, 400, resp.Status)
	assert.Equal(t, "Invalid room type. Valid types: SINGLE, DOUBLE, DELUXE, SUITE", resp.Message)

	resp = r.Handle(ctx, "CREATE ROOM four 102 SINGLE 300 admin admin")
	assert.Equal(t, 400, resp.Status)
	assert.Equal(t, "Invalid hotel ID format: four", resp.Message)

	resp = r.Handle(ctx, "UPDATE ROOM 21 4 101 SUITE 450 admin admin")
	assert.Equal(t, "Room updated successfully", resp.Message)

	resp = r.Handle(ctx, "LIST HOTELS user user")
	require.Equal(t, 200, resp.Status)
	assert.Contains(t, resp.Lines, "  Hotel ID: 4 - Name: Sea View")
	assert.Contains(t, resp.Lines, "          Room ID: 21 - Number: 101 - Type: SUITE - Price: $450")

	resp = r.Handle(ctx, "REMOVE HOTEL 4 admin admin")
	assert.Equal(t, 400, resp.Status)
	assert.Equal(t, "Cannot remove hotel with existing rooms", resp.Message)

	assert.Equal(t, "Room removed successfully", r.Handle(ctx, "REMOVE ROOM 21 admin admin").Message)
	assert.Equal(t, "Hotel removed successfully", r.Handle(ctx, "REMOVE HOTEL 4 admin admin").Message)

	resp = r.Handle(ctx, "REMOVE HOTEL 4 admin admin")
	assert.Equal(t, 404, resp.Status)
	assert.Equal(t, "Hotel not found", resp.Message)
}

func TestHandle_ListRooms(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := r.Handle(context.Background(), "LIST ROOMS user user")
	require.Equal(t, 200, resp.Status)
	assert.Equal(t, "Rooms:", resp.Message)
	assert.Len(t, resp.Lines, 20)
	assert.True(t, strings.HasPrefix(resp.Lines[0], "  Room ID: 1 - Number: "))
	assert.Contains(t, resp.Lines[0], " - Hotel: ")
}

func TestHandle_BookScenario(t *testing.T) {
	r, st := newTestRouter(t)
	ctx := context.Background()

	room, err := st.FindRoom(5)
	require.NoError(t, err)

	resp := r.Handle(ctx, "BOOK 5 2025-06-01T10:00 2025-06-03T10:00 user user")
	require.Equal(t, 200, resp.Status, resp.String())
	assert.Equal(t, "Booking results:", resp.Message)
	assert.Equal(t, []string{fmt.Sprintf("  Room %s: Successfully booked (Booking ID: 1)", room.Number)}, resp.Lines)

	resp = r.Handle(ctx, "BOOK 5 2025-06-02T10:00 2025-06-04T10:00 user user")
	assert.Equal(t, 409, resp.Status)
	assert.Equal(t, "No rooms were successfully booked", resp.Message)
	assert.Equal(t, []string{fmt.Sprintf("  Room %s: Not available for selected dates", room.Number)}, resp.Lines)

	assert.Len(t, st.BookingsForRoom(5), 1)
}

func TestHandle_BookErrors(t *testing.T) {
	r, st := newTestRouter(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		line    string
		status  int
		message string
		lines   []string
	}{
		{
			name:    "bad room id",
			line:    "BOOK 1 x2 2025-06-01T10:00 2025-06-02T10:00 user user",
			status:  400,
			message: "No rooms were successfully booked",
			lines:   []string{"  Invalid room ID format: x2"},
		},
		{
			name:    "bad date",
			line:    "BOOK 1 2025-06-01 2025-06-02T10:00 user user",
			status:  400,
			message: "Invalid date format",
		},
		{
			name:    "unknown room",
			line:    "BOOK 1 999 2025-06-01T10:00 2025-06-02T10:00 user user",
			status:  404,
			message: "No rooms were successfully booked",
			lines:   []string{"  Room ID 999: Room not found"},
		},
		{
			name:    "reversed interval",
			line:    "BOOK 1 2025-06-02T10:00 2025-06-01T10:00 user user",
			status:  400,
			message: "No rooms were successfully booked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := r.Handle(ctx, tt.line)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.message, resp.Message)
			if tt.lines != nil {
				assert.Equal(t, tt.lines, resp.Lines)
			}
		})
	}
	assert.Empty(t, st.Bookings())
}

func TestHandle_ConcurrentBookSameRoom(t *testing.T) {
	r, st := newTestRouter(t)

	var wg sync.WaitGroup
	statuses := make(chan int, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			statuses <- r.Handle(context.Background(), "BOOK 7 2025-07-01T14:00 2025-07-03T11:00 user user").Status
		}()
	}
	wg.Wait()
	close(statuses)

	ok := 0
	for s := range statuses {
		if s == 200 {
			ok++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Len(t, st.BookingsForRoom(7), 1)
}

func TestHandle_Check(t *testing.T) {
	r, _ := newTestRouter(t)
	ctx := context.Background()

	require.Equal(t, 200, r.Handle(ctx, "BOOK 1 2 2025-06-01T10:00 2025-06-03T10:00 user user").Status)

	resp := r.Handle(ctx, "CHECK 2025-06-02T00:00 2025-06-02T23:00 user user")
	require.Equal(t, 200, resp.Status)
	assert.Equal(t, "Available rooms for the selected dates:", resp.Message)
	assert.Len(t, resp.Lines, 18)
	for _, line := range resp.Lines {
		assert.False(t, strings.HasPrefix(line, "  Room ID: 1 "))
		assert.False(t, strings.HasPrefix(line, "  Room ID: 2 "))
	}

	resp = r.Handle(ctx, "CHECK 2025-06-03T10:00 2025-06-02T10:00 user user")
	assert.Equal(t, 400, resp.Status)
}

func TestHandle_ListAndRemoveBookings(t *testing.T) {
	r, _ := newTestRouter(t)
	ctx := context.Background()

	resp := r.Handle(ctx, "LIST BOOKINGS user user")
	assert.Equal(t, 404, resp.Status)
	assert.Equal(t, "No bookings found", resp.Message)

	require.Equal(t, 200, r.Handle(ctx, "BOOK 3 4 2025-06-01T10:00 2025-06-02T10:00 user user").Status)
	require.Equal(t, 200, r.Handle(ctx, "BOOK 9 2025-06-01T10:00 2025-06-02T10:00 admin admin").Status)

	resp = r.Handle(ctx, "LIST BOOKINGS user user")
	require.Equal(t, 200, resp.Status)
	assert.Equal(t, "All Bookings:", resp.Message)
	assert.Equal(t, "Transaction #1", resp.Lines[0])
	assert.Equal(t, "  Booking #1", resp.Lines[1])
	assert.Contains(t, resp.Lines, "    - User: user (UserId: 2)")
	assert.Contains(t, resp.Lines, "    - Check-in: 2025-06-01 10:00")
	assert.NotContains(t, resp.Lines, "Transaction #2")

	resp = r.Handle(ctx, "LIST BOOKINGS admin admin")
	assert.Contains(t, resp.Lines, "Transaction #2")

	assert.Equal(t, "Booking removed successfully", r.Handle(ctx, "REMOVE BOOKING 1 admin admin").Message)

	resp = r.Handle(ctx, "REMOVE BOOKING 1 admin admin")
	assert.Equal(t, 404, resp.Status)
	assert.Equal(t, "Booking not found", resp.Message)
}

func TestResponseFraming(t *testing.T) {
	r, _ := newTestRouter(t)

	out := r.Handle(context.Background(), "LOGIN user user").String()
	assert.True(t, strings.HasSuffix(out, "\n\n"))
	assert.True(t, strings.HasPrefix(out, "200 "))
}
