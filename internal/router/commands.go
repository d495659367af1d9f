package router

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	bookingservice "hotelbook/internal/bookings/service"
	hotelservice "hotelbook/internal/hotels/service"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/model"
	"hotelbook/pkg/protocol"
)

// --- Users ---

func (r *Router) login(_ context.Context, _ *model.User, args []string) protocol.Response {
	user, err := r.svc.Users.Login(args[0], args[1])
	if err != nil {
		return protocol.FromError(err)
	}
	return protocol.OK(fmt.Sprintf("Login successful. User: %s (ID: %d), Admin: %s",
		user.Username, user.ID, yesNo(user.IsAdmin)))
}

func (r *Router) createUser(_ context.Context, _ *model.User, args []string) protocol.Response {
	user, err := r.svc.Users.Create(args[0], args[1])
	if err != nil {
		return protocol.FromError(err)
	}
	return protocol.OK(fmt.Sprintf("User created successfully: %s (ID: %d)", user.Username, user.ID))
}

func (r *Router) removeUser(_ context.Context, _ *model.User, args []string) protocol.Response {
	if err := r.svc.Users.Remove(args[0]); err != nil {
		return protocol.FromError(err)
	}
	return protocol.OK("User removed successfully")
}

func (r *Router) listUsers(_ context.Context, _ *model.User, _ []string) protocol.Response {
	users := r.svc.Users.List()
	if len(users) == 0 {
		return protocol.Fail(apperrors.StatusNotFound, "No users found")
	}

	lines := make([]string, 0, len(users))
	for _, u := range users {
		lines = append(lines, fmt.Sprintf("  User ID: %d - Username: %s - Admin: %s", u.ID, u.Username, yesNo(u.IsAdmin)))
	}
	return protocol.OK("Users:", lines...)
}

// --- Hotels ---

func (r *Router) createHotel(_ context.Context, _ *model.User, args []string) protocol.Response {
	hotel, err := r.svc.Hotels.Create(strings.Join(args, " "))
	if err != nil {
		return protocol.FromError(err)
	}
	return protocol.OK(fmt.Sprintf("Hotel added successfully - ID: %d - Name: %s", hotel.ID, hotel.Name))
}

func (r *Router) updateHotel(_ context.Context, _ *model.User, args []string) protocol.Response {
	id, err := parseID(args[0])
	if err != nil {
		return invalidID("hotel", args[0])
	}
	if _, err := r.svc.Hotels.Update(id, strings.Join(args[1:], " ")); err != nil {
		return protocol.FromError(err)
	}
	return protocol.OK("Hotel updated successfully")
}

func (r *Router) removeHotel(_ context.Context, _ *model.User, args []string) protocol.Response {
	id, err := parseID(args[0])
	if err != nil {
		return invalidID("hotel", args[0])
	}
	if err := r.svc.Hotels.Remove(id); err != nil {
		return protocol.FromError(err)
	}
	return protocol.OK("Hotel removed successfully")
}

func (r *Router) listHotels(_ context.Context, _ *model.User, _ []string) protocol.Response {
	hotels := r.svc.Hotels.List()
	if len(hotels) == 0 {
		return protocol.Fail(apperrors.StatusNotFound, "No hotels found")
	}

	var lines []string
	for _, h := range hotels {
		lines = append(lines, fmt.Sprintf("  Hotel ID: %d - Name: %s", h.ID, h.Name))
		for _, room := range h.Rooms {
			lines = append(lines, fmt.Sprintf("          Room ID: %d - Number: %s - Type: %s - Price: $%d",
				room.ID, room.Number, room.Type, room.Price))
		}
	}
	return protocol.OK("Hotels:", lines...)
}

// --- Rooms ---

func (r *Router) createRoom(_ context.Context, _ *model.User, args []string) protocol.Response {
	in, resp, ok := parseRoomInput(args)
	if !ok {
		return resp
	}
	room, err := r.svc.Rooms.Create(in)
	if err != nil {
		return protocol.FromError(err)
	}
	return protocol.OK(fmt.Sprintf("Room added successfully - ID: %d", room.ID))
}

func (r *Router) updateRoom(_ context.Context, _ *model.User, args []string) protocol.Response {
	id, err := parseID(args[0])
	if err != nil {
		return invalidID("room", args[0])
	}
	in, resp, ok := parseRoomInput(args[1:])
	if !ok {
		return resp
	}
	if _, err := r.svc.Rooms.Update(id, in); err != nil {
		return protocol.FromError(err)
	}
	return protocol.OK("Room updated successfully")
}

func (r *Router) removeRoom(_ context.Context, _ *model.User, args []string) protocol.Response {
	id, err := parseID(args[0])
	if err != nil {
		return invalidID("room", args[0])
	}
	if err := r.svc.Rooms.Remove(id); err != nil {
		return protocol.FromError(err)
	}
	return protocol.OK("Room removed successfully")
}

func (r *Router) listRooms(_ context.Context, _ *model.User, _ []string) protocol.Response {
	rooms := r.svc.Rooms.List()
	if len(rooms) == 0 {
		return protocol.Fail(apperrors.StatusNotFound, "No rooms found")
	}

	lines := make([]string, 0, len(rooms))
	for _, room := range rooms {
		lines = append(lines, roomLine(room.Room, room.HotelName))
	}
	return protocol.OK("Rooms:", lines...)
}

// parseRoomInput reads <hotelId> <number> <type> <price>.
func parseRoomInput(args []string) (hotelservice.RoomInput, protocol.Response, bool) {
	hotelID, err := parseID(args[0])
	if err != nil {
		return hotelservice.RoomInput{}, invalidID("hotel", args[0]), false
	}
	price, err := strconv.Atoi(args[3])
	if err != nil {
		return hotelservice.RoomInput{}, protocol.Fail(apperrors.StatusBadRequest, "Invalid price format: "+args[3]), false
	}
	return hotelservice.RoomInput{
		HotelID: hotelID,
		Number:  args[1],
		Type:    args[2],
		Price:   price,
	}, protocol.Response{}, true
}

func roomLine(room model.Room, hotelName string) string {
	return fmt.Sprintf("  Room ID: %d - Number: %s - Type: %s - Price: $%d - Hotel: %s",
		room.ID, room.Number, room.Type, room.Price, hotelName)
}

// --- Bookings ---

func (r *Router) check(_ context.Context, _ *model.User, args []string) protocol.Response {
	checkIn, checkOut, resp, ok := parseInterval(args[0], args[1])
	if !ok {
		return resp
	}
	if !checkOut.After(checkIn) {
		return protocol.Fail(apperrors.StatusBadRequest, "Check-out time must be after check-in time")
	}

	rooms := r.svc.Bookings.AvailableRooms(checkIn, checkOut)
	if len(rooms) == 0 {
		return protocol.Fail(apperrors.StatusNotFound, "No rooms available for the selected dates")
	}

	lines := make([]string, 0, len(rooms))
	for _, room := range rooms {
		lines = append(lines, roomLine(room.Room, room.HotelName))
	}
	return protocol.OK("Available rooms for the selected dates:", lines...)
}

// book hands the parsed request to the booking coordinator. A malformed room
// id fails the whole request before any lock is taken.
func (r *Router) book(ctx context.Context, caller *model.User, args []string) protocol.Response {
	n := len(args)
	checkIn, checkOut, resp, ok := parseInterval(args[n-2], args[n-1])
	if !ok {
		return resp
	}

	roomIDs := make([]int64, 0, n-2)
	for _, raw := range args[:n-2] {
		id, err := parseID(raw)
		if err != nil {
			return protocol.Fail(apperrors.StatusBadRequest, bookingservice.MsgNoRoomsBooked,
				"  Invalid room ID format: "+raw)
		}
		roomIDs = append(roomIDs, id)
	}

	result, err := r.svc.Bookings.Book(ctx, &model.BookingRequest{
		RoomIDs:  roomIDs,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		UserID:   caller.ID,
	})
	if err != nil {
		return protocol.FromError(err)
	}

	lines := make([]string, 0, len(result.Rooms))
	for _, room := range result.Rooms {
		lines = append(lines, fmt.Sprintf("  Room %s: Successfully booked (Booking ID: %d)", room.RoomNumber, room.BookingID))
	}
	return protocol.OK("Booking results:", lines...)
}

func (r *Router) listBookings(_ context.Context, caller *model.User, _ []string) protocol.Response {
	groups := r.svc.Bookings.List(caller)
	if len(groups) == 0 {
		return protocol.Fail(apperrors.StatusNotFound, "No bookings found")
	}

	var lines []string
	for _, g := range groups {
		lines = append(lines, fmt.Sprintf("Transaction #%d", g.TransactionID))
		for _, b := range g.Bookings {
			lines = append(lines,
				fmt.Sprintf("  Booking #%d", b.ID),
				fmt.Sprintf("    - Room: %s (RoomId: %d)", b.RoomNumber, b.RoomID),
				fmt.Sprintf("    - User: %s (UserId: %d)", b.Username, b.UserID),
				fmt.Sprintf("    - Room Type: %s", b.RoomType),
				fmt.Sprintf("    - Hotel: %s", b.HotelName),
				fmt.Sprintf("    - Check-in: %s", b.CheckIn.Format(protocol.DisplayLayout)),
				fmt.Sprintf("    - Check-out: %s", b.CheckOut.Format(protocol.DisplayLayout)),
			)
		}
	}
	return protocol.OK("All Bookings:", lines...)
}

func (r *Router) removeBooking(ctx context.Context, _ *model.User, args []string) protocol.Response {
	id, err := parseID(args[0])
	if err != nil {
		return invalidID("booking", args[0])
	}
	if err := r.svc.Bookings.Remove(ctx, id); err != nil {
		return protocol.FromError(err)
	}
	return protocol.OK("Booking removed successfully")
}

// --- Helpers ---

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func parseInterval(rawIn, rawOut string) (time.Time, time.Time, protocol.Response, bool) {
	checkIn, err := protocol.ParseDateTime(rawIn)
	if err != nil {
		return time.Time{}, time.Time{}, invalidDate(rawIn), false
	}
	checkOut, err := protocol.ParseDateTime(rawOut)
	if err != nil {
		return time.Time{}, time.Time{}, invalidDate(rawOut), false
	}
	return checkIn, checkOut, protocol.Response{}, true
}

func invalidDate(raw string) protocol.Response {
	return protocol.Fail(apperrors.StatusBadRequest, "Invalid date format",
		fmt.Sprintf("  %s does not match %s", raw, "YYYY-MM-DDTHH:MM"))
}
