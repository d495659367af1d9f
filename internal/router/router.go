// Package router turns request lines into service calls and renders the
// outcome as a protocol response.
package router

import (
	"context"
	"fmt"
	"strings"

	bookingservice "hotelbook/internal/bookings/service"
	hotelservice "hotelbook/internal/hotels/service"
	userservice "hotelbook/internal/users/service"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
	"hotelbook/pkg/protocol"
)

type Services struct {
	Users    userservice.UserService
	Hotels   hotelservice.HotelService
	Rooms    hotelservice.RoomService
	Bookings bookingservice.BookingService
}

type access int

const (
	public access = iota
	member
	admin
)

type handlerFunc func(ctx context.Context, caller *model.User, args []string) protocol.Response

// command describes one request form. args counts the tokens between the
// command name and the trailing credentials; variadic commands take at least
// that many.
type command struct {
	name     string
	usage    string
	args     int
	variadic bool
	access   access
	run      handlerFunc
}

type Router struct {
	svc      Services
	log      *logger.Logger
	commands map[string]command
}

func New(svc Services, log *logger.Logger) *Router {
	r := &Router{svc: svc, log: log}
	r.commands = make(map[string]command)
	for _, c := range r.table() {
		r.commands[c.name] = c
	}
	return r
}

func (r *Router) table() []command {
	return []command{
		{name: "LOGIN", usage: "LOGIN <username> <password>", args: 2, access: public, run: r.login},
		{name: "CREATE USER", usage: "CREATE USER <username> <password>", args: 2, access: public, run: r.createUser},
		{name: "CREATE HOTEL", usage: "CREATE HOTEL <name> <adminUser> <adminPass>", args: 1, variadic: true, access: admin, run: r.createHotel},
		{name: "CREATE ROOM", usage: "CREATE ROOM <hotelId> <number> <type> <price> <adminUser> <adminPass>", args: 4, access: admin, run: r.createRoom},
		{name: "UPDATE HOTEL", usage: "UPDATE HOTEL <hotelId> <name> <adminUser> <adminPass>", args: 2, variadic: true, access: admin, run: r.updateHotel},
		{name: "UPDATE ROOM", usage: "UPDATE ROOM <roomId> <hotelId> <number> <type> <price> <adminUser> <adminPass>", args: 5, access: admin, run: r.updateRoom},
		{name: "REMOVE USER", usage: "REMOVE USER <username> <adminUser> <adminPass>", args: 1, access: admin, run: r.removeUser},
		{name: "REMOVE HOTEL", usage: "REMOVE HOTEL <hotelId> <adminUser> <adminPass>", args: 1, access: admin, run: r.removeHotel},
		{name: "REMOVE ROOM", usage: "REMOVE ROOM <roomId> <adminUser> <adminPass>", args: 1, access: admin, run: r.removeRoom},
		{name: "REMOVE BOOKING", usage: "REMOVE BOOKING <bookingId> <adminUser> <adminPass>", args: 1, access: admin, run: r.removeBooking},
		{name: "LIST ROOMS", usage: "LIST ROOMS <username> <password>", access: member, run: r.listRooms},
		{name: "LIST HOTELS", usage: "LIST HOTELS <username> <password>", access: member, run: r.listHotels},
		{name: "LIST USERS", usage: "LIST USERS <adminUser> <adminPass>", access: admin, run: r.listUsers},
		{name: "LIST BOOKINGS", usage: "LIST BOOKINGS <username> <password>", access: member, run: r.listBookings},
		{name: "CHECK", usage: "CHECK <checkIn> <checkOut> <username> <password>", args: 2, access: member, run: r.check},
		{name: "BOOK", usage: "BOOK <roomId>... <checkIn> <checkOut> <username> <password>", args: 3, variadic: true, access: member, run: r.book},
	}
}

// Handle executes one request line.
func (r *Router) Handle(ctx context.Context, line string) protocol.Response {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return protocol.Fail(apperrors.StatusBadRequest, "Empty command")
	}

	cmd, rest, ok := r.lookup(tokens)
	if !ok {
		r.log.Debug("Unknown command", "command", tokens[0])
		return protocol.Fail(apperrors.StatusBadRequest, "Unknown command", "  "+strings.Join(tokens[:min(2, len(tokens))], " "))
	}

	want := cmd.args
	if cmd.access != public {
		want += 2
	}
	if len(rest) < want || (!cmd.variadic && len(rest) > want) {
		return protocol.Fail(apperrors.StatusBadRequest, "Invalid command format", "  Usage: "+cmd.usage)
	}

	var caller *model.User
	if cmd.access != public {
		username, password := rest[len(rest)-2], rest[len(rest)-1]
		rest = rest[:len(rest)-2]

		var err error
		if cmd.access == admin {
			caller, err = r.svc.Users.AuthorizeAdmin(username, password)
		} else {
			caller, err = r.svc.Users.Authenticate(username, password)
		}
		if err != nil {
			return protocol.FromError(err)
		}
	}

	resp := cmd.run(ctx, caller, rest)
	r.log.Debug("Command handled", "command", cmd.name, "status", resp.Status)
	return resp
}

func (r *Router) lookup(tokens []string) (command, []string, bool) {
	verb := strings.ToUpper(tokens[0])
	if cmd, ok := r.commands[verb]; ok {
		return cmd, tokens[1:], true
	}
	if len(tokens) < 2 {
		return command{}, nil, false
	}
	cmd, ok := r.commands[verb+" "+strings.ToUpper(tokens[1])]
	return cmd, tokens[2:], ok
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func invalidID(kind, raw string) protocol.Response {
	return protocol.Fail(apperrors.StatusBadRequest, fmt.Sprintf("Invalid %s ID format: %s", kind, raw))
}
