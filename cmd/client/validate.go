package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hotelbook/pkg/model"
	"hotelbook/pkg/protocol"
)

var (
	ErrEmptyCommand   = errors.New("Empty command")
	ErrUnknownCommand = errors.New("Unknown command")
)

func syntaxError(usage string) error {
	return fmt.Errorf("Syntax Error: %s", usage)
}

// validateCommand checks a full request line, credentials included, before it
// is sent. now is the reference for the future check-in rule.
func validateCommand(tokens []string, now time.Time) error {
	if len(tokens) == 0 {
		return ErrEmptyCommand
	}

	verb := strings.ToUpper(tokens[0])
	switch verb {
	case "LOGIN":
		return validateArgs(tokens, 3, "LOGIN <USERNAME> <USERPASS>")
	case "CHECK":
		return validateCheck(tokens, now)
	case "BOOK":
		return validateBook(tokens, now)
	}

	if len(tokens) < 2 {
		return fmt.Errorf("Invalid %s command", verb)
	}
	noun := strings.ToUpper(tokens[1])

	switch verb + " " + noun {
	case "CREATE USER":
		return validateArgs(tokens, 4, "CREATE USER <USERNAME> <USERPASS>")
	case "CREATE HOTEL":
		if len(tokens) < 5 {
			return syntaxError("CREATE HOTEL <HOTELNAME>")
		}
		return nil
	case "CREATE ROOM":
		if len(tokens) != 8 {
			return syntaxError("CREATE ROOM <HOTELID> <ROOMNUMBER> <ROOMTYPE> <PRICE>")
		}
		return errors.Join(checkInt(tokens[2], "Hotel ID"), checkRoomType(tokens[4]), checkInt(tokens[5], "Price"))
	case "UPDATE HOTEL":
		if len(tokens) < 6 {
			return syntaxError("UPDATE HOTEL <HOTELID> <HOTELNAME>")
		}
		return checkInt(tokens[2], "Hotel ID")
	case "UPDATE ROOM":
		if len(tokens) != 9 {
			return syntaxError("UPDATE ROOM <ROOMID> <HOTELID> <ROOMNUMBER> <ROOMTYPE> <PRICE>")
		}
		return errors.Join(
			checkInt(tokens[2], "Room ID"),
			checkInt(tokens[3], "Hotel ID"),
			checkRoomType(tokens[5]),
			checkInt(tokens[6], "Price"),
		)
	case "REMOVE USER":
		return validateArgs(tokens, 5, "REMOVE USER <USERNAME>")
	case "REMOVE HOTEL", "REMOVE ROOM", "REMOVE BOOKING":
		label := strings.ToUpper(noun[:1]) + strings.ToLower(noun[1:])
		if len(tokens) != 5 {
			return syntaxError(fmt.Sprintf("REMOVE %s <%sID>", noun, noun))
		}
		return checkInt(tokens[2], label+" ID")
	case "LIST ROOMS", "LIST HOTELS", "LIST USERS", "LIST BOOKINGS":
		return validateArgs(tokens, 4, "LIST "+noun)
	}

	switch verb {
	case "CREATE", "REMOVE", "LIST", "UPDATE":
		return fmt.Errorf("Unknown %s type", verb)
	}
	return ErrUnknownCommand
}

func validateArgs(tokens []string, want int, usage string) error {
	if len(tokens) != want {
		return syntaxError(usage)
	}
	return nil
}

func validateCheck(tokens []string, now time.Time) error {
	if len(tokens) != 5 {
		return syntaxError("CHECK <CHECKINTIME> <CHECKOUTTIME> <USERNAME> <USERPASS>")
	}
	return checkInterval(tokens[1], tokens[2], now)
}

func validateBook(tokens []string, now time.Time) error {
	if len(tokens) < 6 {
		return syntaxError("BOOK <ROOMID1> [<ROOMID2> ...] <CHECKINTIME> <CHECKOUTTIME> <USERNAME> <USERPASS>")
	}
	last := len(tokens) - 1
	if err := checkInterval(tokens[last-3], tokens[last-2], now); err != nil {
		return err
	}
	for _, raw := range tokens[1 : last-3] {
		if err := checkInt(raw, "Room ID"); err != nil {
			return err
		}
	}
	return nil
}

func checkInterval(rawIn, rawOut string, now time.Time) error {
	checkIn, err := checkDate(rawIn, "Check-in time")
	if err != nil {
		return err
	}
	checkOut, err := checkDate(rawOut, "Check-out time")
	if err != nil {
		return err
	}
	if !checkOut.After(checkIn) {
		return errors.New("Error: Check-out time must be after check-in time")
	}
	if checkIn.Before(now) {
		return errors.New("Error: Check-in time must be in the future")
	}
	return nil
}

func checkDate(raw, field string) (time.Time, error) {
	t, err := protocol.ParseDateTime(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("Error: %s must be in the format yyyy-MM-ddTHH:mm (e.g., 2025-03-19T14:30)", field)
	}
	return t, nil
}

func checkInt(raw, field string) error {
	if _, err := strconv.Atoi(raw); err != nil {
		return fmt.Errorf("Error: %s must be a valid integer", field)
	}
	return nil
}

func checkRoomType(raw string) error {
	if _, ok := model.ParseRoomType(raw); !ok {
		names := make([]string, 0, len(model.RoomTypes()))
		for _, rt := range model.RoomTypes() {
			names = append(names, string(rt))
		}
		return fmt.Errorf("Error: Invalid room type. Valid types: %s", strings.Join(names, ", "))
	}
	return nil
}
