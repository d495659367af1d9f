package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

const banner = "==============================================="

var userMenu = []string{
	"- CHECK <CHECKINTIME> <CHECKOUTTIME>",
	"- BOOK <ROOMID1> [<ROOMID2> ...] <CHECKINTIME> <CHECKOUTTIME>",
	"- LIST BOOKINGS",
	"- HELP",
	"- EXIT",
}

var adminMenu = []string{
	"--- User Management ---",
	"- CREATE USER <USERNAME> <USERPASS>",
	"- REMOVE USER <USERNAME>",
	"- LIST USERS",
	"--- Hotel Management ---",
	"- CREATE HOTEL <HOTELNAME>",
	"- UPDATE HOTEL <HOTELID> <HOTELNAME>",
	"- REMOVE HOTEL <HOTELID>",
	"- LIST HOTELS",
	"--- Room Management ---",
	"- CREATE ROOM <HOTELID> <ROOMNUMBER> <ROOMTYPE> <PRICE>",
	"- UPDATE ROOM <ROOMID> <HOTELID> <ROOMNUMBER> <ROOMTYPE> <PRICE>",
	"- REMOVE ROOM <ROOMID>",
	"- LIST ROOMS",
	"--- Booking Management ---",
	"- LIST BOOKINGS",
	"- REMOVE BOOKING <BOOKINGID>",
	"--- Other ---",
	"- HELP",
	"- EXIT",
}

var userHelp = []string{
	"--- User Commands ---",
	"CHECK <CHECKINTIME> <CHECKOUTTIME>",
	"  - Checks availability for rooms in the specified time period",
	"  - Date format: yyyy-MM-ddTHH:mm (e.g., 2025-03-19T14:30)",
	"BOOK <ROOMID1> [<ROOMID2> ...] <CHECKINTIME> <CHECKOUTTIME>",
	"  - Books one or more rooms; either all of them are booked or none",
	"  - Date format: yyyy-MM-ddTHH:mm (e.g., 2025-03-19T14:30)",
	"LIST BOOKINGS",
	"  - Lists all your bookings",
}

var adminHelp = []string{
	"--- User Management ---",
	"CREATE USER <USERNAME> <USERPASS>",
	"  - Creates a new user account",
	"REMOVE USER <USERNAME>",
	"  - Removes an existing user account",
	"LIST USERS",
	"  - Lists all user accounts",
	"",
	"--- Hotel Management ---",
	"CREATE HOTEL <HOTELNAME>",
	"  - Creates a new hotel",
	"UPDATE HOTEL <HOTELID> <HOTELNAME>",
	"  - Updates an existing hotel",
	"REMOVE HOTEL <HOTELID>",
	"  - Removes a hotel without rooms",
	"LIST HOTELS",
	"  - Lists all hotels with their rooms",
	"",
	"--- Room Management ---",
	"CREATE ROOM <HOTELID> <ROOMNUMBER> <ROOMTYPE> <PRICE>",
	"  - Creates a new room in a hotel",
	"  - Valid room types: SINGLE, DOUBLE, DELUXE, SUITE",
	"UPDATE ROOM <ROOMID> <HOTELID> <ROOMNUMBER> <ROOMTYPE> <PRICE>",
	"  - Updates an existing room",
	"REMOVE ROOM <ROOMID>",
	"  - Removes a room without future bookings",
	"LIST ROOMS",
	"  - Lists all rooms",
	"",
	"--- Booking Management ---",
	"LIST BOOKINGS",
	"  - Lists all bookings",
	"REMOVE BOOKING <BOOKINGID>",
	"  - Removes an existing booking",
}

type session struct {
	transport Transport
	in        *bufio.Scanner
	out       io.Writer
	now       func() time.Time

	username string
	password string
	admin    bool
}

func newSession(t Transport, in io.Reader, out io.Writer) *session {
	return &session{
		transport: t,
		in:        bufio.NewScanner(in),
		out:       out,
		now:       time.Now,
	}
}

// Run drives the login menu and then the user or admin menu until EXIT or
// end of input.
func (s *session) Run(ctx context.Context) error {
	s.println(banner)
	s.println("         WELCOME TO HOTEL BOOKING SYSTEM       ")
	s.println(banner)

	if !s.login(ctx) {
		return nil
	}

	title, menu := "          HOTEL BOOKING SYSTEM - USER          ", userMenu
	if s.admin {
		title, menu = "          HOTEL BOOKING SYSTEM - ADMIN         ", adminMenu
	}
	s.println("\n" + banner)
	s.println(title)
	s.println(banner)

	for {
		s.println("\nAvailable Commands:")
		for _, line := range menu {
			s.println(line)
		}

		input, ok := s.prompt()
		if !ok {
			return s.in.Err()
		}

		switch strings.ToUpper(input) {
		case "":
			continue
		case "EXIT":
			s.println("Thank you for using the Hotel Booking System. Goodbye!")
			return nil
		case "HELP":
			s.help()
			continue
		}

		s.execute(ctx, s.withCredentials(input))
	}
}

func (s *session) login(ctx context.Context) bool {
	for {
		s.println("\nPlease login or create a new account:")
		s.println("1. Login (LOGIN <username> <password>)")
		s.println("2. Create Account (CREATE USER <username> <password>)")
		s.println("3. Exit")

		input, ok := s.prompt()
		if !ok || input == "3" || strings.EqualFold(input, "EXIT") {
			s.println("Exiting application. Goodbye!")
			return false
		}

		tokens := strings.Fields(input)
		upper := strings.ToUpper(input)
		switch {
		case strings.HasPrefix(upper, "LOGIN "):
			if err := validateCommand(tokens, s.now()); err != nil {
				s.println(err.Error())
				continue
			}
			resp, err := s.transport.Send(ctx, strings.Join(tokens, " "))
			if err != nil {
				s.println("Error connecting to server: " + err.Error())
				continue
			}
			s.print(resp.String())
			if resp.OK() {
				s.username, s.password = tokens[1], tokens[2]
				s.admin = strings.HasSuffix(resp.Message, "Admin: Yes")
				return true
			}
		case strings.HasPrefix(upper, "CREATE USER "):
			s.execute(ctx, input)
		default:
			s.println("Invalid command. Please try again.")
		}
	}
}

// withCredentials appends the stored login to every command that needs it.
// CREATE USER is public, so it goes out as typed.
func (s *session) withCredentials(input string) string {
	if strings.HasPrefix(strings.ToUpper(input), "CREATE USER ") {
		return input
	}
	return input + " " + s.username + " " + s.password
}

func (s *session) execute(ctx context.Context, line string) {
	tokens := strings.Fields(line)
	if err := validateCommand(tokens, s.now()); err != nil {
		s.println(err.Error())
		return
	}

	resp, err := s.transport.Send(ctx, strings.Join(tokens, " "))
	if err != nil {
		s.println("Error communicating with server: " + err.Error())
		return
	}
	s.print(resp.String())
}

func (s *session) help() {
	s.println("\n" + banner)
	s.println("                 COMMAND HELP                  ")
	s.println(banner)

	lines := userHelp
	if s.admin {
		lines = adminHelp
	}
	s.println("")
	for _, line := range lines {
		s.println(line)
	}

	s.println("\n--- Other Commands ---")
	s.println("HELP - Displays this help information")
	s.println("EXIT - Exits the application")
}

func (s *session) prompt() (string, bool) {
	s.print(">")
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *session) print(text string) {
	fmt.Fprint(s.out, text)
}

func (s *session) println(text string) {
	fmt.Fprintln(s.out, text)
}
