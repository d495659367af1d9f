package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCommand(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		line    string
		wantErr string
	}{
		{name: "login", line: "LOGIN admin admin"},
		{name: "login missing password", line: "LOGIN admin", wantErr: "Syntax Error: LOGIN"},
		{name: "create user", line: "CREATE USER bob pw"},
		{name: "create hotel with spaces", line: "CREATE HOTEL Grand Plaza admin admin"},
		{name: "create room", line: "CREATE ROOM 1 101 DOUBLE_ROOM 200 admin admin"},
		{name: "create room bad type", line: "CREATE ROOM 1 101 PENTHOUSE 200 admin admin", wantErr: "Invalid room type"},
		{name: "create room bad price", line: "CREATE ROOM 1 101 SUITE lots admin admin", wantErr: "Price must be a valid integer"},
		{name: "update room", line: "UPDATE ROOM 3 1 101 SUITE 300 admin admin"},
		{name: "update hotel bad id", line: "UPDATE HOTEL x Name admin admin", wantErr: "Hotel ID must be a valid integer"},
		{name: "remove booking", line: "REMOVE BOOKING 4 admin admin"},
		{name: "remove room bad id", line: "REMOVE ROOM abc admin admin", wantErr: "Room ID must be a valid integer"},
		{name: "remove user", line: "REMOVE USER bob admin admin"},
		{name: "list bookings", line: "LIST BOOKINGS user user"},
		{name: "list unknown", line: "LIST PETS user user", wantErr: "Unknown LIST type"},
		{name: "check", line: "CHECK 2025-04-01T14:00 2025-04-03T11:00 user user"},
		{name: "check bad date", line: "CHECK 2025-04-01 2025-04-03T11:00 user user", wantErr: "Check-in time must be in the format"},
		{name: "check reversed", line: "CHECK 2025-04-03T11:00 2025-04-01T14:00 user user", wantErr: "Check-out time must be after check-in time"},
		{name: "check in past", line: "CHECK 2025-02-01T14:00 2025-02-03T11:00 user user", wantErr: "Check-in time must be in the future"},
		{name: "book several rooms", line: "BOOK 1 2 3 2025-04-01T14:00 2025-04-03T11:00 user user"},
		{name: "book bad room", line: "BOOK 1 x 2025-04-01T14:00 2025-04-03T11:00 user user", wantErr: "Room ID must be a valid integer"},
		{name: "book no rooms", line: "BOOK 2025-04-01T14:00 2025-04-03T11:00 user user", wantErr: "Syntax Error: BOOK"},
		{name: "unknown", line: "DANCE now", wantErr: "Unknown command"},
		{name: "empty", line: "", wantErr: "Empty command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCommand(strings.Fields(tt.line), now)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
