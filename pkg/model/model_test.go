package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name       string
		inA, outA  string
		inB, outB  string
		wantResult bool
	}{
		{"disjoint before", "2025-06-01T10:00", "2025-06-01T11:00", "2025-06-01T12:00", "2025-06-01T14:00", false},
		{"disjoint after", "2025-06-01T15:00", "2025-06-01T16:00", "2025-06-01T12:00", "2025-06-01T14:00", false},
		{"touching end to start", "2025-06-01T10:00", "2025-06-01T12:00", "2025-06-01T12:00", "2025-06-01T14:00", true},
		{"touching start to end", "2025-06-01T14:00", "2025-06-01T16:00", "2025-06-01T12:00", "2025-06-01T14:00", true},
		{"contained", "2025-06-01T12:30", "2025-06-01T13:00", "2025-06-01T12:00", "2025-06-01T14:00", true},
		{"containing", "2025-06-01T08:00", "2025-06-01T20:00", "2025-06-01T12:00", "2025-06-01T14:00", true},
		{"partial", "2025-06-02T10:00", "2025-06-04T10:00", "2025-06-01T10:00", "2025-06-03T10:00", true},
		{"identical", "2025-06-01T10:00", "2025-06-03T10:00", "2025-06-01T10:00", "2025-06-03T10:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(tt.inA), at(tt.outA), at(tt.inB), at(tt.outB))
			assert.Equal(t, tt.wantResult, got)
			// the rule is symmetric
			assert.Equal(t, tt.wantResult, Overlaps(at(tt.inB), at(tt.outB), at(tt.inA), at(tt.outA)))
		})
	}
}

func TestBooking_Overlaps(t *testing.T) {
	b := &Booking{CheckIn: at("2025-06-01T10:00"), CheckOut: at("2025-06-01T12:00")}

	assert.True(t, b.Overlaps(at("2025-06-01T12:00"), at("2025-06-01T14:00")))
	assert.False(t, b.Overlaps(at("2025-06-01T12:01"), at("2025-06-01T14:00")))
}

func TestParseRoomType(t *testing.T) {
	tests := []struct {
		input string
		want  RoomType
		ok    bool
	}{
		{"SINGLE", RoomSingle, true},
		{"single_room", RoomSingle, true},
		{"DOUBLE_ROOM", RoomDouble, true},
		{"DELUX_ROOM", RoomDeluxe, true},
		{"deluxe", RoomDeluxe, true},
		{" Suite ", RoomSuite, true},
		{"PENTHOUSE", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseRoomType(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUser_CheckPassword(t *testing.T) {
	u := &User{Username: "user", Password: "secret"}

	assert.True(t, u.CheckPassword("secret"))
	assert.False(t, u.CheckPassword("Secret"))
	assert.False(t, u.CheckPassword(""))
}

func TestRoomOutcome_Booked(t *testing.T) {
	assert.True(t, RoomOutcome{RoomID: 1, BookingID: 3}.Booked())
	assert.False(t, RoomOutcome{RoomID: 1, Reason: "Room not found"}.Booked())
}
