package model

import (
	"strings"
	"time"
)

type RoomType string

const (
	RoomSingle RoomType = "SINGLE"
	RoomDouble RoomType = "DOUBLE"
	RoomDeluxe RoomType = "DELUXE"
	RoomSuite  RoomType = "SUITE"
)

var roomTypeAliases = map[string]RoomType{
	"SINGLE":      RoomSingle,
	"SINGLE_ROOM": RoomSingle,
	"DOUBLE":      RoomDouble,
	"DOUBLE_ROOM": RoomDouble,
	"DELUXE":      RoomDeluxe,
	"DELUX":       RoomDeluxe,
	"DELUX_ROOM":  RoomDeluxe,
	"DELUXE_ROOM": RoomDeluxe,
	"SUITE":       RoomSuite,
}

// ParseRoomType accepts the canonical names and the legacy *_ROOM spellings,
// case-insensitively.
func ParseRoomType(s string) (RoomType, bool) {
	t, ok := roomTypeAliases[strings.ToUpper(strings.TrimSpace(s))]
	return t, ok
}

func RoomTypes() []RoomType {
	return []RoomType{RoomSingle, RoomDouble, RoomDeluxe, RoomSuite}
}

type Room struct {
	ID        int64     `json:"id" validate:"omitempty,min=1"`
	Number    string    `json:"number" validate:"required,min=1,max=20"`
	Type      RoomType  `json:"type" validate:"required,oneof=SINGLE DOUBLE DELUXE SUITE"`
	Price     int       `json:"price" validate:"min=0"`
	HotelID   int64     `json:"hotel_id" validate:"required,min=1"`
	CreatedAt time.Time `json:"created_at"`
}

type RoomUpdate struct {
	HotelID int64    `json:"hotel_id" validate:"required,min=1"`
	Number  string   `json:"number" validate:"required,min=1,max=20"`
	Type    RoomType `json:"type" validate:"required,oneof=SINGLE DOUBLE DELUXE SUITE"`
	Price   int      `json:"price" validate:"min=0"`
}
