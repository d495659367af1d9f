package store

import "hotelbook/pkg/model"

type seedRoom struct {
	number string
	kind   model.RoomType
	price  int
}

var seedHotels = []struct {
	name  string
	rooms []seedRoom
}{
	{
		name: "Taj Hotel - Mumbai",
		rooms: []seedRoom{
			{"A101", model.RoomSingle, 100},
			{"A102", model.RoomSingle, 100},
			{"B101", model.RoomDouble, 150},
			{"B102", model.RoomDouble, 150},
			{"C101", model.RoomDeluxe, 250},
			{"D101", model.RoomSuite, 350},
		},
	},
	{
		name: "Taj Hotel - Udaipur",
		rooms: []seedRoom{
			{"A201", model.RoomSingle, 120},
			{"A202", model.RoomSingle, 120},
			{"A202", model.RoomSingle, 120},
			{"B201", model.RoomDouble, 170},
			{"B202", model.RoomDouble, 170},
			{"C201", model.RoomDeluxe, 270},
			{"C202", model.RoomDeluxe, 270},
			{"D201", model.RoomSuite, 370},
		},
	},
	{
		name: "Taj Hotel - Ahmedabad",
		rooms: []seedRoom{
			{"A301", model.RoomSingle, 90},
			{"A302", model.RoomSingle, 90},
			{"B301", model.RoomDouble, 140},
			{"B302", model.RoomDouble, 140},
			{"C301", model.RoomDeluxe, 240},
			{"D301", model.RoomSuite, 340},
		},
	},
}

// Seed loads the default accounts and the demo catalog: an admin/admin
// administrator, a user/user customer, and three hotels with twenty rooms.
func (s *Store) Seed() error {
	for _, u := range []model.User{
		{Username: "admin", Password: "admin", IsAdmin: true},
		{Username: "user", Password: "user"},
	} {
		if _, err := s.CreateUser(&u); err != nil {
			return err
		}
	}

	for _, sh := range seedHotels {
		h := s.CreateHotel(&model.Hotel{Name: sh.name})
		for _, sr := range sh.rooms {
			_, err := s.CreateRoom(&model.Room{
				Number:  sr.number,
				Type:    sr.kind,
				Price:   sr.price,
				HotelID: h.ID,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
