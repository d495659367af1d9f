package model

import "time"

type Hotel struct {
	ID        int64     `json:"id" validate:"omitempty,min=1"`
	Name      string    `json:"name" validate:"required,min=1,max=100"`
	CreatedAt time.Time `json:"created_at"`
}

type HotelUpdate struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
