package model

import "time"

type User struct {
	ID        int64     `json:"id" validate:"omitempty,min=1"`
	Username  string    `json:"username" validate:"required,min=1,max=64,single_token"`
	Password  string    `json:"-" validate:"required,min=1,max=128,single_token"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckPassword compares in plain text.
func (u *User) CheckPassword(password string) bool {
	return u.Password == password
}
