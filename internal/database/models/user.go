package models

import (
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the public view of a user.
type Profile struct {
	Username string  `json:"username"`
	Image    *string `json:"image"`
}
