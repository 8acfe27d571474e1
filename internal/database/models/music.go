package models

import (
	"time"
)

type Music struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	FileName  string    `json:"fileName"`
	CreatedAt time.Time `json:"createdAt"`
}
