package models

import (
	"time"
)

type Comment struct {
	ID        int64     `json:"id"`
	NoteID    int64     `json:"noteId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
