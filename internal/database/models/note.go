package models

import (
	"time"
)

const (
	DefaultNoteTitle   = "Untitled Note"
	DefaultContentType = "text"
)

type Note struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	IsFavorite bool      `json:"isFavorite"`
	UserID     int64     `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Content    Content   `json:"content"`
}

// Content is the body of a Note. Each note owns exactly one.
type Content struct {
	ID     int64  `json:"id"`
	NoteID int64  `json:"noteId"`
	Type   string `json:"type"`
	Value  string `json:"value"`
}
