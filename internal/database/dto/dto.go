package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ID accepts either a JSON number or a numeric string, so both
// {"userId": 2} and {"userId": "2"} decode.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or numeric string: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Empty reports whether no id was supplied.
func (id ID) Empty() bool {
	return strings.TrimSpace(string(id)) == ""
}

// Int64 parses the id. ok is false for empty or non-integer values.
func (id ID) Int64() (int64, bool) {
	if id.Empty() {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(id)), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

type ContentInput struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type NoteInput struct {
	Title   string        `json:"title"`
	Content *ContentInput `json:"content"`
	UserID  ID            `json:"userId"`
}

// NoteUpdate is a partial update. IsFavorite stays raw so a non-boolean
// value can be rejected instead of silently coerced.
type NoteUpdate struct {
	Title      *string         `json:"title"`
	Content    *ContentInput   `json:"content"`
	IsFavorite json.RawMessage `json:"isFavorite"`
}

// Favorite decodes IsFavorite. present is false when the field was
// omitted; err is set when it was supplied but is not a boolean.
func (u NoteUpdate) Favorite() (value bool, present bool, err error) {
	if len(u.IsFavorite) == 0 {
		return false, false, nil
	}
	switch string(bytes.TrimSpace(u.IsFavorite)) {
	case "true":
		return true, true, nil
	case "false":
		return false, true, nil
	}
	return false, true, fmt.Errorf("isFavorite must be a boolean")
}

type OwnerInput struct {
	UserID ID `json:"userId"`
}

type CommentInput struct {
	Content string `json:"content"`
	NoteID  ID     `json:"noteId"`
}

type ProfileImageInput struct {
	UserID    ID     `json:"userId"`
	ImageName string `json:"imageName"`
}
