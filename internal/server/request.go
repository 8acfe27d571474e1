package server

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"notely/internal/auth"
	"notely/internal/database/dto"
	"notely/internal/database/models"
	"notely/internal/database/repositories"
)

// parseID reads a positive integer id, reporting name in the error.
func parseID(raw, name string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, validationError(name + " is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validationError(name + " must be a positive integer")
	}
	return id, nil
}

// checkClaimedUser accepts an optional userId from the request and rejects
// it when it names someone other than the caller.
func checkClaimedUser(claimed dto.ID, callerID int64) error {
	if claimed.Empty() {
		return nil
	}
	id, ok := claimed.Int64()
	if !ok || id <= 0 {
		return validationError("userId must be a positive integer")
	}
	if id != callerID {
		return forbiddenError("userId does not match the authenticated user")
	}
	return nil
}

// bodyParser parses the request body, leaving out unchanged when it is empty.
func bodyParser(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return validationError("invalid request body")
	}
	return nil
}

func (s *FiberServer) caller(c *fiber.Ctx) (int64, error) {
	return auth.UserID(c)
}

// ownedNote loads a note and checks that callerID owns it.
func (s *FiberServer) ownedNote(ctx context.Context, noteID, callerID int64) (*models.Note, error) {
	note, err := repositories.NewNoteRepository(s.db).GetByID(ctx, noteID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, notFoundError("note not found")
	}
	if err != nil {
		return nil, err
	}
	if note.UserID != callerID {
		return nil, forbiddenError("note belongs to another user")
	}
	return note, nil
}
