package server

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"notely/internal/database/dto"
	"notely/internal/database/models"
	"notely/internal/database/repositories"
)

func (s *FiberServer) createNote(c *fiber.Ctx) error {
	callerID, err := s.caller(c)
	if err != nil {
		return err
	}
	input := dto.NoteInput{}
	if err := bodyParser(c, &input); err != nil {
		return err
	}
	if err := checkClaimedUser(input.UserID, callerID); err != nil {
		return err
	}

	note := models.Note{Title: strings.TrimSpace(input.Title), UserID: callerID}
	if input.Content != nil {
		note.Content.Type = input.Content.Type
		note.Content.Value = input.Content.Value
	}
	if err := repositories.NewNoteRepository(s.db).Create(c.Context(), &note); err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *FiberServer) getAllNotes(c *fiber.Ctx) error {
	callerID, err := s.caller(c)
	if err != nil {
		return err
	}
	if err := checkClaimedUser(dto.ID(c.Query("userId")), callerID); err != nil {
		return err
	}

	var notes []models.Note
	if query := strings.TrimSpace(c.Query("query")); query != "" {
		notes, err = repositories.NewSearchRepository(s.db).SearchNotes(c.Context(), callerID, query)
	} else {
		notes, err = repositories.NewNoteRepository(s.db).GetAll(c.Context(), callerID)
	}
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

func (s *FiberServer) searchNotes(c *fiber.Ctx) error {
	callerID, err := s.caller(c)
	if err != nil {
		return err
	}
	keyword := strings.TrimSpace(c.Query("keyword"))
	if keyword == "" {
		return validationError("keyword is required")
	}
	notes, err := repositories.NewSearchRepository(s.db).SearchNotes(c.Context(), callerID, keyword)
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

func (s *FiberServer) getSingleNote(c *fiber.Ctx) error {
	callerID, err := s.caller(c)
	if err != nil {
		return err
	}
	id, err := parseID(c.Params("id"), "id")
	if err != nil {
		return err
	}
	note, err := s.ownedNote(c.Context(), id, callerID)
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *FiberServer) updateNote(c *fiber.Ctx) error {
	callerID, err := s.caller(c)
	if err != nil {
		return err
	}
	id, err := parseID(c.Params("id"), "id")
	if err != nil {
		return err
	}
	update := dto.NoteUpdate{}
	if err := bodyParser(c, &update); err != nil {
		return err
	}

	// empty strings mean "leave as is"
	patch := repositories.NotePatch{}
	if update.Title != nil && *update.Title != "" {
		patch.Title = update.Title
	}
	if update.Content != nil && update.Content.Value != "" {
		patch.ContentValue = &update.Content.Value
	}
	favorite, present, err := update.Favorite()
	if err != nil {
		return validationError(err.Error())
	}
	if present {
		patch.IsFavorite = &favorite
	}

	if _, err := s.ownedNote(c.Context(), id, callerID); err != nil {
		return err
	}
	note, err := repositories.NewNoteRepository(s.db).Update(c.Context(), id, patch)
	if errors.Is(err, repositories.ErrNotFound) {
		return notFoundError("note not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *FiberServer) deleteNote(c *fiber.Ctx) error {
	callerID, err := s.caller(c)
	if err != nil {
		return err
	}
	id, err := parseID(c.Params("id"), "id")
	if err != nil {
		return err
	}
	owner := dto.OwnerInput{}
	if err := bodyParser(c, &owner); err != nil {
		return err
	}
	if err := checkClaimedUser(owner.UserID, callerID); err != nil {
		return err
	}

	if _, err := s.ownedNote(c.Context(), id, callerID); err != nil {
		return err
	}
	err = repositories.NewNoteRepository(s.db).Delete(c.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return notFoundError("note not found")
	}
	if err != nil {
		return err
	}
	s.logger.Info("note deleted", slog.Int64("note_id", id), slog.Int64("user_id", callerID))
	return c.JSON(fiber.Map{"message": "Note deleted successfully"})
}
