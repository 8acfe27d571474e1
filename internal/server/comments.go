package server

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"notely/internal/database/dto"
	"notely/internal/database/models"
	"notely/internal/database/repositories"
)

func (s *FiberServer) getComments(c *fiber.Ctx) error {
	callerID, err := s.caller(c)
	if err != nil {
		return err
	}
	noteID, err := parseID(c.Query("noteId"), "noteId")
	if err != nil {
		return err
	}
	if _, err := s.ownedNote(c.Context(), noteID, callerID); err != nil {
		return err
	}
	comments, err := repositories.NewCommentRepository(s.db).GetByNote(c.Context(), noteID)
	if err != nil {
		return err
	}
	return c.JSON(comments)
}

func (s *FiberServer) addComment(c *fiber.Ctx) error {
	callerID, err := s.caller(c)
	if err != nil {
		return err
	}
	input := dto.CommentInput{}
	if err := bodyParser(c, &input); err != nil {
		return err
	}
	if strings.TrimSpace(input.Content) == "" {
		return validationError("content is required")
	}
	noteID, err := parseID(string(input.NoteID), "noteId")
	if err != nil {
		return err
	}
	if _, err := s.ownedNote(c.Context(), noteID, callerID); err != nil {
		return err
	}

	comment := models.Comment{NoteID: noteID, Content: input.Content}
	if err := repositories.NewCommentRepository(s.db).Create(c.Context(), &comment); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (s *FiberServer) deleteComment(c *fiber.Ctx) error {
	callerID, err := s.caller(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c.Query("commentId"), "commentId")
	if err != nil {
		return err
	}

	repo := repositories.NewCommentRepository(s.db)
	comment, err := repo.GetByID(c.Context(), commentID)
	if errors.Is(err, repositories.ErrNotFound) {
		return notFoundError("comment not found")
	}
	if err != nil {
		return err
	}
	if _, err := s.ownedNote(c.Context(), comment.NoteID, callerID); err != nil {
		return err
	}
	if err := repo.Delete(c.Context(), commentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFoundError("comment not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}
