package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"notely/internal/database/dto"
	"notely/internal/database/models"
	"notely/internal/database/repositories"
)

func (s *FiberServer) getMusic(c *fiber.Ctx) error {
	callerID, err := s.caller(c)
	if err != nil {
		return err
	}
	if err := checkClaimedUser(dto.ID(c.Query("userId")), callerID); err != nil {
		return err
	}
	musics, err := repositories.NewMusicRepository(s.db).GetAll(c.Context(), callerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"musics": musics})
}

func (s *FiberServer) uploadMusic(c *fiber.Ctx) error {
	callerID, err := s.caller(c)
	if err != nil {
		return err
	}
	if err := checkClaimedUser(dto.ID(c.FormValue("userId")), callerID); err != nil {
		return err
	}
	header, err := c.FormFile("file")
	if err != nil {
		return validationError("file is required")
	}

	fileName, err := s.uploads.SaveMusic(header)
	if err != nil {
		return err
	}
	music := models.Music{UserID: callerID, FileName: fileName}
	if err := repositories.NewMusicRepository(s.db).Create(c.Context(), &music); err != nil {
		if rmErr := s.uploads.RemoveMusic(fileName); rmErr != nil {
			s.logger.Warn("orphaned music file", slog.String("file", fileName), slog.String("error", rmErr.Error()))
		}
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Music uploaded successfully",
		"music":   music,
	})
}

func (s *FiberServer) uploadFile(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return validationError("file is required")
	}
	fileName, err := s.uploads.SaveFile(header)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"fileName": fileName})
}
