package server

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"notely/internal/database/dto"
	"notely/internal/database/models"
	"notely/internal/database/repositories"
	"notely/internal/utils"
)

func (s *FiberServer) registerUser(c *fiber.Ctx) error {
	credentials := dto.LoginCredentials{}
	if err := bodyParser(c, &credentials); err != nil {
		return err
	}
	credentials.Username = strings.TrimSpace(credentials.Username)
	if credentials.Username == "" || credentials.Password == "" {
		return validationError("username and password are required")
	}
	if len(credentials.Password) > utils.MaxPasswordBytes {
		return validationError(fmt.Sprintf("password must be at most %d bytes", utils.MaxPasswordBytes))
	}

	repo := repositories.NewUserRepository(s.db)
	exists, err := repo.Exists(c.Context(), credentials.Username)
	if err != nil {
		return err
	}
	if exists {
		return conflictError("username already taken")
	}

	hash, err := utils.HashPassword(credentials.Password)
	if err != nil {
		return err
	}
	user := models.User{Username: credentials.Username, Password: hash}
	if err := repo.Create(c.Context(), &user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return conflictError("username already taken")
		}
		return err
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return err
	}
	s.logger.Info("user registered", slog.Int64("user_id", user.ID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
		"token":   token,
	})
}

func (s *FiberServer) login(c *fiber.Ctx) error {
	credentials := dto.LoginCredentials{}
	if err := bodyParser(c, &credentials); err != nil {
		return err
	}
	credentials.Username = strings.TrimSpace(credentials.Username)
	if credentials.Username == "" || credentials.Password == "" {
		return validationError("username and password are required")
	}

	// no stored hash can match a password bcrypt refuses to hash
	if len(credentials.Password) > utils.MaxPasswordBytes {
		utils.BurnPasswordCheck(credentials.Password[:utils.MaxPasswordBytes])
		return authError("invalid username or password")
	}

	repo := repositories.NewUserRepository(s.db)
	user, err := repo.GetByUsername(c.Context(), credentials.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.BurnPasswordCheck(credentials.Password)
		return authError("invalid username or password")
	}
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(credentials.Password, user.Password) {
		return authError("invalid username or password")
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func (s *FiberServer) getProfile(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "id")
	if err != nil {
		return err
	}
	if profile, ok := s.profiles.Get(id); ok {
		return c.JSON(profile)
	}

	profile, err := repositories.NewUserRepository(s.db).GetProfile(c.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return notFoundError("user not found")
	}
	if err != nil {
		return err
	}
	s.profiles.Add(id, *profile)
	return c.JSON(profile)
}

func (s *FiberServer) setProfileImage(c *fiber.Ctx) error {
	callerID, err := s.caller(c)
	if err != nil {
		return err
	}
	input := dto.ProfileImageInput{}
	if err := bodyParser(c, &input); err != nil {
		return err
	}
	if err := checkClaimedUser(input.UserID, callerID); err != nil {
		return err
	}
	input.ImageName = strings.TrimSpace(input.ImageName)
	if input.ImageName == "" {
		return validationError("imageName is required")
	}

	user, err := repositories.NewUserRepository(s.db).UpdateImage(c.Context(), callerID, input.ImageName)
	if errors.Is(err, repositories.ErrNotFound) {
		return notFoundError("user not found")
	}
	if err != nil {
		return err
	}
	s.profiles.Remove(callerID)
	return c.JSON(fiber.Map{
		"message": "Profile image updated",
		"image":   user.Image,
	})
}
