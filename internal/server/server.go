package server

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"notely/internal/auth"
	"notely/internal/config"
	"notely/internal/database"
	"notely/internal/database/models"
	"notely/internal/storage"
)

type FiberServer struct {
	*fiber.App

	db       database.Service
	cfg      *config.Config
	logger   *slog.Logger
	tokens   *auth.TokenIssuer
	uploads  *storage.Uploads
	profiles *lru.Cache[int64, models.Profile]
}

func New(cfg *config.Config, db database.Service, log *slog.Logger) (*FiberServer, error) {
	uploads, err := storage.New(cfg.FilesDir(), cfg.MusicDir(), cfg.MaxMusicBytes())
	if err != nil {
		return nil, err
	}
	profiles, err := lru.New[int64, models.Profile](cfg.Cache.ProfileSize)
	if err != nil {
		return nil, fmt.Errorf("create profile cache: %w", err)
	}

	server := &FiberServer{
		db:       db,
		cfg:      cfg,
		logger:   log,
		tokens:   auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.TokenTTL()),
		uploads:  uploads,
		profiles: profiles,
	}
	server.App = fiber.New(fiber.Config{
		ServerHeader: cfg.Server.AppName,
		AppName:      cfg.Server.AppName,
		BodyLimit:    cfg.BodyLimitBytes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: server.errorHandler,
	})

	server.App.Use(recover.New())
	server.App.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	server.App.Use(favicon.New())
	server.App.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization,X-Requested-With",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       3600,
	}))
	if cfg.Env != "test" {
		server.App.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
			Output: os.Stdout,
		}))
	}
	if cfg.Server.EnablePprof {
		server.App.Use(pprof.New())
	}
	server.App.Static("/public", cfg.Storage.PublicDir)

	return server, nil
}
