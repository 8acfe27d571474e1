package server

import (
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
)

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Post("/auth/register", s.registerUser)
	s.App.Post("/auth/login", s.login)
	s.App.Get("/user/:id", s.getProfile)
	s.App.Get("/health", s.healthHandler)
	// endpoint to monitor memory
	s.App.Get("/memory", s.memoryHandler)

	s.App.Use(s.tokens.Middleware())

	s.App.Get("/notes", s.getAllNotes)
	s.App.Post("/notes", s.createNote)
	s.App.Get("/notes/:id", s.getSingleNote)
	s.App.Put("/notes/:id", s.updateNote)
	s.App.Delete("/notes/:id", s.deleteNote)
	s.App.Get("/search", s.searchNotes)

	s.App.Get("/comments", s.getComments)
	s.App.Post("/comments", s.addComment)
	s.App.Delete("/comments", s.deleteComment)

	s.App.Get("/music", s.getMusic)
	s.App.Post("/music/upload", s.uploadMusic)
	s.App.Post("/upload", s.uploadFile)
	s.App.Put("/user/image", s.setProfileImage)
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	return c.JSON(s.db.Health())
}

func (s *FiberServer) memoryHandler(c *fiber.Ctx) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	memoryInfo := fmt.Sprintf("Alloc = %s, TotalAlloc = %s, Sys = %s, NumGC = %v",
		humanize.IBytes(m.Alloc), humanize.IBytes(m.TotalAlloc), humanize.IBytes(m.Sys), m.NumGC)
	return c.SendString(memoryInfo)
}
