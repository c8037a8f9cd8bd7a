// Package saveserver is the HTTP endpoint that receives exported scenes
package saveserver

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"

	"github.com/philipparndt/protedit/internal/export"
)

// Options configure the fiber app
type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
	Quiet        bool // disables request logging
}

// Handler serves the save endpoint
type Handler struct {
	store *Store
}

// NewHandler creates a handler backed by store
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// NewApp builds the fiber app with all routes
func NewApp(store *Store, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		BodyLimit:    opts.BodyLimit,
		AppName:      "protedit save server",
	})

	app.Use(recover.New())
	if !opts.Quiet {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}

	h := NewHandler(store)

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Post("/save", h.Save)
	app.Get("/scenes/:id", h.Get)

	return app
}

// Save validates the posted export document and stores it verbatim
func (h *Handler) Save(c fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(http.StatusBadRequest).SendString("empty body")
	}

	records, err := export.Parse(body)
	if err != nil {
		return c.Status(http.StatusBadRequest).SendString(err.Error())
	}

	id, err := h.store.Save(c.Context(), body, len(records))
	if err != nil {
		log.Printf("[SAVE] store failed: %v", err)
		return c.Status(http.StatusInternalServerError).SendString("failed to store scene")
	}

	log.Printf("[SAVE] stored scene %s with %d elements", id, len(records))
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(fmt.Sprintf("Scene saved (%d elements) as %s", len(records), id))
}

// Get returns a stored document
func (h *Handler) Get(c fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	scene, err := h.store.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "scene not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load scene"})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(scene.Body)
}
