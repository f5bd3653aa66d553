package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/zionren/corkboard/pkg/models"
	"github.com/zionren/corkboard/pkg/repository"
	"github.com/zionren/corkboard/pkg/services"
)

type PinsHandler struct {
	service services.PinService
}

func NewPins(service services.PinService) *PinsHandler {
	return &PinsHandler{service: service}
}

// GET /api/pins?search=&main=&sort=
func (h *PinsHandler) List(c *fiber.Ctx) error {
	f := repository.ListFilter{
		Search: c.Query("search"),
		Sort:   models.ParseSortOrder(c.Query("sort")),
	}
	// Malformed category values degrade to "no filter" on that axis.
	if main := models.Category(c.Query("main")); main.Valid() {
		f.Category = main
	}

	pins, err := h.service.List(f)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load pins"})
	}
	return c.JSON(pins)
}

// POST /api/pins
func (h *PinsHandler) Create(c *fiber.Ctx) error {
	var req models.PinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	pin, err := h.service.Create(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(pin)
}

// PUT /api/pins/:id
func (h *PinsHandler) Update(c *fiber.Ctx) error {
	var req models.PinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	pin, err := h.service.Update(c.Params("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(pin)
}

// DELETE /api/pins/:id?author_id=
func (h *PinsHandler) Delete(c *fiber.Ctx) error {
	authorID := c.Query("author_id")
	if authorID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "author_id is required"})
	}

	pin, err := h.service.Delete(c.Params("id"), authorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"id": pin.ID, "status": "deleted"})
}

func writeError(c *fiber.Ctx, err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(400).JSON(fiber.Map{"error": verr.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		return c.Status(403).JSON(fiber.Map{"error": "You can only modify your own pins"})
	case errors.Is(err, models.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Pin not found"})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Something went wrong. Please try again."})
	}
}
