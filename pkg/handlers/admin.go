package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zionren/corkboard/pkg/analytics"
	"github.com/zionren/corkboard/pkg/models"
	"github.com/zionren/corkboard/pkg/services"
)

type AdminHandler struct {
	service services.AdminService
}

func NewAdmin(service services.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// POST /api/admin/login
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username and password are required"})
	}

	if !h.service.Login(req.Username, req.Password) {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Invalid credentials"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Authentication successful"})
}

// GET /api/admin/pins?search=&main=&sort=
func (h *AdminHandler) ListPins(c *fiber.Ctx) error {
	spec := models.FilterSpec{
		Search: c.Query("search"),
		Sort:   models.ParseSortOrder(c.Query("sort")),
	}
	if main := models.Category(c.Query("main")); main.Valid() {
		spec.Category = main
	}

	pins, err := h.service.ListPins(spec)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load pins"})
	}
	return c.JSON(pins)
}

// DELETE /api/admin/pins/:id
func (h *AdminHandler) DeletePin(c *fiber.Ctx) error {
	pin, err := h.service.DeletePin(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"id": pin.ID, "status": "deleted"})
}

// DELETE /api/admin/pins  body: {"ids": [...]}
func (h *AdminHandler) DeletePins(c *fiber.Ctx) error {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	deleted, err := h.service.DeletePins(req.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": len(deleted), "status": "deleted"})
}

// GET /api/admin/analytics?preset=today&start=&end=&cumulative=false
func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	now := time.Now()
	cumulative := c.QueryBool("cumulative", false)

	var win analytics.Window
	startStr, endStr := c.Query("start"), c.Query("end")
	if startStr != "" || endStr != "" {
		start, err1 := time.ParseInLocation("2006-01-02", startStr, time.Local)
		end, err2 := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if err1 != nil || err2 != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Both start and end dates are required (YYYY-MM-DD)"})
		}
		if start.After(end) {
			return c.Status(400).JSON(fiber.Map{"error": "Start date must be before end date"})
		}
		win = analytics.Custom(start, end, cumulative)
	} else {
		win = analytics.Resolve(analytics.Preset(c.Query("preset", string(analytics.PresetToday))), now)
		win.Cumulative = cumulative
	}

	report, err := h.service.Analytics(win, now)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute analytics"})
	}
	return c.JSON(report)
}
