package main

import (
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/zionren/corkboard/pkg/cache"
	"github.com/zionren/corkboard/pkg/database"
	"github.com/zionren/corkboard/pkg/handlers"
	"github.com/zionren/corkboard/pkg/hub"
	"github.com/zionren/corkboard/pkg/middleware"
	"github.com/zionren/corkboard/pkg/repository"
	"github.com/zionren/corkboard/pkg/server"
	"github.com/zionren/corkboard/pkg/services"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func main() {
	db := database.Connect()
	defer db.Close()

	// Serverless PG: keep pool small, connections short-lived
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetConnMaxIdleTime(30 * time.Second)

	setupDatabase(db)

	log.Println("[CORKBOARD] Connecting to Redis...")
	redis := cache.New()
	defer redis.Close()
	log.Println("[CORKBOARD] Redis connected")

	wsHub := hub.New()

	repo := repository.NewPinRepository(db)
	pinService := services.NewPinService(repo, redis, wsHub)
	adminService := services.NewAdminService(pinService, repo, redis, wsHub)

	pins := handlers.NewPins(pinService)
	admin := handlers.NewAdmin(adminService)

	app := server.NewApp("corkboard")

	api := app.Group("/api")
	api.Get("/pins", pins.List)
	api.Post("/pins", pins.Create)
	api.Put("/pins/:id", pins.Update)
	api.Delete("/pins/:id", pins.Delete)

	adminGroup := api.Group("/admin")
	adminGroup.Post("/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}), admin.Login)

	adminPriv := adminGroup.Group("", middleware.AdminMiddleware)
	adminPriv.Get("/pins", admin.ListPins)
	adminPriv.Delete("/pins/:id", admin.DeletePin)
	adminPriv.Delete("/pins", admin.DeletePins)
	adminPriv.Get("/analytics", admin.Analytics)

	app.Get("/hub/status", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"clients": wsHub.ClientCount()})
	})

	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		c.Locals("viewer_id", c.Query("viewer_id"))
		return c.Next()
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		viewerID, _ := c.Locals("viewer_id").(string)
		wsHub.HandleClientConn(c, viewerID)
	}))

	// Board and dashboard pages plus their assets
	app.Static("/", "./public")
	app.Get("/admin", func(c *fiber.Ctx) error {
		return c.SendFile("./public/admin.html")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	addr := "0.0.0.0:" + port
	log.Printf("[CORKBOARD] WebSocket: ws://<domain>/ws")
	log.Printf("[CORKBOARD] Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("[CORKBOARD] Failed to start: %v", err)
	}
}

func setupDatabase(db *sql.DB) {
	db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`)

	schemas := []string{
		`CREATE TABLE IF NOT EXISTS pins (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			rp_name VARCHAR(30),
			nickname VARCHAR(30) NOT NULL,
			main VARCHAR(10) NOT NULL CHECK (main IN ('1', '2', '3', '4', 'council')),
			message TEXT NOT NULL,
			author_id UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, s := range schemas {
		db.Exec(s)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_pins_created_at ON pins (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_pins_author_id ON pins (author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pins_main ON pins (main)`,
	}

	for _, idx := range indexes {
		db.Exec(idx)
	}

	log.Println("[DB] Schema initialized")
}
