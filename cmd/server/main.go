// Command server runs the match-play scoring API.
//
// Startup order matters: config first (everything needs it), then the
// database (migrations must finish before a request can arrive), then
// the websocket hub goroutine, then routes, then listen.
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/trentd187/match-play-scoring/internal/config"
	"github.com/trentd187/match-play-scoring/internal/database"
	"github.com/trentd187/match-play-scoring/internal/handlers"
	"github.com/trentd187/match-play-scoring/internal/middleware"
	"github.com/trentd187/match-play-scoring/internal/websocket"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName: "match-play-scoring",
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", handlers.HealthCheck)

	// Live scorecard feed. No auth — the leaderboard TV watches this.
	app.Use("/ws", handlers.WebSocketUpgrade)
	app.Get("/ws/matches/:key", handlers.MatchSocket(hub))

	api := app.Group("/api/v1")

	// Reads are open: kiosks and the public leaderboard have no accounts.
	api.Get("/matches", handlers.GetMatches(db))
	api.Get("/matches/:key", handlers.GetMatchSummary(db))
	api.Get("/standings", handlers.GetStandings(db))
	api.Get("/players", handlers.GetPlayers(db))
	api.Get("/courses", handlers.GetCourses(db))

	// Score entry: an authenticated user or the kiosk PIN, checked in
	// the handler so the route stays reachable without a JWT.
	api.Post("/matches/:key/holes", handlers.SubmitHoleScores(db, hub, cfg))

	// Everything that rewrites history requires a real account.
	auth := middleware.Auth(cfg, db)
	adminOnly := middleware.RequireRole("admin", "manager")
	api.Post("/matches/:key/finalize", auth, adminOnly, handlers.FinalizeMatch(db, hub))
	api.Post("/matches/:key/reset", auth, adminOnly, handlers.ResetMatch(db, hub))
	api.Put("/players", auth, adminOnly, handlers.ReplacePlayers(db))
	api.Post("/pairings", auth, adminOnly, handlers.GeneratePairings(db))
	api.Put("/courses/tees/:id/holes", auth, adminOnly, handlers.ReplaceTeeHoles(db))

	log.Printf("listening on :%s (env=%s)", cfg.Port, cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
