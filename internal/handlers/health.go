// Package handlers contains the HTTP route handler functions for the
// match-play scoring API. Each handler corresponds to one endpoint and
// is responsible for reading the request, calling into the scoring
// engine and the database, and writing a response.
//
// Exported handlers follow the "handler factory" pattern: they take
// their dependencies (*gorm.DB, the websocket hub, config) and return a
// fiber.Handler, so nothing is reached through globals.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health — a lightweight liveness probe for
// load balancers and container orchestrators. No database, no auth.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
