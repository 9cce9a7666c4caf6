// Package middleware contains HTTP middleware for the scoring API.
// This file handles role-based access control: checking that the
// authenticated user is allowed to perform the requested action.
package middleware

import "github.com/gofiber/fiber/v2"

// RequireRole returns a middleware handler that allows only users whose
// role matches one of the provided roles, responding 403 otherwise.
//
//	api.Put("/players", middleware.RequireRole("admin", "manager"), handlers.ReplacePlayers(db))
//
// It must run AFTER Auth, which is what populates "userRole" in the
// request context.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals("userRole").(string)
		if !ok || userRole == "" {
			// No role on the context: Auth wasn't applied or failed silently.
			// 403 rather than 401 — the user may be authenticated but roleless.
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}

		for _, role := range roles {
			if userRole == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}
