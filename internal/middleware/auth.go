// Package middleware contains HTTP middleware for the scoring API.
// Middleware runs on every request before the route handler — the home
// for cross-cutting concerns like authentication and role checks.
package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/trentd187/match-play-scoring/internal/config"
	"github.com/trentd187/match-play-scoring/internal/models"
)

// Claims is the data we expect inside a Clerk JWT payload. Subject is
// the Clerk user ID; the custom claims come from the Clerk dashboard
// JWT template:
//
//	"role":  "{{user.public_metadata.role}}"
//	"email": "{{user.primary_email_address}}"
//	"name":  "{{user.full_name}}"
//
// Without the template configured, role defaults to "user" and
// email/name fall back to deterministic placeholders.
type Claims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Auth returns a middleware handler that validates the JWT from the
// "Authorization: Bearer <token>" header, lazily syncs the user into
// our database (created on first visit, role refreshed after), and
// stores the user's internal UUID and role in the request context for
// downstream handlers.
func Auth(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		// TODO: replace ParseUnverified with full JWKS signature verification
		// before production — unverified parsing is a dev-only shortcut.
		token, _, err := jwt.NewParser().ParseUnverified(tokenStr, &Claims{})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token claims",
			})
		}

		clerkUserID := claims.Subject
		if clerkUserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token missing subject",
			})
		}

		role := roleFromClaim(claims.Role)

		// Deterministic placeholders keep the unique-email constraint happy
		// until the JWT template supplies real values.
		email := claims.Email
		if email == "" {
			email = fmt.Sprintf("%s@clerk.local", clerkUserID)
		}
		name := claims.Name
		if name == "" {
			name = "User"
		}

		var user models.User
		result := db.Where("clerk_id = ?", clerkUserID).First(&user)
		if result.Error != nil {
			if result.Error != gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "database error",
				})
			}

			user = models.User{
				ClerkID:     &clerkUserID,
				DisplayName: name,
				Email:       email,
				Role:        role,
			}
			if err := db.Create(&user).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to create user record",
				})
			}
		} else if user.Role != role && claims.Role != "" {
			// Role changed in Clerk since the last request — sync it down.
			db.Model(&user).Update("role", role)
			user.Role = role
		}

		c.Locals("userID", user.ID.String())
		c.Locals("userRole", string(user.Role))

		return c.Next()
	}
}

// roleFromClaim converts the raw role claim into our typed UserRole,
// defaulting to the least-privileged "user" when missing or unknown.
func roleFromClaim(s string) models.UserRole {
	switch s {
	case "admin":
		return models.UserRoleAdmin
	case "manager":
		return models.UserRoleManager
	default:
		return models.UserRoleUser
	}
}
