package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/match-play-scoring/internal/models"
)

// withRole simulates Auth having already populated the request context.
func withRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("userRole", role)
		}
		return c.Next()
	}
}

func okHandler(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		allowed  []string
		expected int
	}{
		{"matching role", "admin", []string{"admin"}, fiber.StatusOK},
		{"one of several", "manager", []string{"admin", "manager"}, fiber.StatusOK},
		{"wrong role", "user", []string{"admin", "manager"}, fiber.StatusForbidden},
		{"no role on context", "", []string{"admin"}, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/guarded", withRole(tt.role), RequireRole(tt.allowed...), okHandler)

			resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.StatusCode)
		})
	}
}

func TestRoleFromClaim(t *testing.T) {
	assert.Equal(t, models.UserRoleAdmin, roleFromClaim("admin"))
	assert.Equal(t, models.UserRoleManager, roleFromClaim("manager"))
	assert.Equal(t, models.UserRoleUser, roleFromClaim("user"))
	assert.Equal(t, models.UserRoleUser, roleFromClaim(""))
	assert.Equal(t, models.UserRoleUser, roleFromClaim("superuser"))
}
