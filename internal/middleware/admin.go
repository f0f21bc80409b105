package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/shieldify/takedown-portal/internal/config"
	"github.com/shieldify/takedown-portal/internal/dto"
	"github.com/shieldify/takedown-portal/internal/identity"
	"github.com/shieldify/takedown-portal/internal/models"
)

// AdminRequired gates admin routes. It accepts the configured bootstrap
// emails and otherwise re-checks the profile's role in the database, so a
// demoted admin is locked out even while holding a valid token.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		actor, err := identity.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if contains(adminEmails, actor.Email) {
			return c.Next()
		}

		var profile models.UserProfile
		if err := db.First(&profile, "id = ?", actor.ID).Error; err == nil {
			if profile.Role == models.RoleAdmin {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
