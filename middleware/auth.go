package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"marketplace_backend/models"
	"marketplace_backend/utils"
)

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(message, nil))
}

// AuthMiddleware verifies a user access token and stores the caller's
// identity in Locals for downstream handlers.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return unauthorized(c, "Missing authorization token")
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}
		if claims["type"] != "access" {
			return unauthorized(c, "Access token required")
		}

		c.Locals("user_id", utils.ClaimUint(claims, "user_id"))
		if role, ok := claims["role"].(string); ok {
			c.Locals("role", role)
		}
		return c.Next()
	}
}

// RequireModerator rejects callers whose token does not carry the
// moderator role. Must run after AuthMiddleware.
func RequireModerator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("role").(string); role != "moderator" {
			return c.Status(fiber.StatusForbidden).
				JSON(models.ErrorResponse("Moderator access required", nil))
		}
		return c.Next()
	}
}

// AgentAuthMiddleware verifies a delivery agent access token and requires
// the agent to still be approved; a revoked or pending agent gets 403 even
// with a valid token.
func AgentAuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return unauthorized(c, "Missing authorization token")
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}
		if claims["type"] != "access" || claims["user_type"] != "delivery_agent" {
			return unauthorized(c, "Agent access token required")
		}

		agentID := utils.ClaimUint(claims, "agent_id")
		var agent models.DeliveryAgent
		if err := db.First(&agent, agentID).Error; err != nil {
			return unauthorized(c, "Agent not found")
		}
		if agent.ApprovalStatus != models.ApproveApproved {
			return c.Status(fiber.StatusForbidden).
				JSON(models.ErrorResponse("Agent is not approved", nil))
		}

		c.Locals("agent_id", agentID)
		return c.Next()
	}
}
