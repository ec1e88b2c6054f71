package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const AdminLocalKey = "adminSubject"

// RequireAdmin gates a route group behind a bearer token signed with the
// admin secret. The token must carry role=admin; the subject is exposed in
// locals for audit logging.
func (m *Middleware) RequireAdmin() fiber.Handler {
	log := m.log.Function("RequireAdmin")

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			return []byte(m.Config.AdminJWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			log.Info("rejected admin token", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		if role, _ := claims["role"].(string); role != "admin" {
			log.Info("token without admin role")
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		if subject, err := claims.GetSubject(); err == nil {
			c.Locals(AdminLocalKey, subject)
		}

		return c.Next()
	}
}

// GetAdminSubject retrieves the authenticated admin subject from Fiber
// context, if any.
func GetAdminSubject(c *fiber.Ctx) string {
	if subject, ok := c.Locals(AdminLocalKey).(string); ok {
		return subject
	}
	return ""
}
