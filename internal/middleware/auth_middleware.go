package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/gorodok/gorodok-api/internal/utils"
)

// AuthMiddleware создаёт middleware для проверки JWT. Если указаны роли,
// субъекты с другими ролями получают 403. Без ролей достаточно валидного
// токена. Решение о допуске принимается здесь, до вызова сервисов —
// единственная точка проверки прав.
func AuthMiddleware(jwtService *utils.JWTService, roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		// Проверяем Bearer токен
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := jwtService.ExtractClaims(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		if len(roles) > 0 && !containsRole(roles, claims.Role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}

		// Добавляем субъект в контекст
		c.Locals("userID", claims.UserID)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
