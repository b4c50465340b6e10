package shop

import (
	"github.com/gofiber/fiber/v3"

	"github.com/gorodok/gorodok-api/internal/middleware"
	"github.com/gorodok/gorodok-api/internal/utils"
)

// SetupRoutes настраивает маршруты для API каталога заведений
func (s *ShopService) SetupRoutes(app *fiber.App) {
	// Публичные маршруты
	app.Get("/api/shops", s.GetPublicShops)
	app.Get("/api/shops/:id", s.GetShop)

	// Защищенные маршруты (требуют авторизации пользователя)
	protected := app.Group("/api/shops")
	protected.Use(middleware.AuthMiddleware(s.jwtService, utils.RoleUser, utils.RoleAdmin))

	// Маршрут для подачи заведения на модерацию
	protected.Post("/create", s.CreateShop)

	// Маршрут для получения своих заведений
	protected.Get("/my/list", s.GetMyShops)
}
