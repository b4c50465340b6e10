package advertisement

import (
	"github.com/gofiber/fiber/v3"

	"github.com/gorodok/gorodok-api/internal/middleware"
	"github.com/gorodok/gorodok-api/internal/utils"
)

// SetupRoutes настраивает маршруты для API доски объявлений
func (s *AdvertisementService) SetupRoutes(app *fiber.App) {
	// Публичные маршруты
	app.Get("/api/ads", s.GetPublicAds)
	app.Get("/api/ads/:id", s.GetAd)

	// Защищенные маршруты (требуют авторизации пользователя)
	protected := app.Group("/api/ads")
	protected.Use(middleware.AuthMiddleware(s.jwtService, utils.RoleUser, utils.RoleAdmin))

	// Маршрут для подачи объявления
	protected.Post("/create", s.CreateAd)

	// Маршрут для получения своих объявлений
	protected.Get("/my/list", s.GetMyAds)

	// Маршрут для обновления объявления
	protected.Put("/:id", s.UpdateAd)

	// Маршрут для удаления объявления
	protected.Delete("/:id", s.DeleteAd)
}
