package favorite

import (
	"github.com/gofiber/fiber/v3"

	"github.com/gorodok/gorodok-api/internal/middleware"
	"github.com/gorodok/gorodok-api/internal/utils"
)

// SetupRoutes настраивает маршруты для API избранного.
// Доступ только для зарегистрированных пользователей и гостей: субъект без
// сессии получает 401 и уходит на логин, состояние не меняется.
func (s *FavoriteService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/favorites")

	api.Use(middleware.AuthMiddleware(s.jwtService, utils.RoleUser, utils.RoleGuest, utils.RoleAdmin))

	// Маршрут для получения набора избранного
	api.Get("/", s.GetFavorites)

	// Маршрут для переключения избранного
	api.Post("/toggle", s.ToggleFavorite)

	// Маршрут для проверки, находится ли объект в избранном
	api.Get("/:refId/check", s.CheckFavorite)
}
