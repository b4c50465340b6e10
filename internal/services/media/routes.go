package media

import (
	"github.com/gofiber/fiber/v3"

	"github.com/gorodok/gorodok-api/internal/middleware"
	"github.com/gorodok/gorodok-api/internal/utils"
)

// SetupRoutes настраивает маршруты для работы с медиафайлами
func (s *MediaService) SetupRoutes(app *fiber.App) {
	protected := app.Group("/api/media")
	protected.Use(middleware.AuthMiddleware(s.jwtService, utils.RoleUser, utils.RoleAdmin))

	// Маршрут для получения параметров загрузки
	protected.Get("/upload/params", s.GenerateUploadParams)

	// Маршрут для удаления загруженного файла
	protected.Post("/delete", s.DeleteAsset)
}
