package event

import (
	"github.com/gofiber/fiber/v3"

	"github.com/gorodok/gorodok-api/internal/middleware"
	"github.com/gorodok/gorodok-api/internal/utils"
)

// SetupRoutes настраивает маршруты городской афиши
func (s *EventService) SetupRoutes(app *fiber.App) {
	// Публичный маршрут
	app.Get("/api/events", s.GetEvents)

	// Управление афишей доступно только администратору
	adminGroup := app.Group("/api/events")
	adminGroup.Use(middleware.AuthMiddleware(s.jwtService, utils.RoleAdmin))
	adminGroup.Post("/", s.CreateEvent)
	adminGroup.Delete("/:id", s.DeleteEvent)
}
