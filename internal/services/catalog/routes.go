package catalog

import (
	"github.com/gofiber/fiber/v3"
)

// SetupRoutes настраивает маршруты справочника категорий
func (s *CatalogService) SetupRoutes(app *fiber.App) {
	app.Get("/api/categories", s.GetCategories)
	app.Get("/api/categories/:id/subcategories", s.GetSubCategories)
}
