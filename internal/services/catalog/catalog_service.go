package catalog

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/gorodok/gorodok-api/internal/config"
	"github.com/gorodok/gorodok-api/internal/db"
	"github.com/gorodok/gorodok-api/internal/models"
)

// CatalogService отдает справочник категорий и подкатегорий
type CatalogService struct {
	cfg *config.Config
}

// NewCatalogService создает новый экземпляр CatalogService
func NewCatalogService(cfg *config.Config) *CatalogService {
	return &CatalogService{cfg: cfg}
}

// GetCategories возвращает категории, опционально по разделу через ?section=
func (s *CatalogService) GetCategories(c fiber.Ctx) error {
	section := models.CategorySection(c.Query("section", ""))

	categories, err := db.ListCategories(section)
	if err != nil {
		log.Printf("Ошибка получения категорий: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка получения категорий"})
	}

	return c.JSON(fiber.Map{
		"categories": categories,
		"total":      len(categories),
	})
}

// GetSubCategories возвращает подкатегории указанной категории
func (s *CatalogService) GetSubCategories(c fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID категории"})
	}

	subCategories, err := db.ListSubCategories(categoryID)
	if err != nil {
		log.Printf("Ошибка получения подкатегорий: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка получения подкатегорий"})
	}

	return c.JSON(fiber.Map{
		"sub_categories": subCategories,
		"total":          len(subCategories),
	})
}
