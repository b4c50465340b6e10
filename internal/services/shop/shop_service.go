package shop

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/gorodok/gorodok-api/internal/config"
	"github.com/gorodok/gorodok-api/internal/models"
	"github.com/gorodok/gorodok-api/internal/moderation"
	"github.com/gorodok/gorodok-api/internal/utils"
)

// ShopService представляет сервис каталога заведений
type ShopService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	lifecycle  *moderation.Lifecycle
}

// NewShopService создает новый экземпляр ShopService
func NewShopService(cfg *config.Config, lifecycle *moderation.Lifecycle) *ShopService {
	return &ShopService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
		lifecycle:  lifecycle,
	}
}

// GetPublicShops возвращает одобренные заведения, опционально по категории
func (s *ShopService) GetPublicShops(c fiber.Ctx) error {
	categoryFilter := c.Query("category_id", "")

	var shops []models.Shop
	for _, shop := range s.lifecycle.Shops() {
		if shop.Status != models.ShopStatusApproved {
			continue
		}
		if categoryFilter != "" && shop.CategoryID.String() != categoryFilter {
			continue
		}
		shops = append(shops, shop)
	}

	return c.JSON(fiber.Map{
		"shops": shops,
		"total": len(shops),
	})
}

// GetShop возвращает одно заведение по ID. Неодобренное заведение видно
// только его владельцу через /my/list.
func (s *ShopService) GetShop(c fiber.Ctx) error {
	shopID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID заведения"})
	}

	shop, ok := s.lifecycle.ShopByID(shopID)
	if !ok || shop.Status != models.ShopStatusApproved {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Заведение не найдено"})
	}

	return c.JSON(shop)
}

// CreateShop обрабатывает подачу нового заведения. Заявка всегда попадает в
// статус pending и ждет модерации.
func (s *ShopService) CreateShop(c fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	var requestData struct {
		Name          string     `json:"name"`
		Description   string     `json:"description"`
		CategoryID    uuid.UUID  `json:"category_id"`
		SubCategoryID *uuid.UUID `json:"sub_category_id"`
		Address       string     `json:"address"`
		Location      string     `json:"location"`
		Phone         string     `json:"phone"`
		Images        []string   `json:"images"`
	}

	if err := c.Bind().Body(&requestData); err != nil {
		log.Printf("Ошибка декодирования тела запроса: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	// Валидация обязательных полей
	if requestData.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Название обязательно"})
	}
	if requestData.CategoryID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Выберите категорию"})
	}

	shop, err := s.lifecycle.AddShop(context.Background(), models.Shop{
		OwnerID:       userUUID,
		Name:          requestData.Name,
		Description:   requestData.Description,
		CategoryID:    requestData.CategoryID,
		SubCategoryID: requestData.SubCategoryID,
		Address:       requestData.Address,
		Location:      requestData.Location,
		Phone:         requestData.Phone,
		Images:        requestData.Images,
	})
	if err != nil {
		log.Printf("Ошибка создания заведения: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка сохранения заведения"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"shop_id": shop.ID,
		"status":  shop.Status,
		"message": "Заявка отправлена на модерацию",
	})
}

// GetMyShops возвращает заведения текущего пользователя в любом статусе
func (s *ShopService) GetMyShops(c fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	var shops []models.Shop
	for _, shop := range s.lifecycle.Shops() {
		if shop.OwnerID == userUUID {
			shops = append(shops, shop)
		}
	}

	return c.JSON(fiber.Map{
		"shops": shops,
		"total": len(shops),
	})
}
