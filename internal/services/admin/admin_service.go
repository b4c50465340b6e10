package admin

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/gorodok/gorodok-api/internal/config"
	"github.com/gorodok/gorodok-api/internal/db"
	"github.com/gorodok/gorodok-api/internal/moderation"
	"github.com/gorodok/gorodok-api/internal/utils"
	"github.com/gorodok/gorodok-api/internal/websocket"
)

// AdminService представляет консоль модерации для администратора
type AdminService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	lifecycle  *moderation.Lifecycle
	wsManager  *websocket.Manager
}

// NewAdminService создает новый экземпляр AdminService
func NewAdminService(cfg *config.Config, lifecycle *moderation.Lifecycle, wsManager *websocket.Manager) *AdminService {
	return &AdminService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
		lifecycle:  lifecycle,
		wsManager:  wsManager,
	}
}

// AuthorizeEventToken проверяет токен для WebSocket-канала событий.
// Допускаются только администраторы.
func (s *AdminService) AuthorizeEventToken(token string) (string, error) {
	claims, err := s.jwtService.ExtractClaims(token)
	if err != nil {
		return "", err
	}
	if claims.Role != utils.RoleAdmin {
		return "", fmt.Errorf("недостаточно прав")
	}
	return claims.UserID, nil
}

// GetStats возвращает счетчики консоли: живая проекция по коллекциям
// модерации плюс количества пользователей и событий из базы
func (s *AdminService) GetStats(c fiber.Ctx) error {
	stats := s.lifecycle.Stats()

	totalUsers, err := db.CountUsers()
	if err != nil {
		log.Printf("Ошибка подсчета пользователей: %v", err)
	}
	totalEvents, err := db.CountEvents()
	if err != nil {
		log.Printf("Ошибка подсчета событий: %v", err)
	}

	return c.JSON(fiber.Map{
		"total_shops":   stats.TotalShops,
		"pending_shops": stats.PendingShops,
		"total_ads":     stats.TotalAds,
		"pending_ads":   stats.PendingAds,
		"total_users":   totalUsers,
		"total_events":  totalEvents,
	})
}

// GetShops возвращает все заведения для консоли
func (s *AdminService) GetShops(c fiber.Ctx) error {
	shops := s.lifecycle.Shops()
	return c.JSON(fiber.Map{"shops": shops, "total": len(shops)})
}

// GetPendingShops возвращает заведения, ожидающие модерации
func (s *AdminService) GetPendingShops(c fiber.Ctx) error {
	shops := s.lifecycle.PendingShops()
	return c.JSON(fiber.Map{"shops": shops, "total": len(shops)})
}

// GetAds возвращает все объявления для консоли
func (s *AdminService) GetAds(c fiber.Ctx) error {
	ads := s.lifecycle.Ads()
	return c.JSON(fiber.Map{"advertisements": ads, "total": len(ads)})
}

// GetPendingAds возвращает объявления, ожидающие модерации
func (s *AdminService) GetPendingAds(c fiber.Ctx) error {
	ads := s.lifecycle.PendingAds()
	return c.JSON(fiber.Map{"advertisements": ads, "total": len(ads)})
}

// ApproveShop одобряет заведение
func (s *AdminService) ApproveShop(c fiber.Ctx) error {
	return s.shopTransition(c, s.lifecycle.ApproveShop)
}

// RejectShop отклоняет заведение
func (s *AdminService) RejectShop(c fiber.Ctx) error {
	return s.shopTransition(c, s.lifecycle.RejectShop)
}

// ResetShop возвращает заведение на модерацию
func (s *AdminService) ResetShop(c fiber.Ctx) error {
	return s.shopTransition(c, s.lifecycle.ResetShopToPending)
}

// DeleteShop безвозвратно удаляет заведение
func (s *AdminService) DeleteShop(c fiber.Ctx) error {
	return s.shopTransition(c, s.lifecycle.DeleteShop)
}

// SetShopFeatured выставляет флаг featured у заведения
func (s *AdminService) SetShopFeatured(c fiber.Ctx) error {
	return s.shopFlag(c, "featured", s.lifecycle.SetShopFeatured)
}

// SetShopSponsored выставляет флаг sponsored у заведения
func (s *AdminService) SetShopSponsored(c fiber.Ctx) error {
	return s.shopFlag(c, "sponsored", s.lifecycle.SetShopSponsored)
}

// ApproveAd одобряет объявление. Если в теле передана цена, она фиксируется
// на объявлении вместе с одобрением.
func (s *AdminService) ApproveAd(c fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID"})
	}

	var payload struct {
		Price string `json:"price"`
	}
	// Тело опционально
	_ = c.Bind().Body(&payload)

	if payload.Price != "" {
		err = s.lifecycle.ApproveAdWithPrice(context.Background(), adID, payload.Price)
	} else {
		err = s.lifecycle.ApproveAd(context.Background(), adID)
	}
	if err != nil {
		log.Printf("Ошибка одобрения объявления: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка сохранения изменений"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// RejectAd отклоняет объявление
func (s *AdminService) RejectAd(c fiber.Ctx) error {
	return s.adTransition(c, s.lifecycle.RejectAd)
}

// ResetAd возвращает объявление на модерацию
func (s *AdminService) ResetAd(c fiber.Ctx) error {
	return s.adTransition(c, s.lifecycle.ResetAdToPending)
}

// MarkAdPaid фиксирует оплату: дата окончания размещения пересчитывается
// от текущего момента по сохраненному сроку
func (s *AdminService) MarkAdPaid(c fiber.Ctx) error {
	return s.adTransition(c, s.lifecycle.MarkAdPaid)
}

// MarkAdLive переводит одобренное объявление в показ
func (s *AdminService) MarkAdLive(c fiber.Ctx) error {
	return s.adTransition(c, s.lifecycle.MarkAdLive)
}

// DeleteAd безвозвратно удаляет объявление
func (s *AdminService) DeleteAd(c fiber.Ctx) error {
	return s.adTransition(c, s.lifecycle.DeleteAd)
}

// SetAdFeatured выставляет флаг featured у объявления
func (s *AdminService) SetAdFeatured(c fiber.Ctx) error {
	return s.adFlag(c, "featured", s.lifecycle.SetAdFeatured)
}

// SetAdSponsored выставляет флаг sponsored у объявления
func (s *AdminService) SetAdSponsored(c fiber.Ctx) error {
	return s.adFlag(c, "sponsored", s.lifecycle.SetAdSponsored)
}

// ExpireDueAds переводит объявления с истекшим сроком в expired
func (s *AdminService) ExpireDueAds(c fiber.Ctx) error {
	expired, err := s.lifecycle.ExpireDueAds(context.Background())
	if err != nil {
		log.Printf("Ошибка снятия объявлений с показа: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка сохранения изменений"})
	}
	return c.JSON(fiber.Map{"success": true, "expired": expired})
}

func (s *AdminService) shopTransition(c fiber.Ctx, op func(context.Context, uuid.UUID) error) error {
	shopID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID"})
	}

	if err := op(context.Background(), shopID); err != nil {
		log.Printf("Ошибка операции модерации заведения: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка сохранения изменений"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (s *AdminService) adTransition(c fiber.Ctx, op func(context.Context, uuid.UUID) error) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID"})
	}

	if err := op(context.Background(), adID); err != nil {
		log.Printf("Ошибка операции модерации объявления: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка сохранения изменений"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (s *AdminService) shopFlag(c fiber.Ctx, field string, op func(context.Context, uuid.UUID, bool) error) error {
	shopID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID"})
	}

	value, err := flagValue(c, field)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := op(context.Background(), shopID, value); err != nil {
		log.Printf("Ошибка установки флага %s: %v", field, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка сохранения изменений"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (s *AdminService) adFlag(c fiber.Ctx, field string, op func(context.Context, uuid.UUID, bool) error) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID"})
	}

	value, err := flagValue(c, field)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := op(context.Background(), adID, value); err != nil {
		log.Printf("Ошибка установки флага %s: %v", field, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка сохранения изменений"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func flagValue(c fiber.Ctx, field string) (bool, error) {
	var payload map[string]bool
	if err := c.Bind().Body(&payload); err != nil {
		return false, fmt.Errorf("неверный формат данных")
	}
	value, ok := payload[field]
	if !ok {
		return false, fmt.Errorf("поле %s не указано", field)
	}
	return value, nil
}
