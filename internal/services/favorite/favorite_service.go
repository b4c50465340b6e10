package favorite

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/gorodok/gorodok-api/internal/config"
	"github.com/gorodok/gorodok-api/internal/db"
	"github.com/gorodok/gorodok-api/internal/favorites"
	"github.com/gorodok/gorodok-api/internal/models"
	"github.com/gorodok/gorodok-api/internal/utils"
)

// FavoriteService представляет сервис для работы с избранным.
// Зарегистрированные пользователи получают сквозную запись в базу и
// серверный снимок при чтении (server-wins); гости — только сессионное
// хранилище.
type FavoriteService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	manager    *favorites.Manager
}

// NewFavoriteService создает новый экземпляр FavoriteService
func NewFavoriteService(cfg *config.Config, manager *favorites.Manager) *FavoriteService {
	return &FavoriteService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
		manager:    manager,
	}
}

// GetFavorites возвращает набор избранного текущей сессии.
// Для зарегистрированного пользователя серверный снимок авторитетен и
// полностью замещает сессионный набор; локальные записи, отсутствующие на
// сервере, при этом теряются.
func (s *FavoriteService) GetFavorites(c fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	role := c.Locals("role").(string)

	ctx := context.Background()
	store := s.manager.Store(ctx, sessionKey(role, userID))

	if role == utils.RoleUser {
		userUUID, err := uuid.Parse(userID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
		}

		seq := store.BeginSync()
		rows, err := db.ListFavoriteRows(userUUID)
		if err != nil {
			// Избранное никогда не блокирует приложение: отдаем сессионный набор
			log.Printf("Ошибка загрузки серверного снимка избранного: %v", err)
		} else {
			store.SyncFromServer(ctx, seq, models.NormalizeFavoriteRows(rows))
		}
	}

	items := store.Items()
	return c.JSON(fiber.Map{
		"favorites": items,
		"total":     len(items),
	})
}

// ToggleFavorite переключает избранное для объекта каталога или объявления.
// Доступ только для пользователей и гостей — проверено middleware до вызова.
// Для зарегистрированного пользователя запись в базу идет первой; при ошибке
// сессионный набор не меняется.
func (s *FavoriteService) ToggleFavorite(c fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	role := c.Locals("role").(string)

	var requestData struct {
		Type  models.FavoriteType `json:"type"`
		RefID string              `json:"ref_id"`
		Data  json.RawMessage     `json:"data,omitempty"`
	}

	if err := c.Bind().Body(&requestData); err != nil {
		log.Printf("Ошибка декодирования тела запроса: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	if requestData.RefID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID объекта не указан"})
	}
	if requestData.Type != models.FavoriteTypeListing && requestData.Type != models.FavoriteTypeAd {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неизвестный тип избранного"})
	}

	ctx := context.Background()
	store := s.manager.Store(ctx, sessionKey(role, userID))

	if favouriteID, ok := store.FavouriteID(requestData.RefID); ok {
		// Объект уже в избранном — убираем
		if role == utils.RoleUser {
			if err := s.removeRemote(userID, favouriteID); err != nil {
				log.Printf("Ошибка удаления из избранного: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка удаления из избранного"})
			}
		}
		store.Remove(ctx, favouriteID)
		return c.JSON(fiber.Map{"success": true, "is_favorite": false})
	}

	rel := models.FavoriteRelation{
		FavouriteID: uuid.New().String(),
		RefID:       requestData.RefID,
		Type:        requestData.Type,
		Data:        requestData.Data,
		CreatedAt:   time.Now(),
	}

	if role == utils.RoleUser {
		userUUID, err := uuid.Parse(userID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
		}
		if err := db.AddFavorite(userUUID, rel); err != nil {
			log.Printf("Ошибка добавления в избранное: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка добавления в избранное"})
		}
	}

	store.Add(ctx, rel)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"is_favorite":  true,
		"favourite_id": rel.FavouriteID,
	})
}

// CheckFavorite проверяет, находится ли объект в избранном
func (s *FavoriteService) CheckFavorite(c fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	role := c.Locals("role").(string)

	refID := c.Params("refId")
	if refID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID объекта не указан"})
	}

	store := s.manager.Store(context.Background(), sessionKey(role, userID))

	favouriteID, ok := store.FavouriteID(refID)
	if !ok {
		return c.JSON(fiber.Map{"is_favorite": false})
	}

	return c.JSON(fiber.Map{
		"is_favorite":  true,
		"favourite_id": favouriteID,
	})
}

func (s *FavoriteService) removeRemote(userID, favouriteID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}
	favouriteUUID, err := uuid.Parse(favouriteID)
	if err != nil {
		return err
	}
	return db.RemoveFavorite(userUUID, favouriteUUID)
}

// sessionKey строит ключ сессии избранного. Роль входит в ключ, чтобы
// гостевые и пользовательские наборы не пересекались.
func sessionKey(role, userID string) string {
	return role + ":" + userID
}
