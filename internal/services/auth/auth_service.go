package auth

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"github.com/gorodok/gorodok-api/internal/config"
	"github.com/gorodok/gorodok-api/internal/db"
	"github.com/gorodok/gorodok-api/internal/utils"
)

// AuthService – структура для обработки авторизации
type AuthService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
}

// NewAuthService – конструктор AuthService
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
	}
}

// GetJWTService возвращает JWT сервис для настройки middleware
func (s *AuthService) GetJWTService() *utils.JWTService {
	return s.jwtService
}

// TelegramAuthHandler проверяет initData, создает или обновляет пользователя
// и возвращает JWT. Telegram ID из списка администраторов получают роль admin.
func (s *AuthService) TelegramAuthHandler(c fiber.Ctx) error {
	var payload struct {
		InitData string `json:"init_data"`
	}

	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	// Проверяем initData
	expiration := 24 * time.Hour
	if err := initdata.Validate(payload.InitData, s.cfg.TelegramBotToken, expiration); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid Telegram data"})
	}

	// Парсим данные
	data, err := initdata.Parse(payload.InitData)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse initData"})
	}

	user, err := db.CreateOrUpdateTelegramUser(
		data.User.ID, data.User.Username, data.User.FirstName, data.User.LastName, data.User.PhotoURL,
	)
	if err != nil {
		log.Printf("Ошибка сохранения пользователя: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save user"})
	}

	role := utils.RoleUser
	if s.cfg.IsAdminTelegramID(data.User.ID) {
		role = utils.RoleAdmin
	}

	// Генерируем JWT
	jwtToken, err := s.jwtService.GenerateToken(user.ID.String(), role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate JWT"})
	}

	return c.JSON(fiber.Map{
		"token": jwtToken,
		"role":  role,
		"user": fiber.Map{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"username":   user.Username,
			"photo_url":  user.AvatarURL,
		},
	})
}

// GuestAuthHandler выдает гостевую сессию. Гость может пользоваться избранным
// без регистрации; его набор живет только в сессионном хранилище.
func (s *AuthService) GuestAuthHandler(c fiber.Ctx) error {
	guestID := uuid.New().String()

	jwtToken, err := s.jwtService.GenerateToken(guestID, utils.RoleGuest)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate JWT"})
	}

	return c.JSON(fiber.Map{
		"token":    jwtToken,
		"role":     utils.RoleGuest,
		"guest_id": guestID,
	})
}

// ProfileHandler возвращает профиль текущего пользователя
func (s *AuthService) ProfileHandler(c fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	role := c.Locals("role").(string)

	if role == utils.RoleGuest {
		return c.JSON(fiber.Map{
			"role":     utils.RoleGuest,
			"guest_id": userID,
		})
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	user, err := db.GetUserByID(userUUID)
	if err != nil {
		log.Printf("Ошибка получения пользователя: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Пользователь не найден"})
	}

	return c.JSON(fiber.Map{
		"role": role,
		"user": fiber.Map{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"username":   user.Username,
			"photo_url":  user.AvatarURL,
		},
	})
}
