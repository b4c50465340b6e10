package event

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/gorodok/gorodok-api/internal/config"
	"github.com/gorodok/gorodok-api/internal/db"
	"github.com/gorodok/gorodok-api/internal/models"
	"github.com/gorodok/gorodok-api/internal/utils"
)

// EventService представляет сервис городской афиши
type EventService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
}

// NewEventService создает новый экземпляр EventService
func NewEventService(cfg *config.Config) *EventService {
	return &EventService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
	}
}

// GetEvents возвращает события афиши, ближайшие первыми
func (s *EventService) GetEvents(c fiber.Ctx) error {
	events, err := db.ListEvents()
	if err != nil {
		log.Printf("Ошибка получения событий: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка получения событий"})
	}

	return c.JSON(fiber.Map{
		"events": events,
		"total":  len(events),
	})
}

// CreateEvent добавляет событие в афишу (только администратор)
func (s *EventService) CreateEvent(c fiber.Ctx) error {
	var payload struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Venue       string     `json:"venue"`
		StartsAt    time.Time  `json:"starts_at"`
		EndsAt      *time.Time `json:"ends_at"`
		ImageURL    string     `json:"image_url"`
	}
	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	if payload.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Название обязательно"})
	}
	if payload.StartsAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Дата начала обязательна"})
	}

	created, err := db.CreateEvent(models.Event{
		Title:       payload.Title,
		Description: payload.Description,
		Venue:       payload.Venue,
		StartsAt:    payload.StartsAt,
		EndsAt:      payload.EndsAt,
		ImageURL:    payload.ImageURL,
	})
	if err != nil {
		log.Printf("Ошибка создания события: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка создания события"})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// DeleteEvent удаляет событие из афиши (только администратор)
func (s *EventService) DeleteEvent(c fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID события"})
	}

	if err := db.DeleteEvent(eventID); err != nil {
		log.Printf("Ошибка удаления события: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка удаления события"})
	}

	return c.JSON(fiber.Map{"success": true})
}
