package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/gorodok/gorodok-api/internal/config"
	"github.com/gorodok/gorodok-api/internal/utils"
)

// MediaService предоставляет методы для работы с медиафайлами в Cloudinary
type MediaService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	cld        *cloudinary.Cloudinary
}

// NewMediaService создает новый экземпляр MediaService
func NewMediaService(cfg *config.Config) *MediaService {
	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryConfig.CloudName,
		cfg.CloudinaryConfig.APIKey,
		cfg.CloudinaryConfig.APISecret,
	)
	if err != nil {
		log.Printf("Ошибка инициализации Cloudinary: %v", err)
	}

	return &MediaService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
		cld:        cld,
	}
}

// GenerateSignature создаёт корректную подпись для Cloudinary
func (s *MediaService) GenerateSignature(params map[string]string) string {
	// Сортируем ключи параметров
	var keys []string
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Формируем строку для подписи
	var signParts []string
	for _, k := range keys {
		signParts = append(signParts, fmt.Sprintf("%s=%s", k, params[k]))
	}
	signatureString := strings.Join(signParts, "&")

	// Добавляем API-секрет в конец строки
	signatureString += s.cfg.CloudinaryConfig.APISecret

	// Создаем SHA-1 хеш
	h := sha1.New()
	h.Write([]byte(signatureString))

	// Возвращаем подпись в виде шестнадцатеричной строки
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateUploadParams создаёт параметры для прямой загрузки изображений
func (s *MediaService) GenerateUploadParams(c fiber.Ctx) error {
	// Генерируем ID для подачи, если не передан
	submissionID := c.Query("submission_id")
	if submissionID == "" {
		submissionID = uuid.New().String()
	}

	// Текущий timestamp
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	// Параметры для подписи
	params := map[string]string{
		"timestamp": timestamp,
	}

	// Генерируем подпись
	signature := s.GenerateSignature(params)

	// Возвращаем параметры
	return c.JSON(fiber.Map{
		"timestamp":     timestamp,
		"signature":     signature,
		"api_key":       s.cfg.CloudinaryConfig.APIKey,
		"cloud_name":    s.cfg.CloudinaryConfig.CloudName,
		"submission_id": submissionID,
	})
}

// DeleteAsset удаляет загруженный файл по его public_id
func (s *MediaService) DeleteAsset(c fiber.Ctx) error {
	var payload struct {
		PublicID string `json:"public_id"`
	}
	if err := c.Bind().Body(&payload); err != nil || payload.PublicID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Не указан public_id"})
	}

	if s.cld == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Cloudinary недоступен"})
	}

	result, err := s.cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: payload.PublicID,
	})
	if err != nil {
		log.Printf("Ошибка удаления файла %s: %v", payload.PublicID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка удаления файла"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"result":  result.Result,
	})
}
