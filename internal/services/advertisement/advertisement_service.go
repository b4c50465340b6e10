package advertisement

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

// AdvertisementService представляет сервис доски объявлений
type AdvertisementService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	lifecycle  *moderation.Lifecycle
}

// NewAdvertisementService создает новый экземпляр AdvertisementService
func NewAdvertisementService(cfg *config.Config, lifecycle *moderation.Lifecycle) *AdvertisementService {
	return &AdvertisementService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
		lifecycle:  lifecycle,
	}
}

// GetPublicAds возвращает объявления, видимые посетителям: одобренные и
// опубликованные, без истекших
func (s *AdvertisementService) GetPublicAds(c fiber.Ctx) error {
	categoryFilter := c.Query("category_id", "")

	var ads []models.Advertisement
	for _, ad := range s.lifecycle.Ads() {
		if ad.Status != models.AdStatusApproved && ad.Status != models.AdStatusLive {
			continue
		}
		if categoryFilter != "" && ad.CategoryID.String() != categoryFilter {
			continue
		}
		ads = append(ads, ad)
	}

	return c.JSON(fiber.Map{
		"advertisements": ads,
		"total":          len(ads),
	})
}

// GetAd возвращает одно объявление по ID
func (s *AdvertisementService) GetAd(c fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID объявления"})
	}

	ad, ok := s.lifecycle.AdByID(adID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Объявление не найдено"})
	}
	if ad.Status != models.AdStatusApproved && ad.Status != models.AdStatusLive {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Объявление не найдено"})
	}

	return c.JSON(ad)
}

// CreateAd обрабатывает подачу объявления через multipart-форму.
// Объявление всегда попадает в статус pending независимо от переданных полей.
func (s *AdvertisementService) CreateAd(c fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Printf("Ошибка разбора multipart-формы: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	title := c.FormValue("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Название обязательно"})
	}

	categoryID, err := uuid.Parse(c.FormValue("category_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Выберите категорию"})
	}

	ad := models.Advertisement{
		OwnerID:     userUUID,
		Title:       title,
		Description: c.FormValue("description"),
		CategoryID:  categoryID,
		Price:       c.FormValue("price"),
		Address:     c.FormValue("address"),
		Location:    c.FormValue("location"),
		Contact: models.AdContact{
			Name:     c.FormValue("contact_name"),
			Phone:    c.FormValue("contact_phone"),
			Whatsapp: c.FormValue("contact_whatsapp"),
			Email:    c.FormValue("contact_email"),
		},
		Images:   form.Value["images"],
		VideoURL: c.FormValue("video_url"),
		Duration: models.AdDuration(c.FormValue("duration")),
	}

	if subCategory := c.FormValue("sub_category_id"); subCategory != "" {
		subCategoryID, err := uuid.Parse(subCategory)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID подкатегории"})
		}
		ad.SubCategoryID = &subCategoryID
	}

	if ad.Duration != "" && !moderation.ValidDuration(ad.Duration) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Недопустимый срок размещения"})
	}

	created, err := s.lifecycle.AddAd(context.Background(), ad)
	if err != nil {
		log.Printf("Ошибка создания объявления: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка сохранения объявления"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":          true,
		"advertisement_id": created.ID,
		"status":           created.Status,
		"message":          "Объявление отправлено на модерацию",
	})
}

// UpdateAd обрабатывает частичное обновление объявления владельцем.
// Присутствующие в форме поля заменяются, остальные не затрагиваются.
func (s *AdvertisementService) UpdateAd(c fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID объявления"})
	}

	ad, ok := s.lifecycle.AdByID(adID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Объявление не найдено"})
	}
	if ad.OwnerID.String() != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Объявление принадлежит другому пользователю"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Printf("Ошибка разбора multipart-формы: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	patch, err := patchFromForm(form.Value)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.lifecycle.EditAd(context.Background(), adID, patch); err != nil {
		log.Printf("Ошибка обновления объявления: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка обновления объявления"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Объявление обновлено",
	})
}

// DeleteAd удаляет объявление владельца безвозвратно
func (s *AdvertisementService) DeleteAd(c fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID объявления"})
	}

	ad, ok := s.lifecycle.AdByID(adID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Объявление не найдено"})
	}
	if ad.OwnerID.String() != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Объявление принадлежит другому пользователю"})
	}

	if err := s.lifecycle.DeleteAd(context.Background(), adID); err != nil {
		log.Printf("Ошибка удаления объявления: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка удаления объявления"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Объявление удалено",
	})
}

// GetMyAds возвращает объявления текущего пользователя в любом статусе
func (s *AdvertisementService) GetMyAds(c fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	var ads []models.Advertisement
	for _, ad := range s.lifecycle.Ads() {
		if ad.OwnerID == userUUID {
			ads = append(ads, ad)
		}
	}

	return c.JSON(fiber.Map{
		"advertisements": ads,
		"total":          len(ads),
	})
}
