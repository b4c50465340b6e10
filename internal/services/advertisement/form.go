package advertisement

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gorodok/gorodok-api/internal/models"
	"github.com/gorodok/gorodok-api/internal/moderation"
)

// patchFromForm строит частичное обновление из multipart-формы.
// Затрагиваются только присутствующие в форме поля.
func patchFromForm(values map[string][]string) (models.AdvertisementPatch, error) {
	var patch models.AdvertisementPatch

	if v, ok := first(values, "title"); ok {
		if v == "" {
			return patch, fmt.Errorf("название не может быть пустым")
		}
		patch.Title = &v
	}
	if v, ok := first(values, "description"); ok {
		patch.Description = &v
	}
	if v, ok := first(values, "category_id"); ok {
		categoryID, err := uuid.Parse(v)
		if err != nil {
			return patch, fmt.Errorf("неверный формат ID категории")
		}
		patch.CategoryID = &categoryID
	}
	if v, ok := first(values, "sub_category_id"); ok {
		subCategoryID, err := uuid.Parse(v)
		if err != nil {
			return patch, fmt.Errorf("неверный формат ID подкатегории")
		}
		patch.SubCategoryID = &subCategoryID
	}
	if v, ok := first(values, "price"); ok {
		patch.Price = &v
	}
	if v, ok := first(values, "address"); ok {
		patch.Address = &v
	}
	if v, ok := first(values, "location"); ok {
		patch.Location = &v
	}
	if v, ok := first(values, "video_url"); ok {
		patch.VideoURL = &v
	}
	if v, ok := first(values, "duration"); ok {
		duration := models.AdDuration(v)
		if duration != "" && !moderation.ValidDuration(duration) {
			return patch, fmt.Errorf("недопустимый срок размещения")
		}
		patch.Duration = &duration
	}
	if images, ok := values["images"]; ok {
		patch.Images = &images
	}

	// Контакты обновляются целиком, если передано хотя бы одно поле
	if hasAny(values, "contact_name", "contact_phone", "contact_whatsapp", "contact_email") {
		contact := models.AdContact{
			Name:     firstOrEmpty(values, "contact_name"),
			Phone:    firstOrEmpty(values, "contact_phone"),
			Whatsapp: firstOrEmpty(values, "contact_whatsapp"),
			Email:    firstOrEmpty(values, "contact_email"),
		}
		patch.Contact = &contact
	}

	return patch, nil
}

func first(values map[string][]string, key string) (string, bool) {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func firstOrEmpty(values map[string][]string, key string) string {
	v, _ := first(values, key)
	return v
}

func hasAny(values map[string][]string, keys ...string) bool {
	for _, key := range keys {
		if _, ok := values[key]; ok {
			return true
		}
	}
	return false
}
