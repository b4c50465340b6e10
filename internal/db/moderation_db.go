package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gorodok/gorodok-api/internal/models"
)

// ModerationBackend — реализация moderation.Backend поверх Postgres
type ModerationBackend struct{}

// NewModerationBackend создает новый экземпляр ModerationBackend
func NewModerationBackend() *ModerationBackend {
	return &ModerationBackend{}
}

// ListShops возвращает все заведения в порядке подачи
func (b *ModerationBackend) ListShops(ctx context.Context) ([]models.Shop, error) {
	rows, err := Pool.Query(ctx, `
		SELECT id, owner_id, name, description, category_id, sub_category_id,
			   address, location, phone, images, status, submitted_date,
			   approved_date, featured, sponsored
		FROM shops
		ORDER BY submitted_date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса заведений: %w", err)
	}
	defer rows.Close()

	var shops []models.Shop
	for rows.Next() {
		var shop models.Shop
		var imagesData []byte
		var approvedDate pgtype.Timestamptz

		if err := rows.Scan(
			&shop.ID, &shop.OwnerID, &shop.Name, &shop.Description,
			&shop.CategoryID, &shop.SubCategoryID,
			&shop.Address, &shop.Location, &shop.Phone, &imagesData,
			&shop.Status, &shop.SubmittedDate, &approvedDate,
			&shop.Featured, &shop.Sponsored,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования заведения: %w", err)
		}

		if err := json.Unmarshal(imagesData, &shop.Images); err != nil {
			log.Printf("Ошибка разбора изображений заведения %s: %v", shop.ID, err)
			shop.Images = []string{}
		}
		if approvedDate.Valid {
			t := approvedDate.Time
			shop.ApprovedDate = &t
		}

		shops = append(shops, shop)
	}

	return shops, rows.Err()
}

// ListAds возвращает все объявления в порядке подачи
func (b *ModerationBackend) ListAds(ctx context.Context) ([]models.Advertisement, error) {
	rows, err := Pool.Query(ctx, `
		SELECT id, owner_id, title, description, category_id, sub_category_id,
			   price, address, location, contact, images, video_url, duration,
			   status, submitted_date, approved_date, expiry_date, featured, sponsored
		FROM advertisements
		ORDER BY submitted_date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса объявлений: %w", err)
	}
	defer rows.Close()

	var ads []models.Advertisement
	for rows.Next() {
		var ad models.Advertisement
		var contactData, imagesData []byte
		var videoURL pgtype.Text
		var duration pgtype.Text
		var approvedDate, expiryDate pgtype.Timestamptz

		if err := rows.Scan(
			&ad.ID, &ad.OwnerID, &ad.Title, &ad.Description,
			&ad.CategoryID, &ad.SubCategoryID,
			&ad.Price, &ad.Address, &ad.Location, &contactData, &imagesData,
			&videoURL, &duration, &ad.Status, &ad.SubmittedDate,
			&approvedDate, &expiryDate, &ad.Featured, &ad.Sponsored,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования объявления: %w", err)
		}

		if err := json.Unmarshal(contactData, &ad.Contact); err != nil {
			log.Printf("Ошибка разбора контактов объявления %s: %v", ad.ID, err)
		}
		if err := json.Unmarshal(imagesData, &ad.Images); err != nil {
			log.Printf("Ошибка разбора изображений объявления %s: %v", ad.ID, err)
			ad.Images = []string{}
		}
		if videoURL.Valid {
			ad.VideoURL = videoURL.String
		}
		if duration.Valid {
			ad.Duration = models.AdDuration(duration.String)
		}
		if approvedDate.Valid {
			t := approvedDate.Time
			ad.ApprovedDate = &t
		}
		if expiryDate.Valid {
			t := expiryDate.Time
			ad.ExpiryDate = &t
		}

		ads = append(ads, ad)
	}

	return ads, rows.Err()
}

// CreateShop вставляет новое заведение
func (b *ModerationBackend) CreateShop(ctx context.Context, shop models.Shop) error {
	imagesData, err := json.Marshal(shop.Images)
	if err != nil {
		return fmt.Errorf("ошибка сериализации изображений: %w", err)
	}

	_, err = Pool.Exec(ctx, `
		INSERT INTO shops (id, owner_id, name, description, category_id, sub_category_id,
						   address, location, phone, images, status, submitted_date,
						   approved_date, featured, sponsored)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, shop.ID, shop.OwnerID, shop.Name, shop.Description, shop.CategoryID, shop.SubCategoryID,
		shop.Address, shop.Location, shop.Phone, imagesData, shop.Status, shop.SubmittedDate,
		shop.ApprovedDate, shop.Featured, shop.Sponsored)

	if err != nil {
		return fmt.Errorf("ошибка вставки заведения: %w", err)
	}
	return nil
}

// UpdateShop перезаписывает заведение целиком
func (b *ModerationBackend) UpdateShop(ctx context.Context, shop models.Shop) error {
	imagesData, err := json.Marshal(shop.Images)
	if err != nil {
		return fmt.Errorf("ошибка сериализации изображений: %w", err)
	}

	_, err = Pool.Exec(ctx, `
		UPDATE shops
		SET name = $1, description = $2, category_id = $3, sub_category_id = $4,
			address = $5, location = $6, phone = $7, images = $8, status = $9,
			approved_date = $10, featured = $11, sponsored = $12, updated_at = CURRENT_TIMESTAMP
		WHERE id = $13
	`, shop.Name, shop.Description, shop.CategoryID, shop.SubCategoryID,
		shop.Address, shop.Location, shop.Phone, imagesData, shop.Status,
		shop.ApprovedDate, shop.Featured, shop.Sponsored, shop.ID)

	if err != nil {
		return fmt.Errorf("ошибка обновления заведения: %w", err)
	}
	return nil
}

// DeleteShop удаляет заведение безвозвратно
func (b *ModerationBackend) DeleteShop(ctx context.Context, id uuid.UUID) error {
	if _, err := Pool.Exec(ctx, `DELETE FROM shops WHERE id = $1`, id); err != nil {
		return fmt.Errorf("ошибка удаления заведения: %w", err)
	}
	return nil
}

// CreateAd вставляет новое объявление
func (b *ModerationBackend) CreateAd(ctx context.Context, ad models.Advertisement) error {
	contactData, imagesData, err := marshalAdFields(ad)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(ctx, `
		INSERT INTO advertisements (id, owner_id, title, description, category_id, sub_category_id,
									price, address, location, contact, images, video_url, duration,
									status, submitted_date, approved_date, expiry_date, featured, sponsored)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`, ad.ID, ad.OwnerID, ad.Title, ad.Description, ad.CategoryID, ad.SubCategoryID,
		ad.Price, ad.Address, ad.Location, contactData, imagesData, nullIfEmpty(ad.VideoURL),
		nullIfEmpty(string(ad.Duration)), ad.Status, ad.SubmittedDate, ad.ApprovedDate,
		ad.ExpiryDate, ad.Featured, ad.Sponsored)

	if err != nil {
		return fmt.Errorf("ошибка вставки объявления: %w", err)
	}
	return nil
}

// UpdateAd перезаписывает объявление целиком
func (b *ModerationBackend) UpdateAd(ctx context.Context, ad models.Advertisement) error {
	contactData, imagesData, err := marshalAdFields(ad)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(ctx, `
		UPDATE advertisements
		SET title = $1, description = $2, category_id = $3, sub_category_id = $4,
			price = $5, address = $6, location = $7, contact = $8, images = $9,
			video_url = $10, duration = $11, status = $12, approved_date = $13,
			expiry_date = $14, featured = $15, sponsored = $16, updated_at = CURRENT_TIMESTAMP
		WHERE id = $17
	`, ad.Title, ad.Description, ad.CategoryID, ad.SubCategoryID,
		ad.Price, ad.Address, ad.Location, contactData, imagesData,
		nullIfEmpty(ad.VideoURL), nullIfEmpty(string(ad.Duration)), ad.Status,
		ad.ApprovedDate, ad.ExpiryDate, ad.Featured, ad.Sponsored, ad.ID)

	if err != nil {
		return fmt.Errorf("ошибка обновления объявления: %w", err)
	}
	return nil
}

// DeleteAd удаляет объявление безвозвратно
func (b *ModerationBackend) DeleteAd(ctx context.Context, id uuid.UUID) error {
	if _, err := Pool.Exec(ctx, `DELETE FROM advertisements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("ошибка удаления объявления: %w", err)
	}
	return nil
}

func marshalAdFields(ad models.Advertisement) ([]byte, []byte, error) {
	contactData, err := json.Marshal(ad.Contact)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка сериализации контактов: %w", err)
	}
	imagesData, err := json.Marshal(ad.Images)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка сериализации изображений: %w", err)
	}
	return contactData, imagesData, nil
}

func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
