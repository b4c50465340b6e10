package db

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gorodok/gorodok-api/internal/models"
)

// ListFavoriteRows возвращает строки избранного пользователя в порядке добавления.
// Строка ссылается либо на заведение, либо на объявление; приведение к единой
// форме выполняется выше, через models.NormalizeFavoriteRows.
func ListFavoriteRows(userID uuid.UUID) ([]models.FavoriteRow, error) {
	ctx, cancel := GetContext()
	defer cancel()

	rows, err := Pool.Query(ctx, `
		SELECT id, shop_id, advertisement_id, data, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса избранного: %w", err)
	}
	defer rows.Close()

	var result []models.FavoriteRow
	for rows.Next() {
		var row models.FavoriteRow
		if err := rows.Scan(&row.ID, &row.ShopID, &row.AdvertisementID, &row.Data, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки избранного: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// AddFavorite добавляет запись избранного пользователя.
// Запись ссылается на заведение или объявление в зависимости от типа связи.
func AddFavorite(userID uuid.UUID, rel models.FavoriteRelation) error {
	ctx, cancel := GetContext()
	defer cancel()

	favouriteID, err := uuid.Parse(rel.FavouriteID)
	if err != nil {
		return fmt.Errorf("неверный формат ID записи избранного: %w", err)
	}
	refID, err := uuid.Parse(rel.RefID)
	if err != nil {
		return fmt.Errorf("неверный формат ID объекта избранного: %w", err)
	}

	var shopID, adID *uuid.UUID
	switch rel.Type {
	case models.FavoriteTypeListing:
		shopID = &refID
	case models.FavoriteTypeAd:
		adID = &refID
	default:
		return fmt.Errorf("неизвестный тип избранного: %s", rel.Type)
	}

	_, err = Pool.Exec(ctx, `
		INSERT INTO favorites (id, user_id, shop_id, advertisement_id, data)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`, favouriteID, userID, shopID, adID, rel.Data)

	if err != nil {
		return fmt.Errorf("ошибка добавления в избранное: %w", err)
	}
	return nil
}

// RemoveFavorite удаляет запись избранного по ее собственному идентификатору
func RemoveFavorite(userID uuid.UUID, favouriteID uuid.UUID) error {
	ctx, cancel := GetContext()
	defer cancel()

	_, err := Pool.Exec(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND id = $2
	`, userID, favouriteID)

	if err != nil {
		return fmt.Errorf("ошибка удаления из избранного: %w", err)
	}
	return nil
}
