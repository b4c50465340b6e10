package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// FavoriteType определяет тип объекта, добавленного в избранное
type FavoriteType string

const (
	// FavoriteTypeListing — заведение каталога (магазин, храм, туристическое место, услуга)
	FavoriteTypeListing FavoriteType = "listing"
	// FavoriteTypeAd — объявление с доски объявлений
	FavoriteTypeAd FavoriteType = "ad"
)

// FavoriteRelation представляет запись избранного: связь пользователя с объектом каталога.
// RefID — идентификатор избранного объекта, FavouriteID — идентификатор самой записи.
type FavoriteRelation struct {
	FavouriteID string          `json:"favourite_id"`
	RefID       string          `json:"ref_id"`
	Type        FavoriteType    `json:"type"`
	Data        json.RawMessage `json:"data,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FavoriteRow представляет строку избранного из базы данных.
// Строка ссылается либо на заведение (shop_id), либо на объявление (advertisement_id).
type FavoriteRow struct {
	ID              uuid.UUID
	ShopID          *uuid.UUID
	AdvertisementID *uuid.UUID
	Data            json.RawMessage
	CreatedAt       time.Time
}

// ErrAmbiguousFavoriteRow возвращается, когда строка избранного не указывает
// ровно на один объект
var ErrAmbiguousFavoriteRow = errors.New("строка избранного должна ссылаться ровно на один объект")

// NormalizeFavoriteRow приводит строку из базы к единой форме FavoriteRelation.
// Разрешение формы происходит один раз на границе, дальше данные не передаются
// как нетипизированный блоб.
func NormalizeFavoriteRow(row FavoriteRow) (FavoriteRelation, error) {
	rel := FavoriteRelation{
		FavouriteID: row.ID.String(),
		Data:        row.Data,
		CreatedAt:   row.CreatedAt,
	}

	switch {
	case row.ShopID != nil && row.AdvertisementID == nil:
		rel.Type = FavoriteTypeListing
		rel.RefID = row.ShopID.String()
	case row.AdvertisementID != nil && row.ShopID == nil:
		rel.Type = FavoriteTypeAd
		rel.RefID = row.AdvertisementID.String()
	default:
		return FavoriteRelation{}, ErrAmbiguousFavoriteRow
	}

	return rel, nil
}

// NormalizeFavoriteRows приводит набор строк к единой форме, пропуская некорректные записи
func NormalizeFavoriteRows(rows []FavoriteRow) []FavoriteRelation {
	relations := make([]FavoriteRelation, 0, len(rows))
	for _, row := range rows {
		rel, err := NormalizeFavoriteRow(row)
		if err != nil {
			continue
		}
		relations = append(relations, rel)
	}
	return relations
}
