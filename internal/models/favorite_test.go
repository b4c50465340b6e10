package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFavoriteRow(t *testing.T) {
	rowID := uuid.New()
	shopID := uuid.New()
	adID := uuid.New()
	createdAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	t.Run("строка с заведением", func(t *testing.T) {
		rel, err := NormalizeFavoriteRow(FavoriteRow{
			ID:        rowID,
			ShopID:    &shopID,
			CreatedAt: createdAt,
		})
		require.NoError(t, err)
		assert.Equal(t, FavoriteTypeListing, rel.Type)
		assert.Equal(t, shopID.String(), rel.RefID)
		assert.Equal(t, rowID.String(), rel.FavouriteID)
		assert.Equal(t, createdAt, rel.CreatedAt)
	})

	t.Run("строка с объявлением", func(t *testing.T) {
		rel, err := NormalizeFavoriteRow(FavoriteRow{
			ID:              rowID,
			AdvertisementID: &adID,
		})
		require.NoError(t, err)
		assert.Equal(t, FavoriteTypeAd, rel.Type)
		assert.Equal(t, adID.String(), rel.RefID)
	})

	t.Run("обе ссылки сразу", func(t *testing.T) {
		_, err := NormalizeFavoriteRow(FavoriteRow{
			ID:              rowID,
			ShopID:          &shopID,
			AdvertisementID: &adID,
		})
		assert.ErrorIs(t, err, ErrAmbiguousFavoriteRow)
	})

	t.Run("без ссылок", func(t *testing.T) {
		_, err := NormalizeFavoriteRow(FavoriteRow{ID: rowID})
		assert.ErrorIs(t, err, ErrAmbiguousFavoriteRow)
	})
}

func TestNormalizeFavoriteRowsSkipsBadRows(t *testing.T) {
	shopID := uuid.New()
	adID := uuid.New()

	relations := NormalizeFavoriteRows([]FavoriteRow{
		{ID: uuid.New(), ShopID: &shopID},
		{ID: uuid.New()}, // некорректная строка пропускается
		{ID: uuid.New(), AdvertisementID: &adID},
	})

	require.Len(t, relations, 2)
	assert.Equal(t, FavoriteTypeListing, relations[0].Type)
	assert.Equal(t, FavoriteTypeAd, relations[1].Type)
}
