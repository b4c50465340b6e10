package moderation

import (
	"time"

	"github.com/gorodok/gorodok-api/internal/models"
)

// ValidDuration проверяет, что срок размещения входит в допустимый набор
func ValidDuration(d models.AdDuration) bool {
	switch d {
	case models.AdDuration1Day, models.AdDuration3Days, models.AdDuration1Week, models.AdDuration1Month:
		return true
	}
	return false
}

// ExpiryFrom вычисляет дату окончания размещения от момента from.
// Сложение календарное: месяц — это календарный месяц, а не 30 суток.
// Для пустого или неизвестного срока возвращается false.
func ExpiryFrom(from time.Time, d models.AdDuration) (time.Time, bool) {
	switch d {
	case models.AdDuration1Day:
		return from.AddDate(0, 0, 1), true
	case models.AdDuration3Days:
		return from.AddDate(0, 0, 3), true
	case models.AdDuration1Week:
		return from.AddDate(0, 0, 7), true
	case models.AdDuration1Month:
		return from.AddDate(0, 1, 0), true
	}
	return time.Time{}, false
}
