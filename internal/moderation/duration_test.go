package moderation

import (
	"testing"
	"time"

	"github.com/gorodok/gorodok-api/internal/models"
)

func TestExpiryFrom(t *testing.T) {
	from := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		duration models.AdDuration
		want     time.Time
		ok       bool
	}{
		{"один день", models.AdDuration1Day, time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), true},
		{"три дня", models.AdDuration3Days, time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC), true},
		{"неделя", models.AdDuration1Week, time.Date(2026, 2, 7, 10, 0, 0, 0, time.UTC), true},
		// Календарный месяц от 31 января — не 30 суток
		{"месяц", models.AdDuration1Month, time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC), true},
		{"пустой срок", models.AdDuration(""), time.Time{}, false},
		{"неизвестный срок", models.AdDuration("2weeks"), time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExpiryFrom(from, tt.duration)
			if ok != tt.ok {
				t.Fatalf("ExpiryFrom(%q): ok = %v, ожидалось %v", tt.duration, ok, tt.ok)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ExpiryFrom(%q) = %v, ожидалось %v", tt.duration, got, tt.want)
			}
		})
	}
}

func TestValidDuration(t *testing.T) {
	valid := []models.AdDuration{
		models.AdDuration1Day, models.AdDuration3Days, models.AdDuration1Week, models.AdDuration1Month,
	}
	for _, d := range valid {
		if !ValidDuration(d) {
			t.Errorf("ValidDuration(%q) = false, ожидалось true", d)
		}
	}

	invalid := []models.AdDuration{"", "2weeks", "1year", "день"}
	for _, d := range invalid {
		if ValidDuration(d) {
			t.Errorf("ValidDuration(%q) = true, ожидалось false", d)
		}
	}
}
