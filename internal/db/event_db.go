package db

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gorodok/gorodok-api/internal/models"
)

// ListEvents возвращает события афиши, ближайшие первыми
func ListEvents() ([]models.Event, error) {
	ctx, cancel := GetContext()
	defer cancel()

	rows, err := Pool.Query(ctx, `
		SELECT id, title, description, venue, starts_at, ends_at, image_url, created_at
		FROM events
		ORDER BY starts_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса событий: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var endsAt pgtype.Timestamptz
		var imageURL pgtype.Text

		if err := rows.Scan(&event.ID, &event.Title, &event.Description, &event.Venue,
			&event.StartsAt, &endsAt, &imageURL, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования события: %w", err)
		}

		if endsAt.Valid {
			t := endsAt.Time
			event.EndsAt = &t
		}
		if imageURL.Valid {
			event.ImageURL = imageURL.String
		}

		events = append(events, event)
	}

	return events, rows.Err()
}

// CreateEvent добавляет событие в афишу
func CreateEvent(event models.Event) (models.Event, error) {
	ctx, cancel := GetContext()
	defer cancel()

	event.ID = uuid.New()
	err := Pool.QueryRow(ctx, `
		INSERT INTO events (id, title, description, venue, starts_at, ends_at, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, event.ID, event.Title, event.Description, event.Venue,
		event.StartsAt, event.EndsAt, nullIfEmpty(event.ImageURL)).Scan(&event.CreatedAt)

	if err != nil {
		return models.Event{}, fmt.Errorf("ошибка создания события: %w", err)
	}
	return event, nil
}

// DeleteEvent удаляет событие из афиши
func DeleteEvent(id uuid.UUID) error {
	ctx, cancel := GetContext()
	defer cancel()

	if _, err := Pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("ошибка удаления события: %w", err)
	}
	return nil
}

// CountEvents возвращает количество событий в афише
func CountEvents() (int, error) {
	ctx, cancel := GetContext()
	defer cancel()

	var total int
	if err := Pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return 0, fmt.Errorf("ошибка при подсчете событий: %w", err)
	}
	return total, nil
}
