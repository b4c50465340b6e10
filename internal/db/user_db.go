package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// User представляет пользователя в системе
type User struct {
	ID          uuid.UUID
	Username    string
	FirstName   string
	LastName    string
	Phone       string
	AvatarURL   string
	TelegramID  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLoginAt time.Time
	IsActive    bool
}

// CreateOrUpdateTelegramUser создает пользователя по данным Telegram или
// обновляет существующего и время последнего входа
func CreateOrUpdateTelegramUser(telegramID int64, username, firstName, lastName, photoURL string) (*User, error) {
	ctx, cancel := GetContext()
	defer cancel()

	tx, err := Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID uuid.UUID
	err = tx.QueryRow(ctx, `
		SELECT id FROM users WHERE telegram_id = $1
	`, telegramID).Scan(&userID)

	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}

	if err == pgx.ErrNoRows {
		err = tx.QueryRow(ctx, `
			INSERT INTO users (telegram_id, username, first_name, last_name, avatar_url, last_login_at)
			VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
			RETURNING id
		`, telegramID, username, firstName, lastName, photoURL).Scan(&userID)

		if err != nil {
			return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
		}
	} else {
		_, err = tx.Exec(ctx, `
			UPDATE users
			SET username = $1, first_name = $2, last_name = $3, avatar_url = $4,
				last_login_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
			WHERE id = $5
		`, username, firstName, lastName, photoURL, userID)

		if err != nil {
			return nil, fmt.Errorf("ошибка при обновлении пользователя: %w", err)
		}
	}

	user, err := getUserByID(tx, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return user, nil
}

// GetUserByID получает пользователя по ID
func GetUserByID(userID uuid.UUID) (*User, error) {
	ctx, cancel := GetContext()
	defer cancel()

	var user User
	var username, firstName, lastName, phone, avatarURL pgtype.Text

	err := Pool.QueryRow(ctx, `
		SELECT id, telegram_id, username, first_name, last_name, phone, avatar_url,
			   created_at, updated_at, last_login_at, is_active
		FROM users WHERE id = $1
	`, userID).Scan(
		&user.ID, &user.TelegramID, &username, &firstName, &lastName,
		&phone, &avatarURL,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt, &user.IsActive,
	)

	if err != nil {
		return nil, err
	}

	// Преобразуем nullable поля
	if username.Valid {
		user.Username = username.String
	}
	if firstName.Valid {
		user.FirstName = firstName.String
	}
	if lastName.Valid {
		user.LastName = lastName.String
	}
	if phone.Valid {
		user.Phone = phone.String
	}
	if avatarURL.Valid {
		user.AvatarURL = avatarURL.String
	}

	return &user, nil
}

// CountUsers возвращает количество зарегистрированных пользователей
func CountUsers() (int, error) {
	ctx, cancel := GetContext()
	defer cancel()

	var total int
	if err := Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, fmt.Errorf("ошибка при подсчете пользователей: %w", err)
	}
	return total, nil
}

// getUserByID получает пользователя по ID внутри транзакции
func getUserByID(tx pgx.Tx, userID uuid.UUID) (*User, error) {
	ctx, cancel := GetContext()
	defer cancel()

	var user User
	var username, firstName, lastName, phone, avatarURL pgtype.Text

	err := tx.QueryRow(ctx, `
		SELECT id, telegram_id, username, first_name, last_name, phone, avatar_url,
			   created_at, updated_at, last_login_at, is_active
		FROM users WHERE id = $1
	`, userID).Scan(
		&user.ID, &user.TelegramID, &username, &firstName, &lastName,
		&phone, &avatarURL,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt, &user.IsActive,
	)

	if err != nil {
		return nil, err
	}

	if username.Valid {
		user.Username = username.String
	}
	if firstName.Valid {
		user.FirstName = firstName.String
	}
	if lastName.Valid {
		user.LastName = lastName.String
	}
	if phone.Valid {
		user.Phone = phone.String
	}
	if avatarURL.Valid {
		user.AvatarURL = avatarURL.String
	}

	return &user, nil
}
