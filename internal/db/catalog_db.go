package db

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gorodok/gorodok-api/internal/models"
)

// ListCategories возвращает категории каталога, опционально по разделу
func ListCategories(section models.CategorySection) ([]models.Category, error) {
	ctx, cancel := GetContext()
	defer cancel()

	query := `
		SELECT id, section, name, name_local, position
		FROM categories
		ORDER BY position ASC
	`
	args := []any{}
	if section != "" {
		query = `
			SELECT id, section, name, name_local, position
			FROM categories
			WHERE section = $1
			ORDER BY position ASC
		`
		args = append(args, section)
	}

	rows, err := Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса категорий: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Section, &category.Name, &category.NameLocal, &category.Position); err != nil {
			return nil, fmt.Errorf("ошибка сканирования категории: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// ListSubCategories возвращает подкатегории указанной категории
func ListSubCategories(categoryID uuid.UUID) ([]models.SubCategory, error) {
	ctx, cancel := GetContext()
	defer cancel()

	rows, err := Pool.Query(ctx, `
		SELECT id, category_id, name, name_local, position
		FROM sub_categories
		WHERE category_id = $1
		ORDER BY position ASC
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса подкатегорий: %w", err)
	}
	defer rows.Close()

	var subCategories []models.SubCategory
	for rows.Next() {
		var sub models.SubCategory
		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.NameLocal, &sub.Position); err != nil {
			return nil, fmt.Errorf("ошибка сканирования подкатегории: %w", err)
		}
		subCategories = append(subCategories, sub)
	}

	return subCategories, rows.Err()
}
