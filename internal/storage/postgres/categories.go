package postgres

import (
	"context"
	"fmt"

	"github.com/pribylovaa/go-videohub/internal/models"
)

// ListCategories возвращает справочник категорий. Справочник мал, поэтому без пагинации.
func (s *Storage) ListCategories(ctx context.Context) ([]models.Category, error) {
	const op = "storage.postgres.ListCategories"

	rows, err := s.db.Query(ctx, `SELECT id, name, description, created_at FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		items = append(items, c)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return items, nil
}
