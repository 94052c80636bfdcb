package service

import (
	"context"
	"log/slog"

	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/pkg/log"
)

// ListCategories возвращает справочник категорий; доступен анонимно.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	const op = "service.ListCategories"

	lg := log.From(ctx).With(slog.String("op", op))

	items, err := s.storage.ListCategories(ctx)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return items, nil
}
