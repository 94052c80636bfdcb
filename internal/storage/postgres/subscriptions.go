package postgres

import (
	"context"
	"fmt"

	"github.com/pribylovaa/go-videohub/internal/storage"

	"github.com/google/uuid"
)

// Subscribe подписывает viewer на creator.
// Ограничения схемы дают ErrConflict (повтор), ErrSelfSubscription и ErrNotFound (нет пользователя).
func (s *Storage) Subscribe(ctx context.Context, viewer, creator uuid.UUID) error {
	const op = "storage.postgres.Subscribe"

	_, err := s.db.Exec(ctx,
		`INSERT INTO subscriptions (viewer_id, creator_id) VALUES ($1, $2)`, viewer, creator)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	return nil
}

// Unsubscribe снимает подписку; если её не было - ErrNotFound.
func (s *Storage) Unsubscribe(ctx context.Context, viewer, creator uuid.UUID) error {
	const op = "storage.postgres.Unsubscribe"

	tag, err := s.db.Exec(ctx,
		`DELETE FROM subscriptions WHERE viewer_id = $1 AND creator_id = $2`, viewer, creator)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
