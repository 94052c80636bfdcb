package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-videohub/pkg/log"

	"github.com/google/uuid"
)

// Subscribe подписывает зрителя на автора.
// Подписка на себя - ErrInvalidArgument, повторная - ErrConflict, нет автора - ErrNotFound.
func (s *Service) Subscribe(ctx context.Context, viewer, creator uuid.UUID) error {
	const op = "service.Subscribe"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("creator_id", creator.String()))

	if viewer == uuid.Nil {
		return fail(lg, op, ErrUnauthorized)
	}
	if viewer == creator {
		return fail(lg, op, fmt.Errorf("self subscription: %w", ErrInvalidArgument))
	}

	if err := s.storage.Subscribe(ctx, viewer, creator); err != nil {
		return fail(lg, op, err)
	}

	lg.Info("subscribed")
	return nil
}

// Unsubscribe снимает подписку зрителя; если её не было - ErrNotFound.
func (s *Service) Unsubscribe(ctx context.Context, viewer, creator uuid.UUID) error {
	const op = "service.Unsubscribe"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("creator_id", creator.String()))

	if viewer == uuid.Nil {
		return fail(lg, op, ErrUnauthorized)
	}

	if err := s.storage.Unsubscribe(ctx, viewer, creator); err != nil {
		return fail(lg, op, err)
	}

	lg.Info("unsubscribed")
	return nil
}
