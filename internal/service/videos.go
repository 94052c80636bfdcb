package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pribylovaa/go-videohub/internal/feed"
	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/pkg/log"

	"github.com/google/uuid"
)

// VideoByID - одно видео с обогащением зрителя.
// Приватное видео видно только автору; остальным - ErrNotFound.
func (s *Service) VideoByID(ctx context.Context, id, viewer uuid.UUID) (*models.Video, error) {
	const op = "service.VideoByID"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("video_id", id.String()))

	v, err := s.visibleVideo(ctx, id, viewer)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return v, nil
}

// RecordView фиксирует просмотр видео зрителем.
func (s *Service) RecordView(ctx context.Context, viewer, videoID uuid.UUID) error {
	const op = "service.RecordView"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("video_id", videoID.String()))

	if viewer == uuid.Nil {
		return fail(lg, op, ErrUnauthorized)
	}

	if _, err := s.visibleVideo(ctx, videoID, viewer); err != nil {
		return fail(lg, op, err)
	}

	if err := s.storage.RecordView(ctx, viewer, videoID); err != nil {
		return fail(lg, op, err)
	}

	lg.Debug("record_view_ok")
	return nil
}

// ReactToVideo переключает реакцию зрителя на видео и возвращает итоговую (nil - снята).
func (s *Service) ReactToVideo(ctx context.Context, viewer, videoID uuid.UUID, t models.ReactionType) (*models.ReactionType, error) {
	const op = "service.ReactToVideo"

	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.String("video_id", videoID.String()),
		slog.String("type", string(t)),
	)

	if viewer == uuid.Nil {
		return nil, fail(lg, op, ErrUnauthorized)
	}
	if !t.Valid() {
		return nil, fail(lg, op, fmt.Errorf("reaction %q: %w", t, ErrInvalidArgument))
	}

	if _, err := s.visibleVideo(ctx, videoID, viewer); err != nil {
		return nil, fail(lg, op, err)
	}

	res, err := s.storage.ToggleVideoReaction(ctx, viewer, videoID, t)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Debug("react_video_ok", slog.Bool("removed", res == nil))
	return res, nil
}

// Пределы метаданных видео в символах.
const (
	MaxVideoTitleLength       = 100
	MaxVideoDescriptionLength = 5000
)

// UpdateVideo - правка метаданных видео автором.
//
// Поведение/ошибки:
//   - ErrUnauthorized - нет зрителя;
//   - ErrInvalidArgument - пустая правка, пустой или длинный title, неизвестная видимость;
//   - ErrNotFound - видео нет, оно чужое или категория неизвестна.
func (s *Service) UpdateVideo(ctx context.Context, in models.VideoUpdate) (*models.Video, error) {
	const op = "service.UpdateVideo"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("video_id", in.ID.String()))

	if in.UserID == uuid.Nil {
		return nil, fail(lg, op, ErrUnauthorized)
	}
	if in.Empty() {
		return nil, fail(lg, op, fmt.Errorf("nothing to update: %w", ErrInvalidArgument))
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" || utf8.RuneCountInString(title) > MaxVideoTitleLength {
			return nil, fail(lg, op, fmt.Errorf("title: %w", ErrInvalidArgument))
		}
		in.Title = &title
	}
	if in.Description != nil && utf8.RuneCountInString(*in.Description) > MaxVideoDescriptionLength {
		return nil, fail(lg, op, fmt.Errorf("description: %w", ErrInvalidArgument))
	}
	if in.Visibility != nil && !in.Visibility.Valid() {
		return nil, fail(lg, op, fmt.Errorf("visibility %q: %w", *in.Visibility, ErrInvalidArgument))
	}

	v, err := s.storage.UpdateVideo(ctx, in)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Info("video_updated", slog.String("visibility", string(v.Visibility)))
	return v, nil
}

// RemoveVideo удаляет видео автора. Чужое или отсутствующее - ErrNotFound.
func (s *Service) RemoveVideo(ctx context.Context, viewer, id uuid.UUID) error {
	const op = "service.RemoveVideo"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("video_id", id.String()))

	if viewer == uuid.Nil {
		return fail(lg, op, ErrUnauthorized)
	}

	if err := s.storage.RemoveVideo(ctx, id, viewer); err != nil {
		return fail(lg, op, err)
	}

	lg.Info("video_removed")
	return nil
}

// visibleVideo читает видео и проверяет, что зритель может его видеть.
func (s *Service) visibleVideo(ctx context.Context, id, viewer uuid.UUID) (*models.Video, error) {
	v, err := s.storage.VideoByID(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	if !feed.Visible(v, viewer) {
		return nil, fmt.Errorf("video %s: %w", id, ErrNotFound)
	}

	return v, nil
}
