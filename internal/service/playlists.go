package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/pkg/log"

	"github.com/google/uuid"
)

// CreatePlaylistInput - создание плейлиста. Name обязателен после TrimSpace.
type CreatePlaylistInput struct {
	UserID      uuid.UUID
	Name        string
	Description string
}

// CreatePlaylist создаёт пустой плейлист зрителя.
func (s *Service) CreatePlaylist(ctx context.Context, in CreatePlaylistInput) (*models.Playlist, error) {
	const op = "service.CreatePlaylist"

	lg := log.From(ctx).With(slog.String("op", op))

	if in.UserID == uuid.Nil {
		return nil, fail(lg, op, ErrUnauthorized)
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fail(lg, op, fmt.Errorf("playlist name: %w", ErrInvalidArgument))
	}

	p, err := s.storage.CreatePlaylist(ctx, models.NewPlaylist{
		UserID:      in.UserID,
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Info("playlist_created", slog.String("playlist_id", p.ID.String()))
	return p, nil
}

// RemovePlaylist удаляет плейлист зрителя.
func (s *Service) RemovePlaylist(ctx context.Context, viewer, id uuid.UUID) error {
	const op = "service.RemovePlaylist"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("playlist_id", id.String()))

	if viewer == uuid.Nil {
		return fail(lg, op, ErrUnauthorized)
	}

	if err := s.storage.RemovePlaylist(ctx, id, viewer); err != nil {
		return fail(lg, op, err)
	}

	lg.Info("playlist_removed")
	return nil
}

// TogglePlaylistVideo добавляет видео в плейлист зрителя или убирает его.
// Возвращает true, если видео добавлено.
func (s *Service) TogglePlaylistVideo(ctx context.Context, viewer, playlistID, videoID uuid.UUID) (bool, error) {
	const op = "service.TogglePlaylistVideo"

	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.String("playlist_id", playlistID.String()),
		slog.String("video_id", videoID.String()),
	)

	if viewer == uuid.Nil {
		return false, fail(lg, op, ErrUnauthorized)
	}

	if _, err := s.visibleVideo(ctx, videoID, viewer); err != nil {
		return false, fail(lg, op, err)
	}

	added, err := s.storage.TogglePlaylistVideo(ctx, playlistID, viewer, videoID)
	if err != nil {
		return false, fail(lg, op, err)
	}

	lg.Debug("toggle_playlist_video_ok", slog.Bool("added", added))
	return added, nil
}
