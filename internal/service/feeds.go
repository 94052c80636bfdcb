package service

import (
	"context"
	"log/slog"

	"github.com/pribylovaa/go-videohub/internal/feed"
	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/internal/pagination"
	"github.com/pribylovaa/go-videohub/pkg/log"

	"github.com/google/uuid"
)

// ListInput - параметры страницы ленты.
//
// Особенности:
//   - Limit == 0 -> серверный default (config.LimitsConfig.Default);
//   - Limit вне [1, Max] -> ErrInvalidArgument;
//   - Cursor == "" -> первая страница.
type ListInput struct {
	Feed   models.Feed
	Filter models.FeedFilter
	Cursor string
	Limit  int
	Viewer uuid.UUID
}

// normalizeLimit подставляет default для незаданного limit.
// Верхняя граница - min(cfg.Max, pagination.MaxLimit); за её пределами - ErrInvalidArgument.
func (s *Service) normalizeLimit(limit int) (int, error) {
	if limit == 0 {
		limit = s.limits.Default
	}

	maxLimit := pagination.MaxLimit
	if s.limits.Max > 0 && s.limits.Max < maxLimit {
		maxLimit = s.limits.Max
	}

	if limit < pagination.MinLimit || limit > maxLimit {
		return 0, ErrInvalidArgument
	}

	return limit, nil
}

func (s *Service) request(in ListInput) (feed.Request, error) {
	limit, err := s.normalizeLimit(in.Limit)
	if err != nil {
		return feed.Request{}, err
	}

	return feed.Request{
		Feed:   in.Feed,
		Filter: in.Filter,
		Cursor: in.Cursor,
		Limit:  limit,
		Viewer: in.Viewer,
	}, nil
}

func listLogger(ctx context.Context, op string, in ListInput) *slog.Logger {
	return log.From(ctx).With(
		slog.String("op", op),
		slog.String("feed", string(in.Feed)),
		slog.Int("limit", in.Limit),
		slog.Bool("has_cursor", in.Cursor != ""),
		slog.Bool("anonymous", in.Viewer == uuid.Nil),
	)
}

// ListVideos - страница одной из лент видео.
//
// Поведение/ошибки:
//   - ErrInvalidArgument - неизвестная лента, limit вне диапазона, нет обязательного фильтра;
//   - ErrInvalidCursor - битый курсор или курсор другой ленты;
//   - ErrUnauthorized - персональная лента без зрителя;
//   - ErrNotFound - отсутствует видео/плейлист, на который ссылается лента;
//   - ErrUnavailable - ошибка хранилища.
func (s *Service) ListVideos(ctx context.Context, in ListInput) (*pagination.Page[models.Video], error) {
	const op = "service.ListVideos"

	lg := listLogger(ctx, op, in)

	req, err := s.request(in)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	page, err := s.feeds.Videos(ctx, req)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	s.metrics.ObservePage(string(in.Feed), len(page.Items), page.HasMore)
	lg.Debug("list_videos_ok", slog.Int("items", len(page.Items)), slog.Bool("has_more", page.HasMore))

	return page, nil
}

// ListComments - страница корневых комментариев видео или ответов на комментарий.
func (s *Service) ListComments(ctx context.Context, in ListInput) (*pagination.Page[models.Comment], error) {
	const op = "service.ListComments"

	lg := listLogger(ctx, op, in)

	req, err := s.request(in)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	page, err := s.feeds.Comments(ctx, req)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	s.metrics.ObservePage(string(in.Feed), len(page.Items), page.HasMore)
	lg.Debug("list_comments_ok", slog.Int("items", len(page.Items)), slog.Bool("has_more", page.HasMore))

	return page, nil
}

// ListPlaylists - страница плейлистов зрителя.
func (s *Service) ListPlaylists(ctx context.Context, in ListInput) (*pagination.Page[models.Playlist], error) {
	const op = "service.ListPlaylists"

	lg := listLogger(ctx, op, in)

	req, err := s.request(in)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	page, err := s.feeds.Playlists(ctx, req)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	s.metrics.ObservePage(string(in.Feed), len(page.Items), page.HasMore)
	lg.Debug("list_playlists_ok", slog.Int("items", len(page.Items)), slog.Bool("has_more", page.HasMore))

	return page, nil
}
