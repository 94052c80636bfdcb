package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/internal/pagination"
	"github.com/pribylovaa/go-videohub/internal/storage"

	"github.com/google/uuid"
)

var (
	// ErrNotFound - сущность, на которую ссылается лента, отсутствует или не видна зрителю.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized - персональная лента запрошена без зрителя.
	ErrUnauthorized = errors.New("unauthorized")
)

// Source - источник строк лент. Реализуется storage.Storage.
type Source interface {
	ListVideos(ctx context.Context, q storage.FeedQuery) ([]models.Video, error)
	ListComments(ctx context.Context, q storage.FeedQuery) ([]models.Comment, error)
	ListPlaylists(ctx context.Context, q storage.FeedQuery) ([]models.Playlist, error)
	VideoByID(ctx context.Context, id, viewer uuid.UUID) (*models.Video, error)
	CommentByID(ctx context.Context, id, viewer uuid.UUID) (*models.Comment, error)
	PlaylistByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error)
}

// Request - запрос страницы ленты.
// Cursor == "" -> первая страница; Viewer == uuid.Nil -> анонимный зритель.
type Request struct {
	Feed   models.Feed
	Filter models.FeedFilter
	Cursor string
	Limit  int
	Viewer uuid.UUID
}

// Composer строит страницы лент. Не хранит состояния между запросами.
type Composer struct {
	src Source
}

// New создаёт Composer поверх источника.
func New(src Source) *Composer {
	return &Composer{src: src}
}

// Videos возвращает страницу ленты видео.
func (c *Composer) Videos(ctx context.Context, req Request) (*pagination.Page[models.Video], error) {
	const op = "feed.Videos"

	q, err := c.prepare(ctx, req, entityVideo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page, err := pagination.Fetch(ctx, req.Limit, func(ctx context.Context, n int) ([]models.Video, error) {
		q.Limit = n
		return c.src.ListVideos(ctx, q)
	}, videoKey(req.Feed))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// Comments возвращает страницу комментариев. Лента comments отдаёт корневые
// комментарии видео; replies - ответы на Filter.ParentID.
func (c *Composer) Comments(ctx context.Context, req Request) (*pagination.Page[models.Comment], error) {
	const op = "feed.Comments"

	q, err := c.prepare(ctx, req, entityComment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page, err := pagination.Fetch(ctx, req.Limit, func(ctx context.Context, n int) ([]models.Comment, error) {
		q.Limit = n
		return c.src.ListComments(ctx, q)
	}, commentKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// Playlists возвращает страницу плейлистов зрителя.
func (c *Composer) Playlists(ctx context.Context, req Request) (*pagination.Page[models.Playlist], error) {
	const op = "feed.Playlists"

	q, err := c.prepare(ctx, req, entityPlaylist)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page, err := pagination.Fetch(ctx, req.Limit, func(ctx context.Context, n int) ([]models.Playlist, error) {
		q.Limit = n
		return c.src.ListPlaylists(ctx, q)
	}, playlistKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// prepare проверяет запрос и превращает его в запрос к хранилищу.
// Порядок проверок: лента, зритель, limit, фильтры, курсор, ссылки на сущности.
func (c *Composer) prepare(ctx context.Context, req Request, want entity) (storage.FeedQuery, error) {
	p, ok := policies[req.Feed]
	if !ok || p.entity != want {
		return storage.FeedQuery{}, fmt.Errorf("feed %q is not a %s feed: %w", req.Feed, want, pagination.ErrInvalidArgument)
	}

	if p.viewer && req.Viewer == uuid.Nil {
		return storage.FeedQuery{}, fmt.Errorf("feed %q: %w", req.Feed, ErrUnauthorized)
	}

	if err := pagination.ValidateLimit(req.Limit); err != nil {
		return storage.FeedQuery{}, err
	}

	filter, err := normalizeFilter(req.Feed, req.Filter)
	if err != nil {
		return storage.FeedQuery{}, err
	}

	after, err := pagination.DecodeOptional(req.Cursor, p.kind)
	if err != nil {
		return storage.FeedQuery{}, err
	}

	if err := c.checkRefs(ctx, req.Feed, filter, req.Viewer); err != nil {
		return storage.FeedQuery{}, err
	}

	return storage.FeedQuery{
		Feed:   req.Feed,
		Filter: filter,
		After:  after,
		Viewer: req.Viewer,
	}, nil
}

// normalizeFilter проверяет обязательные фильтры ленты и отбрасывает лишние,
// чтобы хранилище получало только то, что лента понимает.
func normalizeFilter(f models.Feed, in models.FeedFilter) (models.FeedFilter, error) {
	var out models.FeedFilter

	switch f {
	case models.FeedVideos:
		out.CategoryID = in.CategoryID

	case models.FeedSearch:
		out.Query = strings.TrimSpace(in.Query)
		if out.Query == "" {
			return out, fmt.Errorf("search query is required: %w", pagination.ErrInvalidArgument)
		}
		out.CategoryID = in.CategoryID

	case models.FeedSuggestions, models.FeedComments:
		if in.VideoID == nil {
			return out, fmt.Errorf("%s: video id is required: %w", f, pagination.ErrInvalidArgument)
		}
		out.VideoID = in.VideoID

	case models.FeedPlaylistVideos:
		if in.PlaylistID == nil {
			return out, fmt.Errorf("playlist id is required: %w", pagination.ErrInvalidArgument)
		}
		out.PlaylistID = in.PlaylistID

	case models.FeedReplies:
		if in.ParentID == nil {
			return out, fmt.Errorf("parent comment id is required: %w", pagination.ErrInvalidArgument)
		}
		out.ParentID = in.ParentID

	case models.FeedPlaylists:
		out.VideoID = in.VideoID
	}

	return out, nil
}

// checkRefs проверяет сущности, на которые ссылается лента.
func (c *Composer) checkRefs(ctx context.Context, f models.Feed, filter models.FeedFilter, viewer uuid.UUID) error {
	switch f {
	case models.FeedComments, models.FeedSuggestions:
		v, err := c.src.VideoByID(ctx, *filter.VideoID, viewer)
		if err != nil {
			return notFound(err, "video")
		}
		if !Visible(v, viewer) {
			return fmt.Errorf("video: %w", ErrNotFound)
		}

	case models.FeedReplies:
		parent, err := c.src.CommentByID(ctx, *filter.ParentID, viewer)
		if err != nil {
			return notFound(err, "parent comment")
		}
		// Ответы наследуют видимость видео родителя.
		v, err := c.src.VideoByID(ctx, parent.VideoID, viewer)
		if err != nil {
			return notFound(err, "video")
		}
		if !Visible(v, viewer) {
			return fmt.Errorf("video: %w", ErrNotFound)
		}

	case models.FeedPlaylistVideos:
		pl, err := c.src.PlaylistByID(ctx, *filter.PlaylistID)
		if err != nil {
			return notFound(err, "playlist")
		}
		if pl.UserID != viewer {
			return fmt.Errorf("playlist: %w", ErrNotFound)
		}
	}

	return nil
}

// Visible сообщает, может ли зритель видеть видео: публичное - все, приватное - только автор.
func Visible(v *models.Video, viewer uuid.UUID) bool {
	return v.Visibility == models.VisibilityPublic || (viewer != uuid.Nil && v.Author.ID == viewer)
}

func notFound(err error, what string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}

	return fmt.Errorf("%s: %w", what, err)
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}

	return *t
}
