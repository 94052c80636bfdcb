package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	apierrors "github.com/pribylovaa/go-videohub/internal/errors"
	"github.com/pribylovaa/go-videohub/internal/http/dto"
	"github.com/pribylovaa/go-videohub/internal/http/middleware"
	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/internal/pagination"
	"github.com/pribylovaa/go-videohub/internal/service"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Service - операции бизнес-слоя, которые использует HTTP API. Реализуется *service.Service.
type Service interface {
	ListVideos(ctx context.Context, in service.ListInput) (*pagination.Page[models.Video], error)
	ListComments(ctx context.Context, in service.ListInput) (*pagination.Page[models.Comment], error)
	ListPlaylists(ctx context.Context, in service.ListInput) (*pagination.Page[models.Playlist], error)

	VideoByID(ctx context.Context, id, viewer uuid.UUID) (*models.Video, error)
	RecordView(ctx context.Context, viewer, videoID uuid.UUID) error
	ReactToVideo(ctx context.Context, viewer, videoID uuid.UUID, t models.ReactionType) (*models.ReactionType, error)
	UpdateVideo(ctx context.Context, in models.VideoUpdate) (*models.Video, error)
	RemoveVideo(ctx context.Context, viewer, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateComment(ctx context.Context, in service.CreateCommentInput) (*models.Comment, error)
	RemoveComment(ctx context.Context, viewer, id uuid.UUID) error
	ReactToComment(ctx context.Context, viewer, commentID uuid.UUID, t models.ReactionType) (*models.ReactionType, error)

	CreatePlaylist(ctx context.Context, in service.CreatePlaylistInput) (*models.Playlist, error)
	RemovePlaylist(ctx context.Context, viewer, id uuid.UUID) error
	TogglePlaylistVideo(ctx context.Context, viewer, playlistID, videoID uuid.UUID) (bool, error)

	Subscribe(ctx context.Context, viewer, creator uuid.UUID) error
	Unsubscribe(ctx context.Context, viewer, creator uuid.UUID) error
}

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	svc Service
}

func New(svc Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON - ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict - строгий JSON-декодер с валидацией DTO: неизвестные поля запрещены.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return invalidArgument(err)
	}

	if err := dto.Validate(value); err != nil {
		return invalidArgument(err)
	}

	return nil
}

// invalidArgument - локальная ошибка разбора запроса -> service.ErrInvalidArgument.
func invalidArgument(err error) error {
	return fmt.Errorf("%w: %w", service.ErrInvalidArgument, err)
}

// pathID читает uuid из параметра маршрута.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, invalidArgument(fmt.Errorf("path %s: %w", name, err))
	}

	return id, nil
}

// optionalID разбирает уже провалидированный uuid; "" -> nil.
func optionalID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}

	return &id
}

// listInput разбирает общие параметры ленты: cursor, limit, category_id, q, video_id.
// Отсутствующий limit -> 0 (серверный default), явный limit обязан быть в [1, 100].
func listInput(r *http.Request, feed models.Feed) (service.ListInput, error) {
	q := r.URL.Query()

	lq := dto.ListQuery{
		Cursor:     q.Get("cursor"),
		CategoryID: q.Get("category_id"),
		Query:      q.Get("q"),
		VideoID:    q.Get("video_id"),
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < pagination.MinLimit {
			return service.ListInput{}, invalidArgument(fmt.Errorf("limit %q", v))
		}
		lq.Limit = n
	}

	if err := dto.Validate(lq); err != nil {
		return service.ListInput{}, invalidArgument(err)
	}

	return service.ListInput{
		Feed:   feed,
		Cursor: lq.Cursor,
		Limit:  lq.Limit,
		Viewer: middleware.ViewerFrom(r.Context()),
		Filter: models.FeedFilter{
			CategoryID: optionalID(lq.CategoryID),
			Query:      lq.Query,
			VideoID:    optionalID(lq.VideoID),
		},
	}, nil
}

func (h *Handlers) writeVideos(w http.ResponseWriter, r *http.Request, in service.ListInput) {
	page, err := h.svc.ListVideos(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PageFrom(page, dto.VideoFrom))
}

func (h *Handlers) writeComments(w http.ResponseWriter, r *http.Request, in service.ListInput) {
	page, err := h.svc.ListComments(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PageFrom(page, dto.CommentFrom))
}

func writeReaction(w http.ResponseWriter, res *models.ReactionType) {
	writeJSON(w, http.StatusOK, dto.ReactionResponse{Reaction: dto.ReactionFrom(res)})
}
