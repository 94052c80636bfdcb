package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-videohub/internal/errors"
	"github.com/pribylovaa/go-videohub/internal/http/dto"
	"github.com/pribylovaa/go-videohub/internal/http/middleware"
	"github.com/pribylovaa/go-videohub/internal/models"
)

// VideoFeed - обработчик ленты видео без параметров пути
// (videos, trending, subscriptions, search, studio, history, liked).
func (h *Handlers) VideoFeed(feed models.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := listInput(r, feed)
		if err != nil {
			apierrors.WriteError(w, r, err)
			return
		}

		h.writeVideos(w, r, in)
	}
}

// Suggestions - похожие видео для {id}.
func (h *Handlers) Suggestions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	in, err := listInput(r, models.FeedSuggestions)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	in.Filter = models.FeedFilter{VideoID: &id}

	h.writeVideos(w, r, in)
}

func (h *Handlers) GetVideo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	v, err := h.svc.VideoByID(r.Context(), id, middleware.ViewerFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.VideoFrom(*v))
}

// UpdateVideo - PATCH /videos/{id}: правка метаданных автором.
func (h *Handlers) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in dto.UpdateVideoRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	v, err := h.svc.UpdateVideo(r.Context(), dto.VideoUpdateFrom(id, middleware.ViewerFrom(r.Context()), in))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.VideoFrom(*v))
}

func (h *Handlers) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.RemoveVideo(r.Context(), middleware.ViewerFrom(r.Context()), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListCategories(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := dto.CategoryList{Items: make([]dto.Category, 0, len(items))}
	for _, c := range items {
		out.Items = append(out.Items, dto.CategoryFrom(c))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) RecordView(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.RecordView(r.Context(), middleware.ViewerFrom(r.Context()), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ReactToVideo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in dto.ReactionRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.svc.ReactToVideo(r.Context(), middleware.ViewerFrom(r.Context()), id, models.ReactionType(in.Type))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeReaction(w, res)
}
