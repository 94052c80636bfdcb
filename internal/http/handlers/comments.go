package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-videohub/internal/errors"
	"github.com/pribylovaa/go-videohub/internal/http/dto"
	"github.com/pribylovaa/go-videohub/internal/http/middleware"
	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/internal/service"

	"github.com/google/uuid"
)

// ListComments - корневые комментарии видео {id}.
func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	in, err := listInput(r, models.FeedComments)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	in.Filter = models.FeedFilter{VideoID: &id}

	h.writeComments(w, r, in)
}

// ListReplies - ответы на комментарий {id}.
func (h *Handlers) ListReplies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	in, err := listInput(r, models.FeedReplies)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	in.Filter = models.FeedFilter{ParentID: &id}

	h.writeComments(w, r, in)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	var in dto.CreateCommentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var videoID uuid.UUID
	if id := optionalID(in.VideoID); id != nil {
		videoID = *id
	}

	c, err := h.svc.CreateComment(r.Context(), service.CreateCommentInput{
		VideoID:  videoID,
		ParentID: optionalID(in.ParentID),
		UserID:   middleware.ViewerFrom(r.Context()),
		Value:    in.Value,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CommentFrom(*c))
}

func (h *Handlers) RemoveComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.RemoveComment(r.Context(), middleware.ViewerFrom(r.Context()), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ReactToComment(w http.ResponseWriter, r *http.Request) {
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

	res, err := h.svc.ReactToComment(r.Context(), middleware.ViewerFrom(r.Context()), id, models.ReactionType(in.Type))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeReaction(w, res)
}
