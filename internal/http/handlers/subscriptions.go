package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-videohub/internal/errors"
	"github.com/pribylovaa/go-videohub/internal/http/dto"
	"github.com/pribylovaa/go-videohub/internal/http/middleware"

	"github.com/google/uuid"
)

func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	var in dto.SubscribeRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.Subscribe(r.Context(), middleware.ViewerFrom(r.Context()), uuid.MustParse(in.CreatorID)); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	creator, err := pathID(r, "creator_id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.Unsubscribe(r.Context(), middleware.ViewerFrom(r.Context()), creator); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
