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

// ListPlaylists - плейлисты зрителя; ?video_id= добавляет contains_video.
func (h *Handlers) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	in, err := listInput(r, models.FeedPlaylists)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.svc.ListPlaylists(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PageFrom(page, dto.PlaylistFrom))
}

// ListPlaylistVideos - видео плейлиста {id} в порядке добавления (новые первыми).
func (h *Handlers) ListPlaylistVideos(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	in, err := listInput(r, models.FeedPlaylistVideos)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	in.Filter = models.FeedFilter{PlaylistID: &id}

	h.writeVideos(w, r, in)
}

func (h *Handlers) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var in dto.CreatePlaylistRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.svc.CreatePlaylist(r.Context(), service.CreatePlaylistInput{
		UserID:      middleware.ViewerFrom(r.Context()),
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PlaylistFrom(*p))
}

func (h *Handlers) RemovePlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.RemovePlaylist(r.Context(), middleware.ViewerFrom(r.Context()), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TogglePlaylistVideo добавляет видео в плейлист {id} или убирает его оттуда.
func (h *Handlers) TogglePlaylistVideo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in dto.TogglePlaylistVideoRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	added, err := h.svc.TogglePlaylistVideo(r.Context(), middleware.ViewerFrom(r.Context()), id, uuid.MustParse(in.VideoID))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TogglePlaylistVideoResponse{Added: added})
}
