package dto

import (
	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/internal/pagination"

	"github.com/google/uuid"
)

// PageFrom переводит страницу ленты в DTO, конвертируя каждый элемент.
func PageFrom[T, D any](p *pagination.Page[T], conv func(T) D) Page[D] {
	out := Page[D]{Items: make([]D, 0, len(p.Items))}
	for _, it := range p.Items {
		out.Items = append(out.Items, conv(it))
	}

	if p.HasMore {
		next := p.NextCursor
		out.NextCursor = &next
	}

	return out
}

func AuthorFrom(a models.Author) Author {
	return Author{
		ID:               a.ID.String(),
		Name:             a.Name,
		ImageURL:         a.ImageURL,
		SubscriberCount:  a.SubscriberCount,
		ViewerSubscribed: a.ViewerSubscribed,
	}
}

func VideoFrom(v models.Video) Video {
	return Video{
		ID:             v.ID.String(),
		Author:         AuthorFrom(v.Author),
		Title:          v.Title,
		Description:    v.Description,
		CategoryID:     idString(v.CategoryID),
		Visibility:     string(v.Visibility),
		Status:         v.Status,
		PlaybackID:     v.PlaybackID,
		ThumbnailURL:   v.ThumbnailURL,
		DurationMS:     v.DurationMS,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		ViewCount:      v.ViewCount,
		LikeCount:      v.LikeCount,
		DislikeCount:   v.DislikeCount,
		ViewerReaction: ReactionFrom(v.ViewerReaction),
		AddedAt:        v.AddedAt,
		ViewedAt:       v.ViewedAt,
		LikedAt:        v.LikedAt,
	}
}

func CommentFrom(c models.Comment) Comment {
	return Comment{
		ID:             c.ID.String(),
		VideoID:        c.VideoID.String(),
		ParentID:       idString(c.ParentID),
		Author:         AuthorFrom(c.Author),
		Value:          c.Value,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		LikeCount:      c.LikeCount,
		DislikeCount:   c.DislikeCount,
		ReplyCount:     c.ReplyCount,
		ViewerReaction: ReactionFrom(c.ViewerReaction),
	}
}

func PlaylistFrom(p models.Playlist) Playlist {
	return Playlist{
		ID:            p.ID.String(),
		UserID:        p.UserID.String(),
		Name:          p.Name,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		VideoCount:    p.VideoCount,
		ThumbnailURL:  p.ThumbnailURL,
		ContainsVideo: p.ContainsVideo,
	}
}

func CategoryFrom(c models.Category) Category {
	return Category{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// VideoUpdateFrom переводит запрос правки в доменную модель. Запрос уже провалидирован.
func VideoUpdateFrom(id, userID uuid.UUID, req UpdateVideoRequest) models.VideoUpdate {
	u := models.VideoUpdate{ID: id, UserID: userID, Title: req.Title, Description: req.Description}
	if req.CategoryID != nil {
		cid := uuid.MustParse(*req.CategoryID)
		u.CategoryID = &cid
	}
	if req.Visibility != nil {
		vis := models.Visibility(*req.Visibility)
		u.Visibility = &vis
	}
	return u
}

// ReactionFrom: nil -> null.
func ReactionFrom(r *models.ReactionType) *string {
	if r == nil {
		return nil
	}
	s := string(*r)
	return &s
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
