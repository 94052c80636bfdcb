// Package dto - JSON-представления публичного API и их валидация.
package dto

import "time"

// Page - страница ленты. NextCursor == null, если страница последняя.
type Page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor"`
}

type Author struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ImageURL         string `json:"image_url"`
	SubscriberCount  int64  `json:"subscriber_count"`
	ViewerSubscribed bool   `json:"viewer_subscribed"`
}

type Video struct {
	ID           string  `json:"id"`
	Author       Author  `json:"author"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	CategoryID   *string `json:"category_id"`
	Visibility   string  `json:"visibility"`
	Status       string  `json:"status"`
	PlaybackID   string  `json:"playback_id"`
	ThumbnailURL string  `json:"thumbnail_url"`
	DurationMS   int64   `json:"duration_ms"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ViewCount      int64   `json:"view_count"`
	LikeCount      int64   `json:"like_count"`
	DislikeCount   int64   `json:"dislike_count"`
	ViewerReaction *string `json:"viewer_reaction"`

	// Только для лент playlist_videos / history / liked.
	AddedAt  *time.Time `json:"added_at,omitempty"`
	ViewedAt *time.Time `json:"viewed_at,omitempty"`
	LikedAt  *time.Time `json:"liked_at,omitempty"`
}

type Comment struct {
	ID             string    `json:"id"`
	VideoID        string    `json:"video_id"`
	ParentID       *string   `json:"parent_id"` // null - корень
	Author         Author    `json:"author"`
	Value          string    `json:"value"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	LikeCount      int64     `json:"like_count"`
	DislikeCount   int64     `json:"dislike_count"`
	ReplyCount     int64     `json:"reply_count"`
	ViewerReaction *string   `json:"viewer_reaction"`
}

type Playlist struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	VideoCount    int64     `json:"video_count"`
	ThumbnailURL  string    `json:"thumbnail_url"`
	ContainsVideo *bool     `json:"contains_video,omitempty"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryList - справочник целиком, без курсора.
type CategoryList struct {
	Items []Category `json:"items"`
}

// ListQuery - общие query-параметры лент.
type ListQuery struct {
	Cursor     string `validate:"omitempty,max=512"`
	Limit      int    `validate:"omitempty,min=1,max=100"`
	CategoryID string `validate:"omitempty,uuid"`
	Query      string `validate:"omitempty,max=200"`
	VideoID    string `validate:"omitempty,uuid"`
}

// CreateCommentRequest - корневой комментарий (video_id) или ответ (parent_id).
type CreateCommentRequest struct {
	VideoID  string `json:"video_id"  validate:"omitempty,uuid"`
	ParentID string `json:"parent_id" validate:"omitempty,uuid"`
	Value    string `json:"value"     validate:"required,max=5000"`
}

type ReactionRequest struct {
	Type string `json:"type" validate:"required,oneof=like dislike"`
}

// ReactionResponse - итоговая реакция зрителя; null - реакция снята.
type ReactionResponse struct {
	Reaction *string `json:"reaction"`
}

type CreatePlaylistRequest struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
}

// UpdateVideoRequest - частичная правка видео: отсутствующее поле не меняется.
type UpdateVideoRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid"`
	Visibility  *string `json:"visibility"  validate:"omitempty,oneof=private public"`
}

type TogglePlaylistVideoRequest struct {
	VideoID string `json:"video_id" validate:"required,uuid"`
}

type TogglePlaylistVideoResponse struct {
	Added bool `json:"added"`
}

type SubscribeRequest struct {
	CreatorID string `json:"creator_id" validate:"required,uuid"`
}
