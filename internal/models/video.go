// Package models содержит доменные сущности videohub.
// Эти типы используются слоями ленты, бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Visibility - видимость видео.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Valid сообщает, что значение - известная видимость.
func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

// ReactionType - тип реакции зрителя на видео или комментарий.
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// Valid сообщает, что значение - одна из известных реакций.
func (r ReactionType) Valid() bool {
	return r == ReactionLike || r == ReactionDislike
}

// Author - проекция пользователя, отдаваемая вместе с видео/комментарием.
// SubscriberCount и ViewerSubscribed вычисляются на чтении.
type Author struct {
	ID               uuid.UUID
	Name             string
	ImageURL         string
	SubscriberCount  int64
	ViewerSubscribed bool
}

// Video - доменная сущность видео.
//
// Особенности:
//   - ViewCount/LikeCount/DislikeCount агрегируются при чтении, не хранятся;
//   - ViewerReaction == nil, если зритель анонимен или не реагировал;
//   - AddedAt/ViewedAt/LikedAt заполняются только соответствующими лентами
//     (playlist_videos/history/liked) и служат ключом сортировки.
type Video struct {
	ID          uuid.UUID
	Author      Author
	Title       string
	Description string
	CategoryID  *uuid.UUID
	Visibility  Visibility

	// Поля, заполняемые внешним видеопровайдером; здесь только читаются.
	Status       string
	PlaybackID   string
	ThumbnailURL string
	DurationMS   int64

	CreatedAt time.Time
	UpdatedAt time.Time

	ViewCount      int64
	LikeCount      int64
	DislikeCount   int64
	ViewerReaction *ReactionType

	AddedAt  *time.Time
	ViewedAt *time.Time
	LikedAt  *time.Time
}

// VideoUpdate - правка метаданных видео автором. nil-поле не меняется.
type VideoUpdate struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       *string
	Description *string
	CategoryID  *uuid.UUID
	Visibility  *Visibility
}

// Empty сообщает, что правка ничего не меняет.
func (u VideoUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.CategoryID == nil && u.Visibility == nil
}
