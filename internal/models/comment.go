package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment - комментарий к видео. Дерево двухуровневое:
// ParentID == nil у корневых, у ответов указывает на корневой комментарий.
type Comment struct {
	ID       uuid.UUID
	VideoID  uuid.UUID
	ParentID *uuid.UUID
	Author   Author
	Value    string

	CreatedAt time.Time
	UpdatedAt time.Time

	LikeCount      int64
	DislikeCount   int64
	ReplyCount     int64
	ViewerReaction *ReactionType
}

// NewComment - данные для создания комментария или ответа.
type NewComment struct {
	VideoID  uuid.UUID
	ParentID *uuid.UUID
	UserID   uuid.UUID
	Value    string
}
