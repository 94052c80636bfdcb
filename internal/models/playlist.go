package models

import (
	"time"

	"github.com/google/uuid"
)

// Playlist - плейлист пользователя.
// VideoCount и ThumbnailURL (обложка последнего добавленного видео) вычисляются при чтении;
// ContainsVideo заполняется, только если в запросе указан видео-фильтр.
type Playlist struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	VideoCount    int64
	ThumbnailURL  string
	ContainsVideo *bool
}

// NewPlaylist - данные для создания плейлиста.
type NewPlaylist struct {
	UserID      uuid.UUID
	Name        string
	Description string
}
