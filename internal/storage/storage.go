// Package storage определяет контракты доступа к БД для videohub.
package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/internal/pagination"

	"github.com/google/uuid"
)

var (
	// ErrNotFound - сущность отсутствует в хранилище (или не принадлежит вызывающему).
	ErrNotFound = errors.New("not found")
	// ErrConflict - конфликт уникальности (повторная подписка и т.п.).
	ErrConflict = errors.New("conflict")
	// ErrNestedReply - попытка ответить на ответ: дерево комментариев двухуровневое.
	ErrNestedReply = errors.New("reply to a reply")
	// ErrSelfSubscription - подписка пользователя на самого себя.
	ErrSelfSubscription = errors.New("self subscription")
	// ErrUnsupportedFeed - лента не обслуживается данным методом.
	ErrUnsupportedFeed = errors.New("unsupported feed")
)

// FeedQuery - запрос одной выборки ленты.
//
// Особенности:
//   - After == nil -> первая страница;
//   - Limit - сколько строк прочитать (сборщик страницы уже добавил +1);
//   - Viewer == uuid.Nil -> анонимный зритель, поля обогащения остаются пустыми.
type FeedQuery struct {
	Feed   models.Feed
	Filter models.FeedFilter
	After  *pagination.Key
	Limit  int
	Viewer uuid.UUID
}

// VideoStorage описывает операции над видео и связанными с ними действиями зрителя.
type VideoStorage interface {
	// ListVideos возвращает видео ленты q.Feed в порядке (sort DESC, id DESC) строго после q.After.
	ListVideos(ctx context.Context, q FeedQuery) ([]models.Video, error)
	// VideoByID возвращает видео без фильтра видимости, обогащённое для viewer.
	// Если записи нет - ErrNotFound.
	VideoByID(ctx context.Context, id, viewer uuid.UUID) (*models.Video, error)
	// RecordView фиксирует просмотр: вставка или обновление updated_at.
	RecordView(ctx context.Context, viewer, videoID uuid.UUID) error
	// ToggleVideoReaction переключает реакцию и возвращает итоговую (nil - реакция снята).
	ToggleVideoReaction(ctx context.Context, viewer, videoID uuid.UUID, t models.ReactionType) (*models.ReactionType, error)
	// UpdateVideo меняет заданные поля видео автора и сдвигает updated_at.
	// Чужое или отсутствующее видео - ErrNotFound, неизвестная категория - ErrNotFound.
	UpdateVideo(ctx context.Context, in models.VideoUpdate) (*models.Video, error)
	// RemoveVideo удаляет видео автора вместе с зависимыми строками; чужое или отсутствующее - ErrNotFound.
	RemoveVideo(ctx context.Context, id, userID uuid.UUID) error
}

// CategoryStorage - справочник категорий.
type CategoryStorage interface {
	// ListCategories возвращает все категории по имени.
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// CommentStorage описывает операции над комментариями.
type CommentStorage interface {
	ListComments(ctx context.Context, q FeedQuery) ([]models.Comment, error)
	CommentByID(ctx context.Context, id, viewer uuid.UUID) (*models.Comment, error)
	// CreateComment создаёт комментарий. Для ответа: родитель должен существовать (иначе ErrNotFound)
	// и быть корневым (иначе ErrNestedReply); VideoID ответа берётся у родителя.
	CreateComment(ctx context.Context, in models.NewComment) (*models.Comment, error)
	// RemoveComment удаляет комментарий владельца; чужой или отсутствующий - ErrNotFound.
	RemoveComment(ctx context.Context, id, userID uuid.UUID) error
	ToggleCommentReaction(ctx context.Context, viewer, commentID uuid.UUID, t models.ReactionType) (*models.ReactionType, error)
}

// PlaylistStorage описывает операции над плейлистами.
type PlaylistStorage interface {
	ListPlaylists(ctx context.Context, q FeedQuery) ([]models.Playlist, error)
	PlaylistByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error)
	CreatePlaylist(ctx context.Context, in models.NewPlaylist) (*models.Playlist, error)
	RemovePlaylist(ctx context.Context, id, userID uuid.UUID) error
	// TogglePlaylistVideo добавляет видео в плейлист владельца или убирает, если оно уже там.
	// Возвращает true, если видео добавлено.
	TogglePlaylistVideo(ctx context.Context, playlistID, userID, videoID uuid.UUID) (bool, error)
}

// SubscriptionStorage описывает подписки зрителя на авторов.
type SubscriptionStorage interface {
	// Subscribe - повторная подписка даёт ErrConflict, на себя - ErrSelfSubscription,
	// несуществующий автор - ErrNotFound.
	Subscribe(ctx context.Context, viewer, creator uuid.UUID) error
	// Unsubscribe - отсутствие подписки даёт ErrNotFound.
	Unsubscribe(ctx context.Context, viewer, creator uuid.UUID) error
}

// Storage задаёт контракт доступа к хранилищу для videohub.
type Storage interface {
	VideoStorage
	CategoryStorage
	CommentStorage
	PlaylistStorage
	SubscriptionStorage
	Ping(ctx context.Context) error
	Close()
}
