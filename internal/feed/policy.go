// Package feed собирает страницы лент по таблице правил (policies)
// и передаёт выборку сборщику pagination.Fetch.
package feed

import (
	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/internal/pagination"
)

// entity - тип элементов ленты.
type entity uint8

const (
	entityVideo entity = iota + 1
	entityComment
	entityPlaylist
)

func (e entity) String() string {
	switch e {
	case entityVideo:
		return "video"
	case entityComment:
		return "comment"
	case entityPlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}

// policy - правила ленты.
type policy struct {
	entity entity
	kind   pagination.SortKind
	// viewer - лента персональная и без зрителя не строится.
	viewer bool
}

// policies - таблица лент.
//
// trending сортируется по числу просмотров, вычисляемому на чтении. Просмотры, записанные
// между запросами страниц, могут сдвинуть видео через границу курсора: тогда оно
// пропускается или повторяется. Это принятая слабая согласованность ленты.
var policies = map[models.Feed]policy{
	models.FeedVideos:         {entity: entityVideo, kind: pagination.SortTime},
	models.FeedTrending:       {entity: entityVideo, kind: pagination.SortCount},
	models.FeedSearch:         {entity: entityVideo, kind: pagination.SortTime},
	models.FeedSuggestions:    {entity: entityVideo, kind: pagination.SortTime},
	models.FeedSubscriptions:  {entity: entityVideo, kind: pagination.SortTime, viewer: true},
	models.FeedStudio:         {entity: entityVideo, kind: pagination.SortTime, viewer: true},
	models.FeedPlaylistVideos: {entity: entityVideo, kind: pagination.SortTime, viewer: true},
	models.FeedHistory:        {entity: entityVideo, kind: pagination.SortTime, viewer: true},
	models.FeedLiked:          {entity: entityVideo, kind: pagination.SortTime, viewer: true},
	models.FeedPlaylists:      {entity: entityPlaylist, kind: pagination.SortTime, viewer: true},
	models.FeedComments:       {entity: entityComment, kind: pagination.SortTime},
	models.FeedReplies:        {entity: entityComment, kind: pagination.SortTime},
}

// videoKey возвращает функцию ключа сортировки для ленты видео.
// Ключ обязан совпадать с ORDER BY соответствующего запроса хранилища.
func videoKey(f models.Feed) pagination.KeyFunc[models.Video] {
	switch f {
	case models.FeedTrending:
		return func(v models.Video) pagination.Key { return pagination.CountKey(v.ViewCount, v.ID) }
	case models.FeedPlaylistVideos:
		return func(v models.Video) pagination.Key { return pagination.TimeKey(deref(v.AddedAt), v.ID) }
	case models.FeedHistory:
		return func(v models.Video) pagination.Key { return pagination.TimeKey(deref(v.ViewedAt), v.ID) }
	case models.FeedLiked:
		return func(v models.Video) pagination.Key { return pagination.TimeKey(deref(v.LikedAt), v.ID) }
	default:
		return func(v models.Video) pagination.Key { return pagination.TimeKey(v.UpdatedAt, v.ID) }
	}
}

func commentKey(c models.Comment) pagination.Key {
	return pagination.TimeKey(c.CreatedAt, c.ID)
}

func playlistKey(p models.Playlist) pagination.Key {
	return pagination.TimeKey(p.CreatedAt, p.ID)
}
