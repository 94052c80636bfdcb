package models

import "github.com/google/uuid"

// Feed - идентификатор ленты. Каждая лента задаёт сущность, ключ сортировки и фильтры.
type Feed string

const (
	FeedVideos         Feed = "videos"
	FeedSubscriptions  Feed = "subscriptions"
	FeedTrending       Feed = "trending"
	FeedSearch         Feed = "search"
	FeedSuggestions    Feed = "suggestions"
	FeedStudio         Feed = "studio"
	FeedPlaylistVideos Feed = "playlist_videos"
	FeedHistory        Feed = "history"
	FeedLiked          Feed = "liked"
	FeedPlaylists      Feed = "playlists"
	FeedComments       Feed = "comments"
	FeedReplies        Feed = "replies"
)

// FeedFilter - фильтры ленты. Какие поля используются, зависит от ленты:
//   - CategoryID - videos, search;
//   - Query - search (обязателен);
//   - PlaylistID - playlist_videos (обязателен);
//   - VideoID - comments и suggestions (обязателен), playlists (опционален, даёт ContainsVideo);
//   - ParentID - replies (обязателен).
type FeedFilter struct {
	CategoryID *uuid.UUID
	Query      string
	PlaylistID *uuid.UUID
	VideoID    *uuid.UUID
	ParentID   *uuid.UUID
}
