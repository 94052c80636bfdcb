package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/internal/pagination"
	"github.com/pribylovaa/go-videohub/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// videoColumns - проекция видео с агрегатами и обогащением зрителя.
// Последняя колонка feed_at - ключ сортировки лент, где он берётся не из videos.
const videoColumns = `
	v.id, v.title, v.description, v.category_id, v.visibility,
	v.status, v.playback_id, v.thumbnail_url, v.duration_ms,
	v.created_at, v.updated_at,
	u.id, u.name, u.image_url, us.subscriber_count, us.viewer_subscribed,
	vs.view_count, vs.like_count, vs.dislike_count, vr.type`

// videoJoins возвращает обязательные соединения: автор, агрегаты и реакция зрителя.
// viewer - плейсхолдер аргумента зрителя.
func videoJoins(viewer string) string {
	return `
	FROM videos v
	JOIN users u ON u.id = v.user_id
	CROSS JOIN LATERAL (
		SELECT
			(SELECT count(*) FROM subscriptions s WHERE s.creator_id = u.id) AS subscriber_count,
			EXISTS (SELECT 1 FROM subscriptions s WHERE s.creator_id = u.id AND s.viewer_id = ` + viewer + `) AS viewer_subscribed
	) us
	CROSS JOIN LATERAL (
		SELECT
			(SELECT count(*) FROM video_views vv WHERE vv.video_id = v.id) AS view_count,
			(SELECT count(*) FROM video_reactions r WHERE r.video_id = v.id AND r.type = 'like') AS like_count,
			(SELECT count(*) FROM video_reactions r WHERE r.video_id = v.id AND r.type = 'dislike') AS dislike_count
	) vs
	LEFT JOIN video_reactions vr ON vr.video_id = v.id AND vr.user_id = ` + viewer
}

const publicOnly = "v.visibility = 'public'"

// videoFeed - SQL-части конкретной ленты видео.
type videoFeed struct {
	order  pagination.Order
	feedAt string
	joins  string
}

// videoOrders - порядок лент видео. Ключи сортировки должны совпадать с теми,
// из которых лента строит курсор (см. internal/feed).
var videoOrders = map[models.Feed]pagination.Order{
	models.FeedVideos:         {Sort: "v.updated_at", ID: "v.id"},
	models.FeedSubscriptions:  {Sort: "v.updated_at", ID: "v.id"},
	models.FeedSearch:         {Sort: "v.updated_at", ID: "v.id"},
	models.FeedSuggestions:    {Sort: "v.updated_at", ID: "v.id"},
	models.FeedStudio:         {Sort: "v.updated_at", ID: "v.id"},
	models.FeedTrending:       {Sort: "vs.view_count", ID: "v.id"},
	models.FeedPlaylistVideos: {Sort: "pv.created_at", ID: "v.id"},
	models.FeedHistory:        {Sort: "h.updated_at", ID: "v.id"},
	models.FeedLiked:          {Sort: "lr.updated_at", ID: "v.id"},
}

// buildVideoFeed добавляет в b фильтры ленты и возвращает её SQL-части.
// viewer - плейсхолдер зрителя, уже зарегистрированный в b.
func buildVideoFeed(b *pagination.Builder, q storage.FeedQuery, viewer string) (videoFeed, error) {
	order, ok := videoOrders[q.Feed]
	if !ok {
		return videoFeed{}, storage.ErrUnsupportedFeed
	}

	f := videoFeed{order: order, feedAt: "NULL::timestamptz"}

	switch q.Feed {
	case models.FeedVideos:
		b.Where(publicOnly)
		if q.Filter.CategoryID != nil {
			b.Where("v.category_id = " + b.Arg(*q.Filter.CategoryID))
		}

	case models.FeedTrending:
		b.Where(publicOnly)

	case models.FeedSubscriptions:
		b.Where(publicOnly)
		b.Where("EXISTS (SELECT 1 FROM subscriptions s WHERE s.viewer_id = " + viewer + " AND s.creator_id = v.user_id)")

	case models.FeedSearch:
		b.Where(publicOnly)
		b.Where(`v.title ILIKE ` + b.Arg("%"+escapeLike(q.Filter.Query)+"%") + ` ESCAPE '\'`)
		if q.Filter.CategoryID != nil {
			b.Where("v.category_id = " + b.Arg(*q.Filter.CategoryID))
		}

	case models.FeedSuggestions:
		if q.Filter.VideoID == nil {
			return videoFeed{}, storage.ErrUnsupportedFeed
		}
		src := b.Arg(*q.Filter.VideoID)
		f.joins = "JOIN videos src ON src.id = " + src
		b.Where(publicOnly)
		b.Where("v.id <> src.id")
		b.Where("(src.category_id IS NULL OR v.category_id = src.category_id)")

	case models.FeedStudio:
		b.Where("v.user_id = " + viewer)

	case models.FeedPlaylistVideos:
		if q.Filter.PlaylistID == nil {
			return videoFeed{}, storage.ErrUnsupportedFeed
		}
		f.joins = "JOIN playlist_videos pv ON pv.video_id = v.id AND pv.playlist_id = " + b.Arg(*q.Filter.PlaylistID) +
			" JOIN playlists p ON p.id = pv.playlist_id AND p.user_id = " + viewer
		f.feedAt = "pv.created_at"
		b.Where(publicOnly)

	case models.FeedHistory:
		f.joins = "JOIN video_views h ON h.video_id = v.id AND h.user_id = " + viewer
		f.feedAt = "h.updated_at"
		b.Where(publicOnly)

	case models.FeedLiked:
		f.joins = "JOIN video_reactions lr ON lr.video_id = v.id AND lr.user_id = " + viewer + " AND lr.type = 'like'"
		f.feedAt = "lr.updated_at"
		b.Where(publicOnly)
	}

	return f, nil
}

// ListVideos возвращает видео ленты q.Feed строго после q.After
// в порядке (sort DESC, id DESC), не более q.Limit строк.
func (s *Storage) ListVideos(ctx context.Context, q storage.FeedQuery) ([]models.Video, error) {
	const op = "storage.postgres.ListVideos"

	var b pagination.Builder
	viewer := b.Arg(viewerArg(q.Viewer))

	f, err := buildVideoFeed(&b, q, viewer)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, q.Feed, err)
	}

	b.Seek(f.order, q.After)
	limit := b.Limit(q.Limit)

	query := "SELECT " + videoColumns + ", " + f.feedAt + " AS feed_at" +
		videoJoins(viewer) + "\n\t" + f.joins + "\n\t" +
		b.Clause() + "\n\t" + f.order.SQL() + "\n\t" + limit

	rows, err := s.db.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]models.Video, 0, q.Limit)
	for rows.Next() {
		var feedAt *time.Time
		video, scanErr := scanVideo(rows, &feedAt)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		if feedAt != nil {
			at := feedAt.UTC()
			switch q.Feed {
			case models.FeedPlaylistVideos:
				video.AddedAt = &at
			case models.FeedHistory:
				video.ViewedAt = &at
			case models.FeedLiked:
				video.LikedAt = &at
			}
		}

		items = append(items, video)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return items, nil
}

// VideoByID возвращает видео по id без фильтра видимости; проверка доступа - забота вызывающего.
func (s *Storage) VideoByID(ctx context.Context, id, viewer uuid.UUID) (*models.Video, error) {
	const op = "storage.postgres.VideoByID"

	var b pagination.Builder
	ph := b.Arg(viewerArg(viewer))
	b.Where("v.id = " + b.Arg(id))

	query := "SELECT " + videoColumns + ", NULL::timestamptz AS feed_at" + videoJoins(ph) + "\n\t" + b.Clause()

	var feedAt *time.Time
	video, err := scanVideo(s.db.QueryRow(ctx, query, b.Args()...), &feedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &video, nil
}

// RecordView фиксирует просмотр зрителя; повторный просмотр обновляет updated_at,
// что поднимает видео в начало ленты history.
func (s *Storage) RecordView(ctx context.Context, viewer, videoID uuid.UUID) error {
	const op = "storage.postgres.RecordView"

	_, err := s.db.Exec(ctx, `
	INSERT INTO video_views (user_id, video_id)
	VALUES ($1, $2)
	ON CONFLICT (user_id, video_id) DO UPDATE SET updated_at = now()
	`, viewer, videoID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	return nil
}

// UpdateVideo меняет переданные поля видео автора; updated_at сдвигается всегда,
// поэтому видео поднимается в лентах с ключом updated_at.
func (s *Storage) UpdateVideo(ctx context.Context, in models.VideoUpdate) (*models.Video, error) {
	const op = "storage.postgres.UpdateVideo"

	var visibility *string
	if in.Visibility != nil {
		v := string(*in.Visibility)
		visibility = &v
	}

	var id uuid.UUID
	err := s.db.QueryRow(ctx, `
	UPDATE videos SET
		title       = COALESCE($3, title),
		description = COALESCE($4, description),
		category_id = COALESCE($5, category_id),
		visibility  = COALESCE($6, visibility),
		updated_at  = now()
	WHERE id = $1 AND user_id = $2
	RETURNING id
	`, in.ID, in.UserID, in.Title, in.Description, in.CategoryID, visibility).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	video, err := s.VideoByID(ctx, id, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return video, nil
}

// RemoveVideo удаляет видео автора. Просмотры, реакции, комментарии
// и элементы плейлистов удаляются каскадом.
func (s *Storage) RemoveVideo(ctx context.Context, id, userID uuid.UUID) error {
	const op = "storage.postgres.RemoveVideo"

	tag, err := s.db.Exec(ctx, `DELETE FROM videos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ToggleVideoReaction переключает реакцию зрителя на видео.
func (s *Storage) ToggleVideoReaction(ctx context.Context, viewer, videoID uuid.UUID, t models.ReactionType) (*models.ReactionType, error) {
	const op = "storage.postgres.ToggleVideoReaction"

	res, err := s.toggleReaction(ctx, videoReactions, viewer, videoID, t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}

func scanVideo(row scanner, feedAt **time.Time) (models.Video, error) {
	var (
		v          models.Video
		categoryID uuid.NullUUID
		visibility string
		reaction   *string
	)

	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&categoryID,
		&visibility,
		&v.Status,
		&v.PlaybackID,
		&v.ThumbnailURL,
		&v.DurationMS,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.Author.ID,
		&v.Author.Name,
		&v.Author.ImageURL,
		&v.Author.SubscriberCount,
		&v.Author.ViewerSubscribed,
		&v.ViewCount,
		&v.LikeCount,
		&v.DislikeCount,
		&reaction,
		feedAt,
	)
	if err != nil {
		return models.Video{}, err
	}

	if categoryID.Valid {
		id := categoryID.UUID
		v.CategoryID = &id
	}
	v.Visibility = models.Visibility(visibility)
	v.ViewerReaction = toReaction(reaction)

	// Нормализация в UTC.
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()

	return v, nil
}

func toReaction(s *string) *models.ReactionType {
	if s == nil {
		return nil
	}

	r := models.ReactionType(*s)
	return &r
}

// escapeLike экранирует метасимволы LIKE, чтобы поисковая строка искалась буквально.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
