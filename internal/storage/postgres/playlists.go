package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/internal/pagination"
	"github.com/pribylovaa/go-videohub/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const playlistColumns = `
	p.id, p.user_id, p.name, p.description, p.created_at, p.updated_at,
	ps.video_count, COALESCE(ps.thumbnail_url, '')`

// playlistJoins: число видео и обложка последнего добавленного публичного видео.
const playlistJoins = `
	FROM playlists p
	CROSS JOIN LATERAL (
		SELECT
			(SELECT count(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id) AS video_count,
			(SELECT v.thumbnail_url
			   FROM playlist_videos pv
			   JOIN videos v ON v.id = pv.video_id
			  WHERE pv.playlist_id = p.id AND v.visibility = 'public'
			  ORDER BY pv.created_at DESC, pv.video_id DESC
			  LIMIT 1) AS thumbnail_url
	) ps`

var playlistOrder = pagination.Order{Sort: "p.created_at", ID: "p.id"}

// ListPlaylists возвращает плейлисты зрителя от новых к старым.
// Если задан Filter.VideoID, для каждого плейлиста вычисляется ContainsVideo.
func (s *Storage) ListPlaylists(ctx context.Context, q storage.FeedQuery) ([]models.Playlist, error) {
	const op = "storage.postgres.ListPlaylists"

	if q.Feed != models.FeedPlaylists {
		return nil, fmt.Errorf("%s: %s: %w", op, q.Feed, storage.ErrUnsupportedFeed)
	}

	var b pagination.Builder
	b.Where("p.user_id = " + b.Arg(q.Viewer))

	contains := "NULL::boolean"
	if q.Filter.VideoID != nil {
		contains = "EXISTS (SELECT 1 FROM playlist_videos pv WHERE pv.playlist_id = p.id AND pv.video_id = " +
			b.Arg(*q.Filter.VideoID) + ")"
	}

	b.Seek(playlistOrder, q.After)
	limit := b.Limit(q.Limit)

	query := "SELECT " + playlistColumns + ", " + contains + " AS contains_video" + playlistJoins + "\n\t" +
		b.Clause() + "\n\t" + playlistOrder.SQL() + "\n\t" + limit

	rows, err := s.db.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]models.Playlist, 0, q.Limit)
	for rows.Next() {
		var p models.Playlist
		if scanErr := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.Description,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.VideoCount,
			&p.ThumbnailURL,
			&p.ContainsVideo,
		); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		p.CreatedAt = p.CreatedAt.UTC()
		p.UpdatedAt = p.UpdatedAt.UTC()
		items = append(items, p)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return items, nil
}

// PlaylistByID возвращает плейлист по id без проверки владельца.
func (s *Storage) PlaylistByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	const op = "storage.postgres.PlaylistByID"

	var p models.Playlist
	err := s.db.QueryRow(ctx, "SELECT "+playlistColumns+playlistJoins+"\n\tWHERE p.id = $1", id).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.VideoCount,
		&p.ThumbnailURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()

	return &p, nil
}

// CreatePlaylist создаёт пустой плейлист.
func (s *Storage) CreatePlaylist(ctx context.Context, in models.NewPlaylist) (*models.Playlist, error) {
	const op = "storage.postgres.CreatePlaylist"

	p := models.Playlist{UserID: in.UserID, Name: in.Name, Description: in.Description}
	err := s.db.QueryRow(ctx, `
	INSERT INTO playlists (user_id, name, description)
	VALUES ($1, $2, $3)
	RETURNING id, created_at, updated_at
	`, in.UserID, in.Name, in.Description).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()

	return &p, nil
}

// RemovePlaylist удаляет плейлист владельца.
func (s *Storage) RemovePlaylist(ctx context.Context, id, userID uuid.UUID) error {
	const op = "storage.postgres.RemovePlaylist"

	tag, err := s.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// TogglePlaylistVideo добавляет видео в плейлист или убирает его оттуда.
func (s *Storage) TogglePlaylistVideo(ctx context.Context, playlistID, userID, videoID uuid.UUID) (bool, error) {
	const op = "storage.postgres.TogglePlaylistVideo"

	var added bool
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		// Блокировка плейлиста сериализует переключения и проверяет владельца.
		var one int
		if err := tx.QueryRow(ctx,
			`SELECT 1 FROM playlists WHERE id = $1 AND user_id = $2 FOR UPDATE`, playlistID, userID,
		).Scan(&one); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`, playlistID, videoID)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx,
				`INSERT INTO playlist_videos (playlist_id, video_id) VALUES ($1, $2)`, playlistID, videoID,
			); err != nil {
				return err
			}
			added = true
		}

		_, err = tx.Exec(ctx, `UPDATE playlists SET updated_at = now() WHERE id = $1`, playlistID)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return added, nil
}
