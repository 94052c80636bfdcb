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

const commentColumns = `
	c.id, c.video_id, c.parent_id, c.value, c.created_at, c.updated_at,
	u.id, u.name, u.image_url,
	cs.like_count, cs.dislike_count, cs.reply_count, cr.type`

func commentJoins(viewer string) string {
	return `
	FROM comments c
	JOIN users u ON u.id = c.user_id
	CROSS JOIN LATERAL (
		SELECT
			(SELECT count(*) FROM comment_reactions r WHERE r.comment_id = c.id AND r.type = 'like') AS like_count,
			(SELECT count(*) FROM comment_reactions r WHERE r.comment_id = c.id AND r.type = 'dislike') AS dislike_count,
			(SELECT count(*) FROM comments rc WHERE rc.parent_id = c.id) AS reply_count
	) cs
	LEFT JOIN comment_reactions cr ON cr.comment_id = c.id AND cr.user_id = ` + viewer
}

// commentOrder - и корневые комментарии, и ответы идут от новых к старым.
var commentOrder = pagination.Order{Sort: "c.created_at", ID: "c.id"}

// ListComments возвращает корневые комментарии видео (comments) или ответы
// на комментарий (replies). Ответы в ленту comments не попадают.
func (s *Storage) ListComments(ctx context.Context, q storage.FeedQuery) ([]models.Comment, error) {
	const op = "storage.postgres.ListComments"

	var b pagination.Builder
	viewer := b.Arg(viewerArg(q.Viewer))

	switch {
	case q.Feed == models.FeedComments && q.Filter.VideoID != nil:
		b.Where("c.video_id = " + b.Arg(*q.Filter.VideoID))
		b.Where("c.parent_id IS NULL")
	case q.Feed == models.FeedReplies && q.Filter.ParentID != nil:
		b.Where("c.parent_id = " + b.Arg(*q.Filter.ParentID))
	default:
		return nil, fmt.Errorf("%s: %s: %w", op, q.Feed, storage.ErrUnsupportedFeed)
	}

	b.Seek(commentOrder, q.After)
	limit := b.Limit(q.Limit)

	query := "SELECT " + commentColumns + commentJoins(viewer) + "\n\t" +
		b.Clause() + "\n\t" + commentOrder.SQL() + "\n\t" + limit

	rows, err := s.db.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]models.Comment, 0, q.Limit)
	for rows.Next() {
		c, scanErr := scanComment(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}
		items = append(items, c)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return items, nil
}

// CommentByID возвращает комментарий с агрегатами, обогащённый для viewer.
func (s *Storage) CommentByID(ctx context.Context, id, viewer uuid.UUID) (*models.Comment, error) {
	const op = "storage.postgres.CommentByID"

	var b pagination.Builder
	ph := b.Arg(viewerArg(viewer))
	b.Where("c.id = " + b.Arg(id))

	query := "SELECT " + commentColumns + commentJoins(ph) + "\n\t" + b.Clause()

	c, err := scanComment(s.db.QueryRow(ctx, query, b.Args()...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &c, nil
}

// CreateComment создаёт комментарий или ответ.
// Для ответа в той же транзакции проверяется родитель: он должен существовать
// и быть корневым; video_id ответа наследуется от родителя.
func (s *Storage) CreateComment(ctx context.Context, in models.NewComment) (*models.Comment, error) {
	const op = "storage.postgres.CreateComment"

	var id uuid.UUID
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if in.ParentID != nil {
			var (
				videoID     uuid.UUID
				grandParent uuid.NullUUID
			)
			err := tx.QueryRow(ctx,
				`SELECT video_id, parent_id FROM comments WHERE id = $1 FOR SHARE`, *in.ParentID,
			).Scan(&videoID, &grandParent)
			if err != nil {
				return err
			}
			if grandParent.Valid {
				return storage.ErrNestedReply
			}
			in.VideoID = videoID
		}

		return tx.QueryRow(ctx, `
		INSERT INTO comments (video_id, user_id, parent_id, value)
		VALUES ($1, $2, $3, $4)
		RETURNING id
		`, in.VideoID, in.UserID, in.ParentID, in.Value).Scan(&id)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	c, err := s.CommentByID(ctx, id, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

// RemoveComment удаляет комментарий владельца вместе с ответами (ON DELETE CASCADE).
func (s *Storage) RemoveComment(ctx context.Context, id, userID uuid.UUID) error {
	const op = "storage.postgres.RemoveComment"

	tag, err := s.db.Exec(ctx, `DELETE FROM comments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ToggleCommentReaction переключает реакцию зрителя на комментарий.
func (s *Storage) ToggleCommentReaction(ctx context.Context, viewer, commentID uuid.UUID, t models.ReactionType) (*models.ReactionType, error) {
	const op = "storage.postgres.ToggleCommentReaction"

	res, err := s.toggleReaction(ctx, commentReactions, viewer, commentID, t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}

func scanComment(row scanner) (models.Comment, error) {
	var (
		c        models.Comment
		parentID uuid.NullUUID
		reaction *string
	)

	err := row.Scan(
		&c.ID,
		&c.VideoID,
		&parentID,
		&c.Value,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.Author.ID,
		&c.Author.Name,
		&c.Author.ImageURL,
		&c.LikeCount,
		&c.DislikeCount,
		&c.ReplyCount,
		&reaction,
	)
	if err != nil {
		return models.Comment{}, err
	}

	if parentID.Valid {
		id := parentID.UUID
		c.ParentID = &id
	}
	c.ViewerReaction = toReaction(reaction)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()

	return c, nil
}
