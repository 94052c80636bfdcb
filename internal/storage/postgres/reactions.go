package postgres

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-videohub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// reactionTable - таблица реакций и колонка цели (video_id/comment_id).
type reactionTable struct {
	table  string
	target string
}

var (
	videoReactions   = reactionTable{table: "video_reactions", target: "video_id"}
	commentReactions = reactionTable{table: "comment_reactions", target: "comment_id"}
)

// toggleReaction реализует переключатель реакции в одной транзакции:
//   - реакции нет - вставляется t;
//   - реакция того же типа - удаляется (результат nil);
//   - реакция другого типа - перезаписывается на t с обновлением updated_at.
//
// Строка блокируется FOR UPDATE, чтобы параллельные клики одного зрителя сериализовались.
func (s *Storage) toggleReaction(ctx context.Context, rt reactionTable, viewer, target uuid.UUID, t models.ReactionType) (*models.ReactionType, error) {
	var result *models.ReactionType

	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		var current string
		err := tx.QueryRow(ctx,
			`SELECT type FROM `+rt.table+` WHERE user_id = $1 AND `+rt.target+` = $2 FOR UPDATE`,
			viewer, target,
		).Scan(&current)

		switch {
		case errors.Is(err, pgx.ErrNoRows):
			if _, err := tx.Exec(ctx,
				`INSERT INTO `+rt.table+` (user_id, `+rt.target+`, type) VALUES ($1, $2, $3)`,
				viewer, target, string(t),
			); err != nil {
				return err
			}
			result = &t

		case err != nil:
			return err

		case models.ReactionType(current) == t:
			if _, err := tx.Exec(ctx,
				`DELETE FROM `+rt.table+` WHERE user_id = $1 AND `+rt.target+` = $2`,
				viewer, target,
			); err != nil {
				return err
			}
			result = nil

		default:
			if _, err := tx.Exec(ctx,
				`UPDATE `+rt.table+` SET type = $3, updated_at = now() WHERE user_id = $1 AND `+rt.target+` = $2`,
				viewer, target, string(t),
			); err != nil {
				return err
			}
			result = &t
		}

		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}

	return result, nil
}
