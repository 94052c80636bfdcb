package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/pkg/log"

	"github.com/google/uuid"
)

// MaxCommentLength - предельная длина комментария в символах.
const MaxCommentLength = 5000

// CreateCommentInput - создание корневого комментария или ответа.
// Правила:
//   - если ParentID == nil, создаётся корень и обязателен VideoID;
//   - если ParentID задан, VideoID можно не передавать: ответ наследует видео родителя;
//   - Value нормализуется (TrimSpace) и не должно быть пустым.
type CreateCommentInput struct {
	VideoID  uuid.UUID
	ParentID *uuid.UUID
	UserID   uuid.UUID
	Value    string
}

// CreateComment - бизнес-операция создания комментария.
//
// Поведение/ошибки:
//   - ErrUnauthorized - нет зрителя;
//   - ErrInvalidArgument - пустой текст, ответ на ответ;
//   - ErrNotFound - нет видео (или оно не видно зрителю) либо нет родителя;
//     для ответа видимость проверяется по видео родителя.
func (s *Service) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const op = "service.CreateComment"

	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.String("video_id", in.VideoID.String()),
		slog.Bool("reply", in.ParentID != nil),
	)

	if in.UserID == uuid.Nil {
		return nil, fail(lg, op, ErrUnauthorized)
	}

	in.Value = strings.TrimSpace(in.Value)
	if in.Value == "" || utf8.RuneCountInString(in.Value) > MaxCommentLength {
		return nil, fail(lg, op, fmt.Errorf("comment value: %w", ErrInvalidArgument))
	}

	if in.ParentID == nil {
		if in.VideoID == uuid.Nil {
			return nil, fail(lg, op, fmt.Errorf("video id: %w", ErrInvalidArgument))
		}
		if _, err := s.visibleVideo(ctx, in.VideoID, in.UserID); err != nil {
			return nil, fail(lg, op, err)
		}
	} else {
		parent, err := s.visibleComment(ctx, *in.ParentID, in.UserID)
		if err != nil {
			return nil, fail(lg, op, err)
		}
		if parent.ParentID != nil {
			return nil, fail(lg, op, fmt.Errorf("parent %s: %w", parent.ID, ErrInvalidArgument))
		}
		in.VideoID = parent.VideoID
	}

	c, err := s.storage.CreateComment(ctx, models.NewComment{
		VideoID:  in.VideoID,
		ParentID: in.ParentID,
		UserID:   in.UserID,
		Value:    in.Value,
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Info("comment_created", slog.String("comment_id", c.ID.String()))
	return c, nil
}

// RemoveComment удаляет комментарий зрителя. Чужой или отсутствующий - ErrNotFound.
func (s *Service) RemoveComment(ctx context.Context, viewer, id uuid.UUID) error {
	const op = "service.RemoveComment"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("comment_id", id.String()))

	if viewer == uuid.Nil {
		return fail(lg, op, ErrUnauthorized)
	}

	if err := s.storage.RemoveComment(ctx, id, viewer); err != nil {
		return fail(lg, op, err)
	}

	lg.Info("comment_removed")
	return nil
}

// ReactToComment переключает реакцию зрителя на комментарий.
func (s *Service) ReactToComment(ctx context.Context, viewer, commentID uuid.UUID, t models.ReactionType) (*models.ReactionType, error) {
	const op = "service.ReactToComment"

	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.String("comment_id", commentID.String()),
		slog.String("type", string(t)),
	)

	if viewer == uuid.Nil {
		return nil, fail(lg, op, ErrUnauthorized)
	}
	if !t.Valid() {
		return nil, fail(lg, op, fmt.Errorf("reaction %q: %w", t, ErrInvalidArgument))
	}

	if _, err := s.visibleComment(ctx, commentID, viewer); err != nil {
		return nil, fail(lg, op, err)
	}

	res, err := s.storage.ToggleCommentReaction(ctx, viewer, commentID, t)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Debug("react_comment_ok", slog.Bool("removed", res == nil))
	return res, nil
}

// visibleComment читает комментарий и проверяет, что зритель видит его видео.
func (s *Service) visibleComment(ctx context.Context, id, viewer uuid.UUID) (*models.Comment, error) {
	c, err := s.storage.CommentByID(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	if _, err := s.visibleVideo(ctx, c.VideoID, viewer); err != nil {
		return nil, err
	}

	return c, nil
}
