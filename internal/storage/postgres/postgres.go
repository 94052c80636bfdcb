// Package postgres - реализация storage.Storage поверх PostgreSQL (pgx/v5, pgxpool).
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-videohub/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	db *pgxpool.Pool
}

// New создает пул соединений к PostgreSQL и проверяет его Ping'ом.
func New(ctx context.Context, dbURL string) (*Storage, error) {
	const op = "storage.postgres.New"

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Ping проверяет доступность БД (используется в /healthz).
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close закрывает пул соединений.
func (s *Storage) Close() {
	s.db.Close()
}

// scanner - общий интерфейс pgx.Row и pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// viewerArg превращает анонимного зрителя (uuid.Nil) в SQL NULL,
// чтобы LEFT JOIN по зрителю ничего не находил.
func viewerArg(viewer uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: viewer, Valid: viewer != uuid.Nil}
}

// mapError переводит ошибки pgx/PostgreSQL в ошибки слоя storage.
// Нераспознанные ошибки возвращаются как есть.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return storage.ErrConflict
		case pgerrcode.ForeignKeyViolation:
			return storage.ErrNotFound
		case pgerrcode.CheckViolation:
			if pgErr.ConstraintName == "subscriptions_not_self" {
				return storage.ErrSelfSubscription
			}
		}
	}

	return err
}

// Проверка на соответствие интерфейсу Storage.
var _ storage.Storage = (*Storage)(nil)
