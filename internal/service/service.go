// Package service содержит бизнес-логику videohub: ленты поверх feed.Composer
// и мутации, которые порождают строки лент.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-videohub/internal/config"
	"github.com/pribylovaa/go-videohub/internal/feed"
	"github.com/pribylovaa/go-videohub/internal/metrics"
	"github.com/pribylovaa/go-videohub/internal/pagination"
	"github.com/pribylovaa/go-videohub/internal/storage"
)

var (
	// ErrInvalidArgument - неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidCursor - битый курсор или курсор другой ленты.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrNotFound - сущность отсутствует или не видна зрителю.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized - операция требует аутентифицированного зрителя.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict - конфликт уникальности (повторная подписка и т.п.).
	ErrConflict = errors.New("conflict")
	// ErrUnavailable - хранилище недоступно или вернуло ошибку; повтор - на стороне клиента.
	ErrUnavailable = errors.New("unavailable")
)

// Service - бизнес-логика videohub.
type Service struct {
	storage storage.Storage
	feeds   *feed.Composer
	limits  config.LimitsConfig
	metrics *metrics.Metrics
}

// New создает новый экземпляр Service. m может быть nil.
func New(storage storage.Storage, cfg config.Config, m *metrics.Metrics) *Service {
	return &Service{
		storage: storage,
		feeds:   feed.New(storage),
		limits:  cfg.Limits,
		metrics: m,
	}
}

// Ping проверяет готовность зависимостей (хранилища).
func (s *Service) Ping(ctx context.Context) error {
	const op = "service.Ping"

	if err := s.storage.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}

	return nil
}

// classify сводит ошибки нижних слоёв к сервисной таксономии.
// Всё нераспознанное (ошибки БД, таймауты контекста) - ErrUnavailable.
func classify(err error) error {
	switch {
	case errors.Is(err, pagination.ErrInvalidCursor):
		return ErrInvalidCursor
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, pagination.ErrInvalidArgument),
		errors.Is(err, storage.ErrNestedReply),
		errors.Is(err, storage.ErrSelfSubscription),
		errors.Is(err, storage.ErrUnsupportedFeed):
		return ErrInvalidArgument
	case errors.Is(err, ErrNotFound), errors.Is(err, feed.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, feed.ErrUnauthorized):
		return ErrUnauthorized
	case errors.Is(err, storage.ErrConflict):
		return ErrConflict
	default:
		return ErrUnavailable
	}
}

// fail логирует и оборачивает ошибку операции op.
// Ошибки клиента пишутся как warn, отказ хранилища - как error с сохранением причины.
func fail(lg *slog.Logger, op string, err error) error {
	mapped := classify(err)
	if mapped == ErrUnavailable {
		lg.Error("storage_failed", slog.String("err", err.Error()))
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}

	lg.Warn("request_rejected", slog.String("reason", mapped.Error()), slog.String("err", err.Error()))
	return fmt.Errorf("%s: %w", op, mapped)
}
