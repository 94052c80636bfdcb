// Package log хранит логгер запроса в context.Context: middleware обогащает его
// request_id и viewer_id, сервис и хранилище пишут через From(ctx).
package log

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// Into возвращает контекст с логгером l.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// From возвращает логгер запроса; вне запроса - slog.Default().
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}

	return slog.Default()
}

// With добавляет атрибуты к логгеру запроса.
func With(ctx context.Context, args ...any) context.Context {
	return Into(ctx, From(ctx).With(args...))
}
