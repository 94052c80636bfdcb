package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/pribylovaa/go-videohub/internal/errors"
	"github.com/pribylovaa/go-videohub/internal/service"
	logctx "github.com/pribylovaa/go-videohub/pkg/log"

	"github.com/google/uuid"
)

type viewerKey struct{}

// Verifier проверяет access-токен и возвращает id зрителя. Реализуется auth.Verifier.
type Verifier interface {
	Verify(token string) (uuid.UUID, error)
}

// Auth определяет зрителя запроса по заголовку Authorization.
//
// Поведение:
//   - заголовка нет - запрос анонимный, обработчик решает сам;
//   - заголовок есть, но это не "Bearer <token>" или токен не прошёл проверку - 401;
//   - иначе id зрителя кладётся в контекст, а логгер получает viewer_id.
func Auth(v Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			token := ""
			if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
				token = strings.TrimSpace(header[len(prefix):])
			}

			if token == "" {
				apierrors.WriteError(w, r, fmt.Errorf("malformed authorization header: %w", service.ErrUnauthorized))
				return
			}

			viewer, err := v.Verify(token)
			if err != nil {
				logctx.From(r.Context()).Warn("auth_failed", slog.String("err", err.Error()))
				apierrors.WriteError(w, r, fmt.Errorf("%w: %w", service.ErrUnauthorized, err))
				return
			}

			ctx := context.WithValue(r.Context(), viewerKey{}, viewer)
			ctx = logctx.With(ctx, slog.String("viewer_id", viewer.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ViewerFrom возвращает зрителя запроса; uuid.Nil - анонимный.
func ViewerFrom(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(viewerKey{}).(uuid.UUID)
	return id
}

// WithViewer кладёт зрителя в контекст (для тестов обработчиков).
func WithViewer(ctx context.Context, viewer uuid.UUID) context.Context {
	return context.WithValue(ctx, viewerKey{}, viewer)
}
