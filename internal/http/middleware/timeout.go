package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	logctx "github.com/pribylovaa/go-videohub/pkg/log"
)

// Timeout задаёт запросу бюджет budget на чтение ленты или мутацию.
// Более ранний deadline вызывающего остаётся в силе, более поздний сужается до budget.
// budget <= 0 отключает ограничение.
func Timeout(budget time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if budget <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), budget)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))

			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				logctx.From(ctx).Warn("request_budget_exhausted",
					slog.String("path", r.URL.Path),
					slog.Duration("budget", budget),
				)
			}
		})
	}
}
