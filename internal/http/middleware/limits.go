package middleware

import (
	"net/http"

	"github.com/pribylovaa/go-videohub/internal/config"
	apierrors "github.com/pribylovaa/go-videohub/internal/errors"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// CORS разрешает браузерным клиентам указанных источников читать API.
// X-Request-Id открыт клиенту для репортов об ошибках.
func CORS(cfg config.CORSConfig) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}

// RateLimit ограничивает частоту запросов с одного IP.
// Превышение отдаётся в общем формате ошибки (429/resource_exhausted).
func RateLimit(cfg config.RateLimitConfig) Middleware {
	if cfg.Requests <= 0 || cfg.Window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(
		cfg.Requests,
		cfg.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			apierrors.WriteError(w, r, apierrors.ErrRateLimited)
		}),
	)
}
