package middleware

import (
	"net/http"
	"time"

	"github.com/pribylovaa/go-videohub/internal/metrics"

	"github.com/go-chi/chi/v5"
)

// Metrics учитывает запросы по шаблону маршрута chi (а не по сырому пути,
// чтобы id в URL не раздували кардинальность). Неизвестные маршруты - "unmatched".
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			m.ObserveHTTP(r.Method, route, sw.code(), time.Since(start))
		})
	}
}
