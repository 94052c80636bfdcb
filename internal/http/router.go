package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-videohub/internal/config"
	"github.com/pribylovaa/go-videohub/internal/http/handlers"
	"github.com/pribylovaa/go-videohub/internal/http/middleware"
	"github.com/pribylovaa/go-videohub/internal/metrics"
	"github.com/pribylovaa/go-videohub/internal/models"
)

// Options - параметры сборки HTTP-роутера.
type Options struct {
	Logger    *slog.Logger
	Timeout   time.Duration
	BasePath  string // например, "/api/v1"; если пустой - роуты регистрируются на корне.
	Verifier  middleware.Verifier
	Metrics   *metrics.Metrics // nil - без метрик
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования: id попадает в логгер запроса
		middleware.Logging(opts.Logger),
		middleware.Metrics(opts.Metrics),
		middleware.CORS(opts.CORS),
		middleware.RateLimit(opts.RateLimit),
	)
	if opts.Verifier != nil {
		root.Use(middleware.Auth(opts.Verifier))
	}
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	h := handlers.New(svc)

	if opts.BasePath != "" {
		root.Route(opts.BasePath, func(r chi.Router) { registerRoutes(r, h) })
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes - единая точка регистрации REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// videos
	r.Get("/videos", h.VideoFeed(models.FeedVideos))
	r.Get("/videos/trending", h.VideoFeed(models.FeedTrending))
	r.Get("/videos/subscriptions", h.VideoFeed(models.FeedSubscriptions))
	r.Get("/videos/search", h.VideoFeed(models.FeedSearch))
	r.Get("/videos/{id}", h.GetVideo)
	r.Patch("/videos/{id}", h.UpdateVideo)
	r.Delete("/videos/{id}", h.RemoveVideo)
	r.Get("/videos/{id}/suggestions", h.Suggestions)
	r.Get("/videos/{id}/comments", h.ListComments)
	r.Post("/videos/{id}/views", h.RecordView)
	r.Post("/videos/{id}/reactions", h.ReactToVideo)
	r.Get("/studio/videos", h.VideoFeed(models.FeedStudio))
	r.Get("/categories", h.ListCategories)

	// comments
	r.Post("/comments", h.CreateComment)
	r.Delete("/comments/{id}", h.RemoveComment)
	r.Get("/comments/{id}/replies", h.ListReplies)
	r.Post("/comments/{id}/reactions", h.ReactToComment)

	// playlists
	r.Get("/playlists", h.ListPlaylists)
	r.Post("/playlists", h.CreatePlaylist)
	r.Get("/playlists/history", h.VideoFeed(models.FeedHistory))
	r.Get("/playlists/liked", h.VideoFeed(models.FeedLiked))
	r.Delete("/playlists/{id}", h.RemovePlaylist)
	r.Get("/playlists/{id}/videos", h.ListPlaylistVideos)
	r.Post("/playlists/{id}/videos", h.TogglePlaylistVideo)

	// subscriptions
	r.Post("/subscriptions", h.Subscribe)
	r.Delete("/subscriptions/{creator_id}", h.Unsubscribe)
}
