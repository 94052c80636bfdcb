// Package metrics - Prometheus-метрики videohub.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - набор метрик сервиса. Методы безопасны для nil-получателя,
// чтобы слои можно было собирать без метрик (в тестах).
type Metrics struct {
	httpDuration *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
	feedPages    *prometheus.CounterVec
	feedItems    *prometheus.HistogramVec
}

// New регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "videohub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "videohub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"method", "route", "code"}),
		feedPages: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "videohub",
			Subsystem: "feed",
			Name:      "pages_total",
			Help:      "Feed pages served, split by whether a next page exists.",
		}, []string{"feed", "has_more"}),
		feedItems: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "videohub",
			Subsystem: "feed",
			Name:      "page_items",
			Help:      "Number of items per served feed page.",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		}, []string{"feed"}),
	}
}

// ObserveHTTP учитывает завершённый HTTP-запрос.
func (m *Metrics) ObserveHTTP(method, route string, code int, dur time.Duration) {
	if m == nil {
		return
	}

	m.httpDuration.WithLabelValues(method, route).Observe(dur.Seconds())
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}

// ObservePage учитывает отданную страницу ленты.
func (m *Metrics) ObservePage(feed string, items int, hasMore bool) {
	if m == nil {
		return
	}

	m.feedPages.WithLabelValues(feed, strconv.FormatBool(hasMore)).Inc()
	m.feedItems.WithLabelValues(feed).Observe(float64(items))
}
