package handlers

import (
	"io/fs"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"misleadviz/internal/game"
	"misleadviz/internal/views"
)

// RequestTimeout bounds every request except event streams.
const RequestTimeout = 15 * time.Second

// Deps is what the router needs.
type Deps struct {
	Store    *game.Store
	Logger   *zap.Logger
	Metrics  *Metrics
	Gatherer prometheus.Gatherer
	BaseURL  string
}

// NewRouter wires middleware, static assets, metrics and game routes.
func NewRouter(d Deps) (http.Handler, error) {
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if d.Metrics == nil {
		d.Metrics = NewMetrics(prometheus.NewRegistry())
	}

	staticFS, err := fs.Sub(views.Static, "static")
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)

	home := NewHomeHandler(d.Store, d.Logger)
	sessions := NewSessionHandler(d.Store, d.Logger, d.Metrics, d.BaseURL)

	sessions.RegisterStream(r)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(RequestTimeout))
		r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))
		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]string{"status": "ok"})
		})
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
		home.RegisterRoutes(r)
		sessions.RegisterRoutes(r)
	})
	return r, nil
}
