package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"misleadviz/internal/game"
	"misleadviz/internal/outcome"
)

// Metrics counts gameplay events. It implements game.Observer.
type Metrics struct {
	publishes  *prometheus.CounterVec
	slideViews *prometheus.CounterVec
	countdowns *prometheus.CounterVec
	throttled  prometheus.Counter
	reg        prometheus.Registerer
}

// NewMetrics registers the gameplay metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		publishes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "misleadviz_publishes_total",
			Help: "Published scenes by scene and classification.",
		}, []string{"scene", "flag"}),
		slideViews: f.NewCounterVec(prometheus.CounterOpts{
			Name: "misleadviz_slide_views_total",
			Help: "Slide entries by slide id.",
		}, []string{"slide"}),
		countdowns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "misleadviz_countdowns_total",
			Help: "Election night countdowns by how they finished.",
		}, []string{"result"}),
		throttled: f.NewCounter(prometheus.CounterOpts{
			Name: "misleadviz_throttled_actions_total",
			Help: "Actions rejected by the per-session rate limit.",
		}),
		reg: reg,
	}
}

// TrackSessions exports the number of live sessions in store.
func (m *Metrics) TrackSessions(store *game.Store) {
	promauto.With(m.reg).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "misleadviz_sessions_active",
		Help: "Sessions currently held in memory.",
	}, func() float64 { return float64(store.Len()) })
}

func (m *Metrics) SlideViewed(slide string) {
	m.slideViews.WithLabelValues(slide).Inc()
}

func (m *Metrics) Published(o outcome.Outcome) {
	m.publishes.WithLabelValues(string(o.Scene), string(o.Flag)).Inc()
}

func (m *Metrics) CountdownFinished(result string) {
	m.countdowns.WithLabelValues(result).Inc()
}

// Throttled counts an action rejected by the rate limit.
func (m *Metrics) Throttled() {
	m.throttled.Inc()
}
