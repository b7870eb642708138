package preview

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts URL renders served by the preview routes.
type Metrics struct {
	renders   *prometheus.CounterVec
	refreshes prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		renders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "corplink_url_renders_total",
			Help: "URL renders by operation and result.",
		}, []string{"operation", "result"}),
		refreshes: f.NewCounter(prometheus.CounterOpts{
			Name: "corplink_code_challenge_refreshes_total",
			Help: "Code challenge regenerations requested through the preview service.",
		}),
	}
}

func (m *Metrics) observeRender(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.renders.WithLabelValues(op, result).Inc()
}

func (m *Metrics) observeRefresh() {
	if m == nil {
		return
	}
	m.refreshes.Inc()
}
