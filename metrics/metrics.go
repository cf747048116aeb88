// Package metrics exposes arcade counters in the Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can create as many as they like.
type Metrics struct {
	registry       *prometheus.Registry
	activeSessions prometheus.Gauge
	gamesStarted   *prometheus.CounterVec
	actions        *prometheus.CounterVec
	gamesFinished  *prometheus.CounterVec
	wsClients      prometheus.Gauge
}

// New registers the arcade collectors plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "arcade",
			Name:      "active_sessions",
			Help:      "Number of live sessions.",
		}),
		gamesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcade",
			Name:      "games_started_total",
			Help:      "Game instances started, by game.",
		}, []string{"game"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcade",
			Name:      "actions_total",
			Help:      "Player actions handled, by game and result.",
		}, []string{"game", "result"}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcade",
			Name:      "games_finished_total",
			Help:      "Finished games, by game and outcome.",
		}, []string{"game", "outcome"}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "arcade",
			Name:      "websocket_clients",
			Help:      "Connected WebSocket clients.",
		}),
	}
	m.registry.MustRegister(
		m.activeSessions,
		m.gamesStarted,
		m.actions,
		m.gamesFinished,
		m.wsClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) SetActiveSessions(n int) { m.activeSessions.Set(float64(n)) }
func (m *Metrics) GameSelected(game string) { m.gamesStarted.WithLabelValues(game).Inc() }

func (m *Metrics) ActionHandled(game string, applied bool) {
	result := "applied"
	if !applied {
		result = "rejected"
	}
	m.actions.WithLabelValues(game, result).Inc()
}

func (m *Metrics) GameFinished(game, outcome string) {
	m.gamesFinished.WithLabelValues(game, outcome).Inc()
}

// SetClients reports the number of connected WebSocket clients.
func (m *Metrics) SetClients(n int) { m.wsClients.Set(float64(n)) }

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry on /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
