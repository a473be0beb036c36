package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// HubMetrics records websocket hub activity.
type HubMetrics struct {
	connections *prometheus.GaugeVec
	delivered   *prometheus.CounterVec
	skipped     *prometheus.CounterVec
}

// NewHubMetrics registers the hub metrics on the provided registerer.
func NewHubMetrics(reg prometheus.Registerer) *HubMetrics {
	if reg == nil {
		return &HubMetrics{}
	}
	connections := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ws_connections",
		Help: "Live websocket connections by client role.",
	}, []string{"role"})
	delivered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ws_events_delivered",
		Help: "Events delivered to websocket clients.",
	}, []string{"event"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ws_events_skipped",
		Help: "Event deliveries skipped because the connection was not ready.",
	}, []string{"event"})
	reg.MustRegister(connections, delivered, skipped)
	return &HubMetrics{
		connections: connections,
		delivered:   delivered,
		skipped:     skipped,
	}
}

// IncConnections bumps the live connection gauge for the role.
func (h *HubMetrics) IncConnections(role string) {
	if h == nil || h.connections == nil {
		return
	}
	h.connections.WithLabelValues(normalizeLabel(role)).Inc()
}

// DecConnections lowers the live connection gauge for the role.
func (h *HubMetrics) DecConnections(role string) {
	if h == nil || h.connections == nil {
		return
	}
	h.connections.WithLabelValues(normalizeLabel(role)).Dec()
}

// IncDelivered counts one event handed to a client's send queue.
func (h *HubMetrics) IncDelivered(event string) {
	if h == nil || h.delivered == nil {
		return
	}
	h.delivered.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncSkipped counts one delivery skipped on a non-ready connection.
func (h *HubMetrics) IncSkipped(event string) {
	if h == nil || h.skipped == nil {
		return
	}
	h.skipped.WithLabelValues(normalizeLabel(event)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
