package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestHubMetricsNilSafe(t *testing.T) {
	var m *HubMetrics
	m.IncConnections("kitchen")
	m.DecConnections("kitchen")
	m.IncDelivered("new_order")
	m.IncSkipped("new_order")

	empty := NewHubMetrics(nil)
	empty.IncConnections("kitchen")
	empty.IncDelivered("new_order")
}

func TestHubMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHubMetrics(reg)

	m.IncConnections("kitchen")
	m.IncConnections("Client")
	m.DecConnections("kitchen")
	m.IncDelivered("order_ready")
	m.IncSkipped("")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	names := map[string]bool{}
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	for _, want := range []string{"ws_connections", "ws_events_delivered", "ws_events_skipped"} {
		if !names[want] {
			t.Fatalf("expected metric family %q, got %v", want, names)
		}
	}
}
