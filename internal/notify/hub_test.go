package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/desrlabs/desr-backend/pkg/config"
	"github.com/desrlabs/desr-backend/pkg/db/models"
	"github.com/desrlabs/desr-backend/pkg/enums"
)

func newTestHub() *Hub {
	return NewHub(config.HubConfig{
		SendBuffer:   8,
		WriteTimeout: time.Second,
		PongTimeout:  time.Minute,
	}, nil, nil)
}

func addClient(hub *Hub, role enums.ClientRole, table *int, buffer int) *Client {
	c := &Client{
		hub:         hub,
		send:        make(chan []byte, buffer),
		ID:          role.String() + "_test",
		Role:        role,
		TableNumber: table,
	}
	hub.register(c)
	return c
}

func receive(t *testing.T, c *Client) map[string]any {
	t.Helper()
	select {
	case raw := <-c.send:
		var payload map[string]any
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		return payload
	default:
		t.Fatal("expected a queued event")
		return nil
	}
}

func assertEmpty(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.send:
		t.Fatalf("unexpected event %s", raw)
	default:
	}
}

func TestHubNotifyNewOrderReachesOnlyKitchen(t *testing.T) {
	hub := newTestHub()
	kitchen := addClient(hub, enums.ClientRoleKitchen, nil, 8)
	five := 5
	table := addClient(hub, enums.ClientRoleTable, &five, 8)

	hub.NotifyNewOrder(context.Background(), &models.Order{ID: "order_1", TableNumber: 5})

	payload := receive(t, kitchen)
	if payload["type"] != EventNewOrder {
		t.Fatalf("expected new_order, got %v", payload["type"])
	}
	order, ok := payload["order"].(map[string]any)
	if !ok || order["id"] != "order_1" {
		t.Fatalf("expected full order payload, got %v", payload["order"])
	}
	if _, ok := payload["timestamp"]; !ok {
		t.Fatal("expected timestamp on every event")
	}

	assertEmpty(t, table)
}

func TestHubStatusChangeScopesTablePayload(t *testing.T) {
	hub := newTestHub()
	kitchen := addClient(hub, enums.ClientRoleKitchen, nil, 8)
	five, nine := 5, 9
	atTable := addClient(hub, enums.ClientRoleTable, &five, 8)
	otherTable := addClient(hub, enums.ClientRoleTable, &nine, 8)
	lurker := addClient(hub, enums.ClientRoleTable, nil, 8)

	hub.NotifyStatusChange(context.Background(), &models.Order{
		ID:          "order_1",
		TableNumber: 5,
		Status:      enums.OrderStatusPreparing,
	})

	kitchenPayload := receive(t, kitchen)
	if _, ok := kitchenPayload["order"]; !ok {
		t.Fatal("kitchen gets the full order")
	}

	tablePayload := receive(t, atTable)
	if tablePayload["orderId"] != "order_1" || tablePayload["status"] != "preparing" {
		t.Fatalf("unexpected table payload %v", tablePayload)
	}
	if _, ok := tablePayload["order"]; ok {
		t.Fatal("table clients never receive the full order")
	}

	assertEmpty(t, otherTable)
	assertEmpty(t, lurker)
}

func TestHubOrderReadyMessage(t *testing.T) {
	hub := newTestHub()
	five := 5
	table := addClient(hub, enums.ClientRoleTable, &five, 8)

	hub.NotifyOrderReady(context.Background(), &models.Order{ID: "order_1", TableNumber: 5})

	payload := receive(t, table)
	if payload["type"] != EventOrderReady {
		t.Fatalf("expected order_ready, got %v", payload["type"])
	}
	if payload["message"] != OrderReadyMessage {
		t.Fatalf("unexpected message %v", payload["message"])
	}
}

func TestHubSkipsFullSendQueue(t *testing.T) {
	hub := newTestHub()
	slow := addClient(hub, enums.ClientRoleKitchen, nil, 1)

	hub.NotifyNewOrder(context.Background(), &models.Order{ID: "order_1", TableNumber: 5})
	hub.NotifyNewOrder(context.Background(), &models.Order{ID: "order_2", TableNumber: 5})

	payload := receive(t, slow)
	order := payload["order"].(map[string]any)
	if order["id"] != "order_1" {
		t.Fatalf("expected the first order, got %v", order["id"])
	}
	assertEmpty(t, slow)
}

func TestHubBroadcastAll(t *testing.T) {
	hub := newTestHub()
	kitchen := addClient(hub, enums.ClientRoleKitchen, nil, 8)
	five := 5
	table := addClient(hub, enums.ClientRoleTable, &five, 8)

	hub.BroadcastAll("announcement", map[string]any{"message": "closing soon"})

	for _, c := range []*Client{kitchen, table} {
		payload := receive(t, c)
		if payload["type"] != "announcement" || payload["message"] != "closing soon" {
			t.Fatalf("unexpected payload %v", payload)
		}
	}
}

func TestHubCountsAndUnregister(t *testing.T) {
	hub := newTestHub()
	kitchen := addClient(hub, enums.ClientRoleKitchen, nil, 8)
	five := 5
	addClient(hub, enums.ClientRoleTable, &five, 8)

	counts := hub.Counts()
	if counts["kitchen"] != 1 || counts["client"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}

	hub.unregister(kitchen)
	counts = hub.Counts()
	if counts["kitchen"] != 0 {
		t.Fatalf("expected kitchen to drop to zero, got %v", counts)
	}

	// A second unregister of the same client must be a no-op.
	hub.unregister(kitchen)
}

func TestClientPingGetsPong(t *testing.T) {
	hub := newTestHub()
	c := addClient(hub, enums.ClientRoleKitchen, nil, 8)

	c.handleMessage(inboundMessage{Type: MessagePing})

	payload := receive(t, c)
	if payload["type"] != EventPong {
		t.Fatalf("expected pong, got %v", payload["type"])
	}
}

func TestClientSubscribeRecordsEvents(t *testing.T) {
	hub := newTestHub()
	c := addClient(hub, enums.ClientRoleKitchen, nil, 8)

	c.handleMessage(inboundMessage{Type: MessageSubscribe, Events: []string{"new_order"}})

	if len(c.subscriptions) != 1 || c.subscriptions[0] != "new_order" {
		t.Fatalf("unexpected subscriptions %v", c.subscriptions)
	}
	assertEmpty(t, c)
}
