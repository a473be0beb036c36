package notify

import (
	"context"
	"sync"

	"github.com/desrlabs/desr-backend/pkg/config"
	"github.com/desrlabs/desr-backend/pkg/db/models"
	"github.com/desrlabs/desr-backend/pkg/enums"
	"github.com/desrlabs/desr-backend/pkg/logger"
	"github.com/desrlabs/desr-backend/pkg/metrics"
)

// Hub fans order lifecycle events out to connected websocket clients.
// Clients are grouped by role; kitchen displays receive full order
// payloads while table clients only get events scoped to their table.
// Delivery is fire-and-forget: a client whose send queue is full is
// skipped, never waited on.
type Hub struct {
	cfg     config.HubConfig
	logg    *logger.Logger
	metrics *metrics.HubMetrics

	mu      sync.RWMutex
	clients map[enums.ClientRole]map[*Client]struct{}
}

// NewHub builds an empty hub. The metrics argument may be nil.
func NewHub(cfg config.HubConfig, logg *logger.Logger, m *metrics.HubMetrics) *Hub {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 256
	}
	return &Hub{
		cfg:     cfg,
		logg:    logg,
		metrics: m,
		clients: make(map[enums.ClientRole]map[*Client]struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	group, ok := h.clients[c.Role]
	if !ok {
		group = make(map[*Client]struct{})
		h.clients[c.Role] = group
	}
	group[c] = struct{}{}
	h.mu.Unlock()

	h.metrics.IncConnections(c.Role.String())
	if h.logg != nil {
		ctx := h.logg.WithClientID(context.Background(), c.ID)
		h.logg.Info(ctx, "websocket client connected")
	}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	group, ok := h.clients[c.Role]
	if ok {
		if _, present := group[c]; present {
			delete(group, c)
			close(c.send)
		} else {
			ok = false
		}
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	h.metrics.DecConnections(c.Role.String())
	if h.logg != nil {
		ctx := h.logg.WithClientID(context.Background(), c.ID)
		h.logg.Info(ctx, "websocket client disconnected")
	}
}

// Counts reports connected clients per role.
func (h *Hub) Counts() map[string]int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	counts := make(map[string]int, len(h.clients))
	for role, group := range h.clients {
		counts[role.String()] = len(group)
	}
	return counts
}

// NotifyNewOrder tells the kitchen a new order arrived.
func (h *Hub) NotifyNewOrder(ctx context.Context, order *models.Order) {
	h.broadcastRole(enums.ClientRoleKitchen, EventNewOrder, encodeEvent(EventNewOrder, map[string]any{
		"order": order,
	}))
}

// NotifyStatusChange pushes a status transition to the kitchen (full
// order) and to the order's table (id and status only).
func (h *Hub) NotifyStatusChange(ctx context.Context, order *models.Order) {
	h.broadcastRole(enums.ClientRoleKitchen, EventOrderStatusChanged, encodeEvent(EventOrderStatusChanged, map[string]any{
		"order": order,
	}))
	h.broadcastTable(order.TableNumber, EventOrderStatusChanged, encodeEvent(EventOrderStatusChanged, map[string]any{
		"orderId": order.ID,
		"status":  order.Status,
	}))
}

// NotifyOrderReady announces a ready order to the kitchen and tells the
// table to come pick it up.
func (h *Hub) NotifyOrderReady(ctx context.Context, order *models.Order) {
	h.broadcastRole(enums.ClientRoleKitchen, EventOrderReady, encodeEvent(EventOrderReady, map[string]any{
		"order": order,
	}))
	h.broadcastTable(order.TableNumber, EventOrderReady, encodeEvent(EventOrderReady, map[string]any{
		"orderId": order.ID,
		"message": OrderReadyMessage,
	}))
}

// BroadcastAll pushes an event to every connected client regardless of
// role or table.
func (h *Hub) BroadcastAll(eventType string, fields map[string]any) {
	payload := encodeEvent(eventType, fields)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, group := range h.clients {
		for c := range group {
			h.trySend(c, eventType, payload)
		}
	}
}

func (h *Hub) broadcastRole(role enums.ClientRole, eventType string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[role] {
		h.trySend(c, eventType, payload)
	}
}

func (h *Hub) broadcastTable(tableNumber int, eventType string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[enums.ClientRoleTable] {
		if c.TableNumber == nil || *c.TableNumber != tableNumber {
			continue
		}
		h.trySend(c, eventType, payload)
	}
}

// trySend queues the payload without blocking. A full queue means the
// client is too slow to keep up; the event is dropped for that client.
func (h *Hub) trySend(c *Client, eventType string, payload []byte) {
	select {
	case c.send <- payload:
		h.metrics.IncDelivered(eventType)
	default:
		h.metrics.IncSkipped(eventType)
		if h.logg != nil {
			ctx := h.logg.WithClientID(context.Background(), c.ID)
			h.logg.Warn(ctx, "send queue full, dropping event")
		}
	}
}
