package notify

import (
	"encoding/json"
	"time"
)

// Event types pushed over the websocket.
const (
	EventConnected          = "connected"
	EventNewOrder           = "new_order"
	EventOrderStatusChanged = "order_status_changed"
	EventOrderReady         = "order_ready"
	EventPong               = "pong"
)

// Inbound message types the hub understands.
const (
	MessagePing      = "ping"
	MessageSubscribe = "subscribe"
)

// OrderReadyMessage is the human-readable text sent to the table when
// its order hits the ready state.
const OrderReadyMessage = "Your order is ready!"

// inboundMessage is the envelope table and kitchen clients send upstream.
type inboundMessage struct {
	Type   string   `json:"type"`
	Events []string `json:"events,omitempty"`
}

// encodeEvent renders an event envelope: the type, an RFC3339 timestamp
// and any event-specific fields flattened alongside them.
func encodeEvent(eventType string, fields map[string]any) []byte {
	payload := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		payload[k] = v
	}
	payload["type"] = eventType
	payload["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	raw, err := json.Marshal(payload)
	if err != nil {
		// Fields are built from known-marshalable values; an error here
		// means a programming mistake, not bad client input.
		return []byte(`{"type":"` + eventType + `"}`)
	}
	return raw
}
