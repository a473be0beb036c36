package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/desrlabs/desr-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	readLimit = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Table clients connect from phones on the restaurant network; any
	// origin is accepted.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket connection registered with the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	ID          string
	Role        enums.ClientRole
	TableNumber *int

	// Event names the client asked for via subscribe. Recorded only;
	// filtering stays server-side per role and table.
	subscriptions []string
}

// readPump consumes inbound frames until the peer goes away.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.PongTimeout))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) && c.hub.logg != nil {
				ctx := c.hub.logg.WithClientID(context.Background(), c.ID)
				c.hub.logg.Warn(ctx, "websocket read failed")
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			if c.hub.logg != nil {
				ctx := c.hub.logg.WithClientID(context.Background(), c.ID)
				c.hub.logg.Warn(ctx, "invalid websocket message")
			}
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg inboundMessage) {
	switch msg.Type {
	case MessagePing:
		c.hub.trySend(c, EventPong, encodeEvent(EventPong, nil))
	case MessageSubscribe:
		c.subscriptions = msg.Events
	default:
		if c.hub.logg != nil {
			ctx := c.hub.logg.WithClientID(context.Background(), c.ID)
			c.hub.logg.Debug(ctx, "unknown websocket message type")
		}
	}
}

// writePump drains the send queue onto the wire and keeps the
// connection alive with periodic pings.
func (c *Client) writePump() {
	pingPeriod := c.hub.cfg.PongTimeout * 9 / 10
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWS upgrades the request and registers the connection with the
// hub. The role comes from ?type= (kitchen or client, defaulting to
// client) and table clients pass their table via ?table=.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if hub.logg != nil {
			hub.logg.Error(r.Context(), "websocket upgrade failed", err)
		}
		return
	}

	role := enums.ParseClientRole(r.URL.Query().Get("type"))
	var tableNumber *int
	if raw := r.URL.Query().Get("table"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			tableNumber = &n
		}
	}

	client := &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, hub.cfg.SendBuffer),
		ID:          role.String() + "_" + uuid.NewString(),
		Role:        role,
		TableNumber: tableNumber,
	}
	hub.register(client)

	hub.trySend(client, EventConnected, encodeEvent(EventConnected, map[string]any{
		"clientId":   client.ID,
		"clientType": client.Role,
	}))

	go client.writePump()
	go client.readPump()
}
