package controllers

import (
	"net/http"
	"time"

	"github.com/desrlabs/desr-backend/api/responses"
	"github.com/desrlabs/desr-backend/pkg/db"
	"github.com/desrlabs/desr-backend/pkg/logger"
)

// ClientCounter reports connected websocket clients by role.
type ClientCounter interface {
	Counts() map[string]int
}

// Health reports process liveness, uptime, the live websocket client
// counts and whether the datastore answers a ping.
func Health(started time.Time, hub ClientCounter, pinger db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		database := "ok"
		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				database = "error"
				if logg != nil {
					logg.Error(r.Context(), "health db ping failed", err)
				}
			}
		}

		var clients map[string]int
		if hub != nil {
			clients = hub.Counts()
		}

		responses.WriteSuccess(w, map[string]any{
			"status":           "ok",
			"timestamp":        time.Now().UTC().Format(time.RFC3339),
			"uptime":           time.Since(started).Seconds(),
			"websocketClients": clients,
			"database":         database,
		})
	}
}
