package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns the open origin policy: table clients connect from
// arbitrary phone browsers on the venue network, so every origin is
// allowed and no credentials are exchanged.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}).Handler
}
