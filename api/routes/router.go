package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/desrlabs/desr-backend/api/controllers"
	"github.com/desrlabs/desr-backend/api/middleware"
	"github.com/desrlabs/desr-backend/internal/menu"
	"github.com/desrlabs/desr-backend/internal/notify"
	"github.com/desrlabs/desr-backend/internal/orders"
	"github.com/desrlabs/desr-backend/internal/tables"
	"github.com/desrlabs/desr-backend/pkg/config"
	"github.com/desrlabs/desr-backend/pkg/db"
	"github.com/desrlabs/desr-backend/pkg/logger"
)

// Deps bundles everything the router serves.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Hub      *notify.Hub
	Orders   orders.Service
	Menu     menu.Service
	Tables   tables.Service
	Registry *prometheus.Registry
	Started  time.Time
}

// NewRouter wires the full HTTP surface: the JSON API, the websocket
// endpoint and the metrics endpoint.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	logg := deps.Logger

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/api/health", controllers.Health(deps.Started, deps.Hub, deps.DB, logg))

	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", controllers.OrdersCreate(deps.Orders, logg))
		r.Get("/", controllers.OrdersList(deps.Orders, logg))
		r.Get("/active", controllers.OrdersActive(deps.Orders, logg))
		r.Get("/stats", controllers.OrdersStats(deps.Orders, logg))
		r.Get("/{id}", controllers.OrdersDetail(deps.Orders, logg))
		r.Patch("/{id}/status", controllers.OrdersUpdateStatus(deps.Orders, logg))
		r.Delete("/{id}", controllers.OrdersCancel(deps.Orders, logg))
	})

	r.Route("/api/menu", func(r chi.Router) {
		defaultLanguage := "en"
		if deps.Config != nil {
			defaultLanguage = deps.Config.Menu.DefaultLanguage
		}
		r.Get("/", controllers.MenuList(deps.Menu, logg))
		r.Get("/sdk", controllers.MenuSDK(deps.Menu, defaultLanguage, logg))
		r.Get("/category/{category}", controllers.MenuByCategory(deps.Menu, logg))
		r.Get("/{id}", controllers.MenuDetail(deps.Menu, logg))
		r.Post("/", controllers.MenuCreate(deps.Menu, logg))
		r.Put("/{id}", controllers.MenuUpdate(deps.Menu, logg))
		r.Patch("/{id}/availability", controllers.MenuToggleAvailability(deps.Menu, logg))
		r.Delete("/{id}", controllers.MenuDelete(deps.Menu, logg))
	})

	r.Route("/api/tables", func(r chi.Router) {
		r.Get("/", controllers.TablesList(deps.Tables, logg))
		r.Get("/occupied", controllers.TablesOccupied(deps.Tables, logg))
		r.Get("/{number}", controllers.TablesStatus(deps.Tables, logg))
		r.Post("/{number}/session", controllers.TablesStartSession(deps.Tables, logg))
		r.Delete("/{number}/session", controllers.TablesEndSession(deps.Tables, logg))
		r.Get("/{number}/orders", controllers.TablesOrders(deps.Orders, logg))
		r.Post("/{number}/validate", controllers.TablesValidateSession(deps.Tables, logg))
	})

	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		notify.ServeWS(deps.Hub, w, r)
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	return r
}
