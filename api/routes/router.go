package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rhinostock/inventario-backend/api/controllers"
	"github.com/rhinostock/inventario-backend/api/middleware"
	"github.com/rhinostock/inventario-backend/internal/identity"
	"github.com/rhinostock/inventario-backend/internal/inventory"
	"github.com/rhinostock/inventario-backend/pkg/auth/session"
	"github.com/rhinostock/inventario-backend/pkg/config"
	"github.com/rhinostock/inventario-backend/pkg/db"
	"github.com/rhinostock/inventario-backend/pkg/logger"
	"github.com/rhinostock/inventario-backend/pkg/metrics"
	"github.com/rhinostock/inventario-backend/pkg/redis"
	"github.com/rhinostock/inventario-backend/pkg/search"
	"github.com/rhinostock/inventario-backend/web"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	IdentitySvc    identity.Service
	InventorySvc   inventory.Service
	SearchClient   *search.Client
	WebHandler     *web.Handler
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(),
	)

	var redisPinger redis.Pinger
	if d.Redis != nil {
		redisPinger = d.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, redisPinger))
	})

	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	}

	identityMW := middleware.Identity(cfg.JWT, d.IdentitySvc, d.SessionChecker, logg)

	searchLimiter := func(next http.Handler) http.Handler { return next }
	if d.Redis != nil {
		searchLimiter = middleware.SearchRateLimit(cfg.SearchLimiter, d.Redis, logg)
	}

	r.Route("/api/inventory", func(r chi.Router) {
		r.Use(identityMW)

		r.With(
			middleware.RequireSession(logg),
			searchLimiter,
		).Get("/search", controllers.InventorySearch(d.SearchClient, cfg.Search, logg))

		r.Get("/", controllers.InventoryList(d.InventorySvc, logg))
		r.Post("/", controllers.InventoryCreate(d.InventorySvc, logg))
		r.Patch("/{itemId}", controllers.InventoryUpdate(d.InventorySvc, logg))
		r.Delete("/{itemId}", controllers.InventoryDelete(d.InventorySvc, logg))
	})

	if d.WebHandler != nil {
		r.Group(func(r chi.Router) {
			r.Use(identityMW)
			r.Get("/", d.WebHandler.CreateForm)
			r.Get("/lista-inventario", d.WebHandler.ListPage)
		})
		r.Handle("/static/*", web.StaticHandler())
	}

	return r
}
