package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gobrick/brickpool-backend/api/controllers"
	"github.com/gobrick/brickpool-backend/api/middleware"
	"github.com/gobrick/brickpool-backend/pkg/auth/session"
	"github.com/gobrick/brickpool-backend/pkg/config"
	"github.com/gobrick/brickpool-backend/pkg/db"
	"github.com/gobrick/brickpool-backend/pkg/logger"
	"github.com/gobrick/brickpool-backend/pkg/metrics"
	"github.com/gobrick/brickpool-backend/pkg/redis"
)

// Deps carries everything the router wires into its handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DBPinger        db.Pinger
	RedisPinger     redis.Pinger
	Sessions        session.AccessSessionChecker
	IdentityMirror  middleware.IdentityMirror
	Metrics         *metrics.HTTPMetrics
	MetricsGatherer prometheus.Gatherer

	PoolService    controllers.PoolService
	OfferService   offerService
	ListService    listService
	CatalogService controllers.CatalogService
}

type offerService interface {
	controllers.ReconcileService
	controllers.OwnerSummaryService
	controllers.OfferedService
}

type listService interface {
	controllers.ListService
	controllers.LotService
}

// NewRouter assembles the HTTP surface of the marketplace.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/pool", func(r chi.Router) {
			r.With(middleware.OptionalAuth(cfg.JWT, deps.Sessions, deps.IdentityMirror, logg)).
				Get("/lots", controllers.PoolLots(deps.PoolService, logg))
			r.With(middleware.Auth(cfg.JWT, deps.Sessions, deps.IdentityMirror, logg)).
				Post("/lots/{lotID}/offer", controllers.PoolOffer(deps.OfferService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, deps.IdentityMirror, logg))

			r.Route("/lists", func(r chi.Router) {
				r.Get("/", controllers.ListsList(deps.ListService, logg))
				r.Post("/", controllers.ListsCreate(deps.ListService, logg))
				r.Route("/{listID}", func(r chi.Router) {
					r.Patch("/visibility", controllers.ListVisibility(deps.ListService, logg))
					r.Delete("/", controllers.ListDelete(deps.ListService, logg))
					r.Get("/lots", controllers.ListLots(deps.ListService, logg))
					r.Post("/lots", controllers.ListLotsCreate(deps.ListService, logg))
					r.Get("/offers", controllers.ListOffers(deps.OfferService, logg))
				})
			})

			r.Route("/lots/{lotID}", func(r chi.Router) {
				r.Patch("/", controllers.LotUpdate(deps.ListService, logg))
				r.Delete("/", controllers.LotDelete(deps.ListService, logg))
			})

			r.Get("/offers/mine", controllers.OffersMine(deps.OfferService, logg))

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/parts", controllers.CatalogSearch(deps.CatalogService, logg))
				r.Get("/parts-by-num", controllers.CatalogPartsByNum(deps.CatalogService, logg))
				r.Post("/part-images", controllers.CatalogPartImages(deps.CatalogService, logg))
			})
		})
	})

	return r
}
