package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oversounds/tpp-backend/api/controllers"
	"github.com/oversounds/tpp-backend/api/middleware"
	"github.com/oversounds/tpp-backend/internal/cart"
	"github.com/oversounds/tpp-backend/internal/paymentmethods"
	"github.com/oversounds/tpp-backend/internal/purchases"
	"github.com/oversounds/tpp-backend/internal/storefront"
	"github.com/oversounds/tpp-backend/pkg/config"
	"github.com/oversounds/tpp-backend/pkg/db"
	"github.com/oversounds/tpp-backend/pkg/identity"
	"github.com/oversounds/tpp-backend/pkg/logger"
	"github.com/oversounds/tpp-backend/pkg/metrics"
	"github.com/oversounds/tpp-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	resolver identity.Resolver,
	httpMetrics *metrics.HTTPMetrics,
	cartService cart.Service,
	paymentService paymentmethods.Service,
	purchaseService purchases.Service,
	storeService storefront.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	var redisP db.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Handle("/metrics", httpMetrics.Handler())

	// The storefront is browsable without credentials.
	r.Get("/store", controllers.StoreList(storeService, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth, resolver, logg))

		r.Route("/cart", func(r chi.Router) {
			r.With(middleware.RequireScope("write:cart", logg)).Post("/", controllers.CartAdd(cartService, logg))
			r.With(middleware.RequireScope("read:cart", logg)).Get("/", controllers.CartList(cartService, logg))
			r.With(middleware.RequireScope("write:cart", logg)).Delete("/{productId}", controllers.CartRemove(cartService, logg))
		})

		r.Route("/payment", func(r chi.Router) {
			r.With(middleware.RequireScope("write:payments", logg)).Post("/", controllers.PaymentAdd(paymentService, logg))
			r.With(middleware.RequireScope("read:payments", logg)).Get("/", controllers.PaymentList(paymentService, logg))
			r.With(middleware.RequireScope("write:payments", logg)).Delete("/{paymentMethodId}", controllers.PaymentDelete(paymentService, logg))
		})

		r.Route("/purchase", func(r chi.Router) {
			r.With(middleware.RequireScope("write:purchases", logg)).Post("/", controllers.PurchaseCommit(purchaseService, logg))
			r.With(middleware.RequireScope("read:purchases", logg)).Get("/", controllers.PurchaseHistory(purchaseService, logg))
		})
	})

	return r
}
