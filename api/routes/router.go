package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/shopline-backend/api/controllers"
	"github.com/angelmondragon/shopline-backend/api/middleware"
	"github.com/angelmondragon/shopline-backend/internal/auth"
	cartsvc "github.com/angelmondragon/shopline-backend/internal/cart"
	checkoutsvc "github.com/angelmondragon/shopline-backend/internal/checkout"
	product "github.com/angelmondragon/shopline-backend/internal/products"
	profilesvc "github.com/angelmondragon/shopline-backend/internal/profile"
	"github.com/angelmondragon/shopline-backend/pkg/auth/session"
	"github.com/angelmondragon/shopline-backend/pkg/config"
	"github.com/angelmondragon/shopline-backend/pkg/db"
	"github.com/angelmondragon/shopline-backend/pkg/logger"
	"github.com/angelmondragon/shopline-backend/pkg/metrics"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DBPinger        db.Pinger
	SessionChecker  session.AccessSessionChecker
	Metrics         *metrics.HTTPMetrics
	MetricsRegistry *prometheus.Registry
	AuthService     auth.Service
	RegisterService auth.RegisterService
	ProductService  product.Service
	CartService     cartsvc.Service
	CheckoutService checkoutsvc.Service
	ProfileService  profilesvc.Service
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(params.Metrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, params.DBPinger, logg))
	})

	if params.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(params.RegisterService, logg))
		r.Post("/login", controllers.AuthLogin(params.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(params.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, params.SessionChecker, logg)).
			Post("/logout", controllers.AuthLogout(params.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, params.SessionChecker, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(params.ProductService, logg))
			r.Post("/", controllers.ProductsCreate(params.ProductService, logg))
			r.Get("/{productId}", controllers.ProductsGet(params.ProductService, logg))
		})

		r.Post("/cart/items", controllers.CartAddItem(params.CartService, logg))

		r.Route("/carts/{cartId}", func(r chi.Router) {
			r.Get("/", controllers.CartGet(params.CartService, logg))
			r.Post("/items", controllers.CartAddLine(params.CartService, logg))
			r.Post("/checkout", controllers.Checkout(params.CheckoutService, logg))
		})

		r.Get("/users/{userId}/profile", controllers.UserProfile(params.ProfileService, logg))
	})

	return r
}
