package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ratewise/ratewise-backend/api/controllers"
	"github.com/ratewise/ratewise-backend/api/middleware"
	"github.com/ratewise/ratewise-backend/internal/auth"
	"github.com/ratewise/ratewise-backend/internal/ratings"
	"github.com/ratewise/ratewise-backend/internal/stats"
	"github.com/ratewise/ratewise-backend/internal/stores"
	"github.com/ratewise/ratewise-backend/internal/users"
	"github.com/ratewise/ratewise-backend/pkg/auth/session"
	"github.com/ratewise/ratewise-backend/pkg/config"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	"github.com/ratewise/ratewise-backend/pkg/logger"
	"github.com/ratewise/ratewise-backend/pkg/metrics"
	"github.com/ratewise/ratewise-backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles everything the router needs from cmd/api.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       pinger
	RedisPinger    pinger
	RateLimiter    *redis.Client
	SessionChecker session.AccessSessionChecker
	Registry       *prometheus.Registry
	HTTPMetrics    *metrics.HTTPMetrics

	AuthService    auth.Service
	UsersService   users.Service
	StoresService  stores.Service
	RatingsService ratings.Service
	StatsService   stats.Service
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	// a typed nil *redis.Client would slip past the middleware's nil check
	throttle := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if deps.RateLimiter == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, deps.RateLimiter, logg)
	}
	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(throttle(registerPolicy)).
			Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.With(throttle(loginPolicy)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.SessionChecker, logg)).
			Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleAdmin, logg))
			r.Get("/dashboard", controllers.AdminDashboard(deps.StatsService, logg))
			r.Get("/users", controllers.AdminListUsers(deps.UsersService, logg))
			r.Post("/users", controllers.AdminCreateUser(deps.UsersService, logg))
			r.Get("/users/{userId}", controllers.AdminGetUser(deps.UsersService, logg))
			r.Get("/stores", controllers.AdminListStores(deps.StoresService, logg))
			r.Post("/stores", controllers.AdminCreateStore(deps.StoresService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleUser, logg))
			r.Get("/stores", controllers.ListStores(deps.StoresService, logg))
			r.Post("/stores/{storeId}/rate", controllers.SubmitRating(deps.RatingsService, logg))
			r.Get("/stores/{storeId}/rating", controllers.GetUserRating(deps.RatingsService, logg))
		})

		r.Route("/store-owner", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleStoreOwner, logg))
			r.Get("/dashboard", controllers.OwnerDashboard(deps.RatingsService, logg))
			r.Get("/stats", controllers.OwnerStats(deps.RatingsService, logg))
		})
	})

	return r
}
