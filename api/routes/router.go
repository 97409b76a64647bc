package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/industrahub/industrahub-backend/api/controllers"
	"github.com/industrahub/industrahub-backend/api/middleware"
	authsvc "github.com/industrahub/industrahub-backend/internal/auth"
	categorysvc "github.com/industrahub/industrahub-backend/internal/categories"
	mediasvc "github.com/industrahub/industrahub-backend/internal/media"
	productsvc "github.com/industrahub/industrahub-backend/internal/products"
	quotesvc "github.com/industrahub/industrahub-backend/internal/quotes"
	servicesvc "github.com/industrahub/industrahub-backend/internal/services"
	"github.com/industrahub/industrahub-backend/pkg/auth/session"
	"github.com/industrahub/industrahub-backend/pkg/config"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	"github.com/industrahub/industrahub-backend/pkg/logger"
	"github.com/industrahub/industrahub-backend/pkg/metrics"
	"github.com/industrahub/industrahub-backend/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	Database controllers.Pinger
	Redis    *redis.Client
	GCS      controllers.Pinger

	Sessions *session.Manager

	Auth       authsvc.Service
	Categories categorysvc.Service
	Products   productsvc.Service
	Media      mediasvc.Service
	Quotes     quotesvc.Service
	Services   servicesvc.Service
}

// NewRouter assembles the public and admin HTTP surfaces.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.Database,
			"redis":    deps.Redis,
			"gcs":      deps.GCS,
		}))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.PublicListProducts(deps.Products, logg))
		r.Get("/products/{id}", controllers.PublicGetProduct(deps.Products, logg))
		r.Get("/categories", controllers.PublicListCategories(deps.Categories, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(
				middleware.AuthRateLimit(signupPolicy, deps.Redis, logg),
				middleware.Idempotency(deps.Redis, logg),
			).Post("/signup", controllers.AuthSignup(deps.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
				Post("/login", controllers.AuthLogin(deps.Auth, cfg.JWT, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.Auth, cfg.JWT, logg))
			r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
			r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).
				Get("/me", controllers.AuthMe(deps.Auth, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))

			r.Post("/products", controllers.CreateProduct(deps.Products, deps.Media, cfg.Media, logg))

			r.Post("/quotes", controllers.QuoteCreate(deps.Quotes, logg))
			r.Get("/quotes/mine", controllers.QuoteListMine(deps.Quotes, logg))

			r.Route("/services", func(r chi.Router) {
				r.Post("/maintenance", controllers.ServiceCreateMaintenance(deps.Services, logg))
				r.Post("/consultancy", controllers.ServiceCreateConsultancy(deps.Services, logg))
				r.Post("/turnkey", controllers.ServiceCreateTurnkey(deps.Services, logg))
				r.Post("/acquisition", controllers.ServiceCreateAcquisition(deps.Services, logg))
				r.Post("/manpower", controllers.ServiceCreateManpower(deps.Services, logg))
				r.Post("/job-seekers", controllers.ServiceCreateJobSeeker(deps.Services, deps.Media, cfg.Media, logg))
				r.Get("/mine", controllers.ServiceListMine(deps.Services, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireAdmin(logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.RequirePermission(enums.PermissionManageProducts, logg))
			r.Get("/", controllers.AdminListProducts(deps.Products, logg))
			r.Get("/{id}", controllers.AdminGetProduct(deps.Products, logg))
			r.Patch("/{id}", controllers.AdminUpdateProduct(deps.Products, logg))
			r.Delete("/{id}", controllers.AdminDeleteProduct(deps.Products, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.RequirePermission(enums.PermissionManageCategories, logg))
			r.Post("/", controllers.AdminCreateCategory(deps.Categories, logg))
			r.Delete("/{id}", controllers.AdminDeleteCategory(deps.Categories, logg))
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Use(middleware.RequirePermission(enums.PermissionManageQuotes, logg))
			r.Get("/", controllers.AdminListQuotes(deps.Quotes, logg))
			r.Patch("/{id}/status", controllers.AdminUpdateQuoteStatus(deps.Quotes, logg))
		})

		r.Route("/submissions", func(r chi.Router) {
			r.Use(middleware.RequirePermission(enums.PermissionManageSubmissions, logg))
			r.Get("/", controllers.AdminListSubmissions(deps.Products, logg))
			r.Post("/{id}/approve", controllers.AdminApproveSubmission(deps.Products, logg))
			r.Post("/{id}/reject", controllers.AdminRejectSubmission(deps.Products, logg))
		})

		r.Route("/services", func(r chi.Router) {
			r.Use(middleware.RequirePermission(enums.PermissionManageServices, logg))
			r.Get("/", controllers.AdminListServices(deps.Services, logg))
			r.Get("/{id}", controllers.AdminGetService(deps.Services, logg))
			r.Patch("/{id}/status", controllers.AdminUpdateServiceStatus(deps.Services, logg))
			r.Patch("/{id}/assign", controllers.AdminAssignService(deps.Services, logg))
			r.Delete("/{id}", controllers.AdminDeleteService(deps.Services, logg))
		})
	})

	return r
}
