package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aurenecom/storefront-backend/api/controllers"
	"github.com/aurenecom/storefront-backend/api/middleware"
	"github.com/aurenecom/storefront-backend/internal/auth"
	cartsvc "github.com/aurenecom/storefront-backend/internal/cart"
	"github.com/aurenecom/storefront-backend/internal/catalog"
	"github.com/aurenecom/storefront-backend/internal/customers"
	"github.com/aurenecom/storefront-backend/internal/favorites"
	"github.com/aurenecom/storefront-backend/internal/orders"
	"github.com/aurenecom/storefront-backend/internal/push"
	"github.com/aurenecom/storefront-backend/pkg/auth/session"
	"github.com/aurenecom/storefront-backend/pkg/config"
	"github.com/aurenecom/storefront-backend/pkg/db"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	"github.com/aurenecom/storefront-backend/pkg/logger"
	"github.com/aurenecom/storefront-backend/pkg/metrics"
	"github.com/aurenecom/storefront-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. Optional entries may be
// nil; the affected routes then answer with an internal error instead of
// panicking at startup.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Registry *prometheus.Registry
	Metrics  *metrics.HTTPMetrics

	SessionChecker   session.AccessSessionChecker
	ApprovalResolver *customers.Resolver

	AuthService     auth.Service
	RegisterService auth.RegisterService
	CatalogService  catalog.Service
	CartService     cartsvc.Service
	Favorites       favorites.Service
	OrdersService   orders.Service
	Customers       customers.Service
	PushService     push.Service
}

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
		middleware.DeviceID(),
	)

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

	passthrough := func(next http.Handler) http.Handler { return next }
	idempotency := passthrough
	rateLimit := func(middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler { return passthrough }
	if deps.Redis != nil {
		idempotency = middleware.Idempotency(deps.Redis, logg)
		rateLimit = func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
			return middleware.AuthRateLimit(policy, deps.Redis, logg)
		}
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(rateLimit(loginPolicy)).
				Post("/login", controllers.AuthLogin(deps.AuthService, logg))
			r.With(
				rateLimit(registerPolicy),
				idempotency,
			).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
			r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", controllers.CatalogCategories(deps.CatalogService, logg))
			r.Get("/categories/{categoryID}/subcategories", controllers.CatalogSubcategories(deps.CatalogService, logg))
			r.Get("/products", controllers.CatalogProducts(deps.CatalogService, logg))
			r.Get("/products/{productID}", controllers.CatalogProduct(deps.CatalogService, logg))
			r.Get("/banners", controllers.CatalogBanners(deps.CatalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.CartService, logg))
			r.Delete("/", controllers.CartClear(deps.CartService, logg))
			r.Post("/items", controllers.CartAddItem(deps.CartService, logg))
			r.Put("/items/{productID}", controllers.CartUpdateQuantity(deps.CartService, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(deps.CartService, logg))
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", controllers.FavoritesList(deps.Favorites, logg))
			r.Post("/", controllers.FavoritesAdd(deps.Favorites, logg))
			r.Post("/toggle", controllers.FavoritesToggle(deps.Favorites, logg))
			r.Delete("/", controllers.FavoritesClear(deps.Favorites, logg))
			r.Delete("/{productID}", controllers.FavoritesRemove(deps.Favorites, logg))
		})

		r.With(
			middleware.OptionalAuth(cfg.JWT, deps.SessionChecker, logg),
			middleware.RequireApproved(deps.ApprovalResolver, logg),
			idempotency,
		).Post("/checkout", controllers.Checkout(deps.OrdersService, logg))

		r.Route("/push/tokens", func(r chi.Router) {
			r.With(
				middleware.OptionalAuth(cfg.JWT, deps.SessionChecker, logg),
				idempotency,
			).Post("/", controllers.PushRegisterToken(deps.PushService, logg))
			r.Delete("/", controllers.PushUnregisterToken(deps.PushService, logg))
			r.With(middleware.Auth(cfg.JWT, deps.SessionChecker, logg)).
				Post("/claim", controllers.PushClaimToken(deps.PushService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

			r.Route("/customers/me", func(r chi.Router) {
				r.Get("/", controllers.CustomerMe(deps.Customers, logg))
				r.Put("/", controllers.CustomerUpdateMe(deps.Customers, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.MyOrders(deps.OrdersService, logg))
				r.Get("/{orderID}", controllers.MyOrder(deps.OrdersService, logg))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.AdminListCategories(deps.CatalogService, logg))
				r.Post("/", controllers.AdminCreateCategory(deps.CatalogService, logg))
				r.Put("/{categoryID}", controllers.AdminUpdateCategory(deps.CatalogService, logg))
				r.Delete("/{categoryID}", controllers.AdminDeleteCategory(deps.CatalogService, logg))
			})

			r.Route("/subcategories", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateSubcategory(deps.CatalogService, logg))
				r.Put("/{subcategoryID}", controllers.AdminUpdateSubcategory(deps.CatalogService, logg))
				r.Delete("/{subcategoryID}", controllers.AdminDeleteSubcategory(deps.CatalogService, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(deps.CatalogService, logg))
				r.Post("/", controllers.AdminCreateProduct(deps.CatalogService, logg))
				r.Put("/{productID}", controllers.AdminUpdateProduct(deps.CatalogService, logg))
				r.Delete("/{productID}", controllers.AdminDeleteProduct(deps.CatalogService, logg))
			})

			r.Route("/banners", func(r chi.Router) {
				r.Get("/", controllers.AdminListBanners(deps.CatalogService, logg))
				r.Post("/", controllers.AdminCreateBanner(deps.CatalogService, logg))
				r.Put("/{bannerID}", controllers.AdminUpdateBanner(deps.CatalogService, logg))
				r.Delete("/{bannerID}", controllers.AdminDeleteBanner(deps.CatalogService, logg))
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", controllers.AdminListCustomers(deps.Customers, logg))
				r.Put("/{customerID}/status", controllers.AdminSetCustomerStatus(deps.Customers, logg))
				r.Delete("/{customerID}", controllers.AdminDeleteCustomer(deps.Customers, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(deps.OrdersService, logg))
				r.Get("/{orderID}", controllers.AdminGetOrder(deps.OrdersService, logg))
				r.Put("/{orderID}/status", controllers.AdminSetOrderStatus(deps.OrdersService, logg))
				r.Put("/{orderID}/payment-status", controllers.AdminSetOrderPaymentStatus(deps.OrdersService, logg))
				r.Delete("/{orderID}", controllers.AdminDeleteOrder(deps.OrdersService, logg))
			})

			r.Post("/push/broadcast", controllers.AdminBroadcast(deps.PushService, logg))
		})
	})

	return r
}
