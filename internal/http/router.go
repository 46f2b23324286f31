package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/nexfest/festhub/internal/auth"
	"github.com/nexfest/festhub/internal/cache"
	"github.com/nexfest/festhub/internal/config"
	"github.com/nexfest/festhub/internal/http/handlers"
	"github.com/nexfest/festhub/internal/http/middlewares"
	"github.com/nexfest/festhub/internal/observability"
	"github.com/nexfest/festhub/internal/queue/redisclient"
	"github.com/nexfest/festhub/internal/repo/postgres"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Deps carries the process-level singletons the router wires together.
type Deps struct {
	Cfg      config.Config
	Log      *slog.Logger
	Pool     *pgxpool.Pool
	Prom     *observability.Prom
	Registry *prometheus.Registry
	Redis    *redisclient.Client
}

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Cfg.CORSOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(otelgin.Middleware("festhub-api"))

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	// health + metrics
	health := handlers.NewHealthHandler(d.Pool)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// repositories
	eventsRepo := postgres.NewEventsRepo(d.Pool, d.Prom)
	categoriesRepo := postgres.NewCategoriesRepo(d.Pool, d.Prom)
	concertsRepo := postgres.NewConcertsRepo(d.Pool, d.Prom)
	sponsorsRepo := postgres.NewSponsorsRepo(d.Pool, d.Prom)
	merchandiseRepo := postgres.NewMerchandiseRepo(d.Pool, d.Prom)
	ordersRepo := postgres.NewOrdersRepo(d.Pool, d.Prom)
	registrationsRepo := postgres.NewRegistrationsRepo(d.Pool, d.Prom)
	usersRepo := postgres.NewUsersRepo(d.Pool, d.Prom)
	lookupsRepo := postgres.NewLookupsRepo(d.Pool, d.Prom)
	analyticsRepo := postgres.NewAnalyticsRepo(d.Pool, d.Prom)
	jobsRepo := postgres.NewJobsRepo(d.Pool, d.Prom)

	catalogCache := cache.New(5 * time.Second)

	jwtManager := auth.NewManager(d.Cfg.JWTSecret, d.Cfg.AccessTTL)
	adminPolicy := auth.NewAdminPolicy(d.Cfg.AdminEmail)
	authMW := middlewares.NewAuthMiddleware(jwtManager)

	var nudger handlers.JobNudger
	if d.Redis != nil {
		nudger = d.Redis
	}

	// handlers
	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager)
	eventsHandler := handlers.NewEventsHandler(eventsRepo, catalogCache)
	categoriesHandler := handlers.NewCategoriesHandler(categoriesRepo, catalogCache)
	concertsHandler := handlers.NewConcertsHandler(concertsRepo, catalogCache)
	sponsorsHandler := handlers.NewSponsorsHandler(sponsorsRepo, catalogCache)
	merchandiseHandler := handlers.NewMerchandiseHandler(merchandiseRepo, catalogCache)
	ordersAdminHandler := handlers.NewOrdersAdminHandler(ordersRepo)
	registrationsAdminHandler := handlers.NewRegistrationsAdminHandler(registrationsRepo)
	usersAdminHandler := handlers.NewUsersAdminHandler(usersRepo)
	lookupsAdminHandler := handlers.NewLookupsAdminHandler(lookupsRepo, catalogCache)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsRepo)
	jobsAdminHandler := handlers.NewJobsAdminHandler(jobsRepo)

	catalogHandler := handlers.NewCatalogHandler(eventsRepo, categoriesRepo, concertsRepo,
		sponsorsRepo, merchandiseRepo, lookupsRepo, catalogCache)
	registrationsHandler := handlers.NewRegistrationsHandler(registrationsRepo, nudger)
	ordersHandler := handlers.NewOrdersHandler(ordersRepo, nudger)

	registerLimiter := middlewares.NewRateLimiter(10, time.Minute)
	loginLimiter := middlewares.NewRateLimiter(10, time.Minute)

	// auth
	r.POST("/auth/login", loginLimiter.Middleware(middlewares.KeyByIP), authHandler.Login)

	// public storefront
	api := r.Group("/api")
	{
		api.GET("/events", catalogHandler.ListEvents)
		api.GET("/events/:id", catalogHandler.GetEvent)
		api.GET("/categories", catalogHandler.ListCategories)
		api.GET("/concerts", catalogHandler.ListConcerts)
		api.GET("/sponsors", catalogHandler.ListSponsors)
		api.GET("/merchandise", catalogHandler.ListMerchandise)
		api.GET("/accommodation-types", catalogHandler.ListAccommodationTypes)
		api.GET("/payment-methods", catalogHandler.ListPaymentMethods)

		api.POST("/registrations", registerLimiter.Middleware(middlewares.KeyByIP), registrationsHandler.Create)
		api.POST("/orders", registerLimiter.Middleware(middlewares.KeyByIP), ordersHandler.Create)
	}

	// admin back office: reads are open, mutations sit behind the policy
	admin := r.Group("/api/admin")
	gate := []gin.HandlerFunc{authMW.RequireAdmin(adminPolicy)}
	{
		admin.GET("/events", eventsHandler.List)
		admin.POST("/events", append(gate, eventsHandler.Create)...)
		admin.PUT("/events", append(gate, eventsHandler.Update)...)
		admin.DELETE("/events", append(gate, eventsHandler.Delete)...)

		admin.GET("/categories", categoriesHandler.List)
		admin.POST("/categories", append(gate, categoriesHandler.Create)...)
		admin.PUT("/categories", append(gate, categoriesHandler.Update)...)
		admin.DELETE("/categories", append(gate, categoriesHandler.Delete)...)

		admin.GET("/concerts", concertsHandler.List)
		admin.POST("/concerts", append(gate, concertsHandler.Create)...)
		admin.PUT("/concerts", append(gate, concertsHandler.Update)...)
		admin.DELETE("/concerts", append(gate, concertsHandler.Delete)...)

		admin.GET("/artists", concertsHandler.ListArtists)
		admin.POST("/artists", append(gate, concertsHandler.CreateArtist)...)
		admin.PUT("/artists", append(gate, concertsHandler.UpdateArtist)...)
		admin.DELETE("/artists", append(gate, concertsHandler.DeleteArtist)...)

		admin.GET("/sponsors", sponsorsHandler.List)
		admin.POST("/sponsors", append(gate, sponsorsHandler.Create)...)
		admin.PUT("/sponsors", append(gate, sponsorsHandler.Update)...)
		admin.DELETE("/sponsors", append(gate, sponsorsHandler.Delete)...)

		admin.GET("/merchandise", merchandiseHandler.List)
		admin.POST("/merchandise", append(gate, merchandiseHandler.Create)...)
		admin.PUT("/merchandise", append(gate, merchandiseHandler.Update)...)
		admin.DELETE("/merchandise", append(gate, merchandiseHandler.Delete)...)

		admin.GET("/orders", ordersAdminHandler.List)
		admin.PUT("/orders", append(gate, ordersAdminHandler.Update)...)
		admin.DELETE("/orders", append(gate, ordersAdminHandler.Delete)...)

		admin.GET("/registrations", registrationsAdminHandler.List)
		admin.GET("/users", usersAdminHandler.List)
		admin.GET("/analytics", analyticsHandler.Dashboard)

		admin.GET("/accommodation-types", lookupsAdminHandler.ListAccommodationTypes)
		admin.POST("/accommodation-types", append(gate, lookupsAdminHandler.CreateAccommodationType)...)
		admin.DELETE("/accommodation-types", append(gate, lookupsAdminHandler.DeleteAccommodationType)...)

		admin.GET("/payment-methods", lookupsAdminHandler.ListPaymentMethods)
		admin.POST("/payment-methods", append(gate, lookupsAdminHandler.CreatePaymentMethod)...)
		admin.DELETE("/payment-methods", append(gate, lookupsAdminHandler.DeletePaymentMethod)...)

		admin.GET("/jobs", jobsAdminHandler.List)
		admin.GET("/jobs/:id", jobsAdminHandler.Get)
		admin.POST("/jobs/:id/retry", append(gate, jobsAdminHandler.Retry)...)
	}

	return r
}
