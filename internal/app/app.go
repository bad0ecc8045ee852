package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/api-marketplace/internal/config"
	"github.com/prperemyshlev/api-marketplace/internal/handler"
	"github.com/prperemyshlev/api-marketplace/internal/repository"
	"github.com/prperemyshlev/api-marketplace/internal/service"
	"github.com/prperemyshlev/api-marketplace/internal/utils"
	"github.com/prperemyshlev/api-marketplace/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

type handlers struct {
	purchases *handler.PurchaseHandler
	catalog   *handler.CatalogHandler
	providers *handler.ProviderHandler
	reviews   *handler.ReviewHandler
	favorites *handler.FavoriteHandler
	usage     *handler.UsageHandler
	health    *HealthChecker
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	logger := infra.Logger()
	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry.Duration)
	apiCache := service.NewRedisAPICache(infra.Redis(), cfg.Cache.APITTL.Duration)
	rateLimiter := service.NewRateLimiter(infra.Redis())

	h := handlers{
		purchases: handler.NewPurchaseHandler(
			service.NewPurchaseService(repos.Payment, repos.Token, infra.Metrics(), logger),
			service.NewPaymentService(repos.Payment),
			logger,
		),
		catalog: handler.NewCatalogHandler(
			service.NewCatalogService(repos.API, repos.Provider, apiCache, logger),
			logger,
		),
		providers: handler.NewProviderHandler(
			service.NewProviderService(repos.Provider, repos.API, apiCache, logger),
			logger,
		),
		reviews: handler.NewReviewHandler(
			service.NewReviewService(repos.Review, repos.API, repos.Payment),
			logger,
		),
		favorites: handler.NewFavoriteHandler(
			service.NewFavoriteService(repos.Favorite, repos.API),
			logger,
		),
		usage: handler.NewUsageHandler(
			service.NewUsageService(repos.Token, repos.Payment, repos.UsageLog, infra.Metrics(), logger),
			logger,
		),
		health: NewHealthChecker(infra),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(handler.LoggerMiddleware(logger))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	rateLimit := handler.RateLimitMiddleware(
		rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		handler.IPBasedKey,
		logger,
	)
	setupRoutes(router, h, rateLimit, handler.ProviderAuthMiddleware(jwtManager), infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	h handlers,
	rateLimit gin.HandlerFunc,
	providerAuth gin.HandlerFunc,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", h.health.Handler)

	api := router.Group("/api/v1", rateLimit)
	{
		api.GET("/developers/purchased-apis", h.purchases.ListPurchasedAPIs)
		api.GET("/payments/history", h.purchases.PaymentHistory)

		api.GET("/apis", h.catalog.ListAPIs)
		api.GET("/apis/:id", h.catalog.GetAPI)
		api.GET("/apis/:id/reviews", h.reviews.List)
		api.POST("/apis/:id/reviews", h.reviews.Create)
		api.GET("/providers/:id", h.catalog.GetProvider)
		api.GET("/providers/:id/apis", h.catalog.ListProviderAPIs)

		api.GET("/favorites", h.favorites.List)
		api.POST("/favorites", h.favorites.Add)
		api.DELETE("/favorites/:apiId", h.favorites.Remove)

		api.POST("/tokens/consume", providerAuth, h.usage.Consume)
		api.GET("/usage", h.usage.Stats)

		api.POST("/providers", providerAuth, h.providers.Register)
		provider := api.Group("/provider", providerAuth)
		{
			provider.POST("/apis", h.providers.CreateAPI)
			provider.PATCH("/apis/:id/status", h.providers.SetAPIStatus)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

// Shutdown drains the HTTP server before closing the infrastructure it uses
func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := errors.Join(a.server.Shutdown(ctx), a.infra.Shutdown(ctx))
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
