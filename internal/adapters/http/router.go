package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rafaelleal24/smartpantry/internal/adapters/config"
	"github.com/rafaelleal24/smartpantry/internal/adapters/http/controllers"
	"github.com/rafaelleal24/smartpantry/internal/adapters/http/middleware"
)

type Router struct {
	healthController  *controllers.HealthController
	productController *controllers.ProductController
	sweepController   *controllers.SweepController
	rateLimiter       middleware.RateLimiter
	auth              config.AuthConfig
	registry          *prometheus.Registry
}

func NewRouter(
	healthController *controllers.HealthController,
	productController *controllers.ProductController,
	sweepController *controllers.SweepController,
	rateLimiter middleware.RateLimiter,
	auth config.AuthConfig,
	registry *prometheus.Registry,
) *Router {
	return &Router{
		healthController:  healthController,
		productController: productController,
		sweepController:   sweepController,
		rateLimiter:       rateLimiter,
		auth:              auth,
		registry:          registry,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	rl := r.rateLimiter
	httpMetrics := middleware.NewHTTPMetrics(r.registry)
	authenticate := middleware.Authenticate(r.auth.JWTSecret)

	apiGroup := router.Group("/api")
	v1Group := apiGroup.Group("/v1")
	{
		v1Group.Use(middleware.RequestID(), middleware.LogRequest(), httpMetrics.Handler())
		v1Group.GET("/health", r.healthController.Health)
		v1Group.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})))

		products := v1Group.Group("/products", authenticate)
		products.GET("", r.productController.List)
		products.GET("/status/:status", r.productController.ListByStatus)
		products.GET("/:id", r.productController.Get)
		products.POST("", middleware.RateLimit(rl, 30, 1*time.Minute), r.productController.Create)
		products.PUT("/:id", r.productController.Update)
		products.DELETE("/:id", r.productController.Delete)

		v1Group.POST("/sweeps", authenticate, middleware.RateLimit(rl, 2, 1*time.Minute), r.sweepController.Run)
	}
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	engine := gin.New()
	engine.Use(gin.Recovery())
	r.SetupRoutes(engine)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
