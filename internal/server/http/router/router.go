package router

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/polkiloo/gymrat/internal/config"
	"github.com/polkiloo/gymrat/internal/metrics"
	"github.com/polkiloo/gymrat/internal/server/http/dto"
	"github.com/polkiloo/gymrat/internal/server/http/handlers"
	"github.com/polkiloo/gymrat/internal/server/http/middleware"
)

const metricsPath = "/metrics"

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.GymFacade, logger *slog.Logger, m *metrics.Metrics, cfg *config.Config) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidations(v); err != nil {
			return nil, err
		}
	}

	corsCfg := corsConfig(cfg.CORSOrigins)
	if err := corsCfg.Validate(); err != nil {
		return nil, fmt.Errorf("cors config: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(cors.New(corsCfg))
	engine.Use(middleware.DecompressRequest(cfg.MaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{metricsPath})))
	engine.Use(middleware.Timeout(cfg.RequestTimeout))

	memberHandler := handlers.NewMemberHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	members := engine.Group("/members")
	for _, root := range []string{"", "/"} {
		members.POST(root, memberHandler.Create)
		members.GET(root, memberHandler.List)
	}
	members.PUT("/:id", memberHandler.Update)
	members.DELETE("/:id", memberHandler.Delete)

	payments := engine.Group("/payments")
	for _, root := range []string{"", "/"} {
		payments.POST(root, paymentHandler.Create)
		payments.GET(root, paymentHandler.List)
	}
	payments.GET("/member/:id", paymentHandler.ByMember)
	payments.DELETE("/:id", paymentHandler.Delete)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET(metricsPath, gin.WrapH(m.Handler()))

	return engine, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, middleware.RequestIDHeader)
	c.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}
