// Package api wires the admin HTTP API.
package api

import (
	"tgorders/api/accesslevel"
	"tgorders/api/goods"
	"tgorders/api/health"
	"tgorders/api/market"
	"tgorders/api/middleware"
	"tgorders/api/order"
	"tgorders/api/user"
	"tgorders/config"
	"tgorders/domain/shared"
	"tgorders/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type Router struct {
	engine     *gin.Engine
	config     *config.Config
	factory    shared.UnitOfWorkFactory
	dispatcher *shared.EventDispatcher
	health     *health.Controller
}

func NewRouter(cfg *config.Config, factory shared.UnitOfWorkFactory, dispatcher *shared.EventDispatcher, ping health.Pinger) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// order matters: the request id is needed by everything after it
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:     engine,
		config:     cfg,
		factory:    factory,
		dispatcher: dispatcher,
		health:     health.NewController(cfg, ping),
	}
}

func (r *Router) SetupRoutes() {
	r.health.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := r.engine.Group("/api/v1", middleware.AuthMiddleware(r.factory, r.dispatcher))
	{
		goods.NewController().RegisterRoutes(apiGroup)
		market.NewController().RegisterRoutes(apiGroup)
		user.NewController().RegisterRoutes(apiGroup)
		accesslevel.NewController().RegisterRoutes(apiGroup)
		order.NewController().RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/health",
		})
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
