package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/resize-cache/internal/adapter/handler"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/resize-cache/internal/pkg/httputil"
)

type Router struct {
	engine           *gin.Engine
	thumbnailHandler *handler.ThumbnailHandler
	rateLimiter      *middleware.RateLimiter
	logger           *zap.Logger
}

type RouterConfig struct {
	ThumbnailHandler *handler.ThumbnailHandler
	// RateLimiter is optional.
	RateLimiter *middleware.RateLimiter
	Logger      *zap.Logger
	Environment string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:           engine,
		thumbnailHandler: cfg.ThumbnailHandler,
		rateLimiter:      cfg.RateLimiter,
		logger:           cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		httputil.OK(c, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")
	{
		thumbnails := api.Group("/thumbnails")
		if r.rateLimiter != nil {
			thumbnails.Use(r.rateLimiter.Limit())
		}
		{
			thumbnails.GET("", r.thumbnailHandler.Generate)
			thumbnails.POST("", r.thumbnailHandler.Generate)
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
