package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/resize-cache/internal/adapter/handler"
	adapterstorage "github.com/marcos-nsantos/resize-cache/internal/adapter/storage"
	"github.com/marcos-nsantos/resize-cache/internal/app"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/cache"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/config"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/observability"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/server"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/storage"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/thumbnail"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format, "api")
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	fsys := afero.NewOsFs()

	// Resize pipeline
	imaging, err := app.NewImaging(ctx, cfg, fsys, logger)
	if err != nil {
		logger.Fatal("failed to set up image pipeline", zap.Error(err))
	}
	defer imaging.Close()

	// Optional CDN mirror
	var mirror adapterstorage.ImageStorage
	if cfg.S3.Enabled {
		s3Storage, err := storage.NewS3Storage(cfg.S3)
		if err != nil {
			logger.Fatal("failed to create s3 storage", zap.Error(err))
		}
		mirror = s3Storage
	}

	// Optional rate limiting
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit, logger)
	}

	// Use cases
	thumbnailSvc := thumbnail.NewService(fsys, imaging.Factory, mirror, thumbnail.Config{
		Enabled:         cfg.Thumbnail.Enabled,
		ProjectRoot:     imaging.ProjectRoot,
		UploadPath:      cfg.Image.UploadPath,
		CacheDir:        imaging.CacheDir,
		ValidFileTypes:  cfg.Thumbnail.ValidFileTypes,
		InlineMaxWidth:  cfg.Thumbnail.InlineMaxWidth,
		InlineMaxHeight: cfg.Thumbnail.InlineMaxHeight,
	}, logger)

	// Handlers
	thumbnailHandler := handler.NewThumbnailHandler(thumbnailSvc, cfg.Thumbnail.ErrorHTML, logger)

	// Router
	router := server.NewRouter(server.RouterConfig{
		ThumbnailHandler: thumbnailHandler,
		RateLimiter:      rateLimiter,
		Logger:           logger,
		Environment:      cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Handler:         router.Engine(),
		Logger:          logger,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
