// Package app assembles the resize pipeline shared by the HTTP server and the
// batch command.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/resize-cache/internal/adapter/repository"
	"github.com/marcos-nsantos/resize-cache/internal/adapter/repository/memory"
	"github.com/marcos-nsantos/resize-cache/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/config"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/database"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/storage"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/factory"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/resize"
)

type Imaging struct {
	Factory     *factory.Service
	ProjectRoot string
	CacheDir    string

	pool *pgxpool.Pool
}

// NewImaging builds the image factory. Metadata comes from postgres when the
// database is enabled and from an empty in-memory store otherwise.
func NewImaging(ctx context.Context, cfg *config.Config, fsys afero.Fs, logger *zap.Logger) (*Imaging, error) {
	root, err := cfg.Image.AbsProjectRoot()
	if err != nil {
		return nil, err
	}
	cacheDir, err := cfg.Image.AbsCacheDir()
	if err != nil {
		return nil, err
	}

	predefined, err := factory.ParsePredefinedSizes(cfg.Image.PredefinedSizes)
	if err != nil {
		return nil, fmt.Errorf("parsing predefined sizes: %w", err)
	}

	processor := storage.NewImageProcessor(storage.ProcessorConfig{
		JPEGQuality:         cfg.Image.JPEGQuality,
		PNGCompressionLevel: cfg.Image.PNGCompressionLevel,
	}, logger)

	resizer := resize.NewResizer(fsys, processor, resize.Config{
		CacheDir: cacheDir,
		FileMode: os.FileMode(cfg.Image.FileMode),
	}, logger)

	img := &Imaging{ProjectRoot: root, CacheDir: cacheDir}

	var (
		fileRepo repository.FileRepository
		sizeRepo repository.ImageSizeRepository
	)
	if cfg.Database.Enabled {
		pool, err := database.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		img.pool = pool

		if cfg.Database.MigrationsPath != "" {
			if err := database.RunMigrations(ctx, pool, fsys, cfg.Database.MigrationsPath); err != nil {
				pool.Close()
				return nil, err
			}
		}

		fileRepo = postgres.NewFileRepo(pool)
		sizeRepo = postgres.NewImageSizeRepo(pool)
	} else {
		logger.Info("database disabled, using in-memory metadata")
		repo := memory.NewMetadataRepo()
		fileRepo = repo
		sizeRepo = repo
	}

	img.Factory = factory.NewService(resizer, fileRepo, sizeRepo, factory.Config{
		ProjectRoot:     root,
		ValidExtensions: cfg.Image.ValidExtensions,
		BypassCache:     cfg.Image.BypassCache,
		EncoderOptions:  DefaultEncoderOptions(cfg.Image),
		PredefinedSizes: predefined,
	}, logger)

	return img, nil
}

func (i *Imaging) Close() {
	if i.pool != nil {
		i.pool.Close()
	}
}

func DefaultEncoderOptions(cfg config.ImageConfig) valueobject.EncoderOptions {
	return valueobject.EncoderOptions{
		valueobject.OptionJPEGQuality:         cfg.JPEGQuality,
		valueobject.OptionPNGCompressionLevel: cfg.PNGCompressionLevel,
		valueobject.OptionInterlace:           cfg.Interlace,
	}
}
