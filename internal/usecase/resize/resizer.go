package resize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/resize-cache/internal/adapter/storage"
	"github.com/marcos-nsantos/resize-cache/internal/domain"
	"github.com/marcos-nsantos/resize-cache/internal/domain/entity"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
)

const (
	DefaultFileMode = os.FileMode(0o644)
	dirMode         = os.FileMode(0o755)
	tempPattern     = "img"
)

type Status string

const (
	StatusOriginal  Status = "original"
	StatusCached    Status = "cached"
	StatusGenerated Status = "generated"
)

type Result struct {
	Path       string
	Dimensions valueobject.ImageDimensions
	Status     Status
}

type Config struct {
	CacheDir string
	FileMode os.FileMode
}

type Resizer struct {
	fs        afero.Fs
	processor storage.ImageProcessor
	cacheDir  string
	fileMode  os.FileMode
	logger    *zap.Logger
}

func NewResizer(fsys afero.Fs, processor storage.ImageProcessor, cfg Config, logger *zap.Logger) *Resizer {
	mode := cfg.FileMode
	if mode == 0 {
		mode = DefaultFileMode
	}
	return &Resizer{
		fs:        fsys,
		processor: processor,
		cacheDir:  filepath.Clean(cfg.CacheDir),
		fileMode:  mode,
		logger:    logger,
	}
}

// Load reads the dimensions of the image at path.
func (r *Resizer) Load(ctx context.Context, path string) (*entity.Image, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NotFound("load", "file not found", err)
		}
		return nil, domain.Storage("load", err)
	}
	defer f.Close()

	dims, err := r.processor.Dimensions(f)
	if err != nil {
		return nil, err
	}

	return entity.NewImage(path, dims), nil
}

// Resize returns the image resized according to config, reusing a cached
// result when one exists.
func (r *Resizer) Resize(
	ctx context.Context,
	img *entity.Image,
	config valueobject.ResizeConfiguration,
	opts *valueobject.ResizeOptions,
) (*Result, error) {
	if opts == nil {
		opts = &valueobject.ResizeOptions{}
	}

	var (
		result *Result
		err    error
	)
	if img.Dimensions.IsUndefined() || (config.IsEmpty() && r.canSkipResize(img, opts)) {
		r.logger.Debug("skipping resize", zap.String("path", img.Path))
		result = originalResult(img)
	} else {
		result, err = r.processResize(ctx, img, config, opts)
		if err != nil {
			return nil, err
		}
	}

	if opts.TargetPath != "" {
		if err := r.copyTo(result.Path, opts.TargetPath); err != nil {
			return nil, err
		}
		result.Path = opts.TargetPath
	}

	return result, nil
}

func (r *Resizer) canSkipResize(img *entity.Image, opts *valueobject.ResizeOptions) bool {
	if !opts.SkipIfDimensionsMatch {
		return false
	}
	if img.Dimensions.Orientation != valueobject.OrientationNormal {
		return false
	}
	if format := opts.EncoderOptions.Format(); format != "" && format != extension(img.Path) {
		return false
	}
	return true
}

func (r *Resizer) processResize(
	ctx context.Context,
	img *entity.Image,
	config valueobject.ResizeConfiguration,
	opts *valueobject.ResizeOptions,
) (*Result, error) {
	coords := Calculate(config, img.Dimensions, img.ImportantPart)

	if r.canSkipResize(img, opts) && !img.Dimensions.Relative && coords.IsEqualTo(img.Dimensions.Size()) {
		r.logger.Debug("resize would have no effect", zap.String("path", img.Path))
		return originalResult(img), nil
	}

	info, err := r.fs.Stat(img.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NotFound("resize", "file not found", err)
		}
		return nil, domain.Storage("stat source", err)
	}

	key := CacheKey{
		SourcePath:      img.Path,
		CacheDir:        r.cacheDir,
		ModTime:         info.ModTime().Unix(),
		CoordinatesHash: coords.Hash(),
		EncoderOptions:  opts.EncoderOptions,
	}
	cachePath := filepath.Join(r.cacheDir, key.Path())

	result := &Result{
		Path:       cachePath,
		Dimensions: valueobject.NewImageDimensions(coords.CropSize.Width, coords.CropSize.Height, valueobject.OrientationNormal, false),
	}

	if !opts.BypassCache {
		exists, err := afero.Exists(r.fs, cachePath)
		if err != nil {
			return nil, domain.Storage("check cache", err)
		}
		if exists {
			r.logger.Debug("cache hit", zap.String("path", img.Path), zap.String("cache_path", cachePath))
			result.Status = StatusCached
			return result, nil
		}
	}

	if err := r.executeResize(ctx, img, coords, cachePath, opts); err != nil {
		return nil, err
	}

	r.logger.Debug("generated image", zap.String("path", img.Path), zap.String("cache_path", cachePath))
	result.Status = StatusGenerated
	return result, nil
}

func (r *Resizer) executeResize(
	ctx context.Context,
	img *entity.Image,
	coords valueobject.ResizeCoordinates,
	path string,
	opts *valueobject.ResizeOptions,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	encoderOpts := opts.EncoderOptions.Clone()
	if encoderOpts.Format() == "" {
		encoderOpts[valueobject.OptionFormat] = extension(path)
	}

	src, err := r.fs.Open(img.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NotFound("resize", "file not found", err)
		}
		return domain.Storage("open source", err)
	}
	defer src.Close()

	return r.writeAtomic(path, func(w io.Writer) error {
		return r.processor.Process(src, w, coords, encoderOpts)
	})
}

// writeAtomic writes into a temporary file next to path and renames it into
// place. The temporary file is removed on every failure.
func (r *Resizer) writeAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := r.fs.MkdirAll(dir, dirMode); err != nil {
		return domain.Storage("create directory", err)
	}

	tmp, err := afero.TempFile(r.fs, dir, tempPattern)
	if err != nil {
		return domain.Storage("create temp file", err)
	}
	tmpPath := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			_ = tmp.Close()
			if rmErr := r.fs.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				r.logger.Warn("failed to remove temp file", zap.String("path", tmpPath), zap.Error(rmErr))
			}
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return domain.Storage("close temp file", err)
	}
	if err := r.fs.Chmod(tmpPath, r.fileMode); err != nil {
		return domain.Storage("chmod temp file", err)
	}
	if err := r.fs.Rename(tmpPath, path); err != nil {
		return domain.Storage("rename temp file", err)
	}
	renamed = true

	return nil
}

func (r *Resizer) copyTo(src, target string) error {
	in, err := r.fs.Open(src)
	if err != nil {
		return domain.Storage("open result", err)
	}
	defer in.Close()

	return r.writeAtomic(target, func(w io.Writer) error {
		if _, err := io.Copy(w, in); err != nil {
			return domain.Storage("copy to target", fmt.Errorf("copying %s: %w", src, err))
		}
		return nil
	})
}

func originalResult(img *entity.Image) *Result {
	return &Result{
		Path:       img.Path,
		Dimensions: img.Dimensions,
		Status:     StatusOriginal,
	}
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
