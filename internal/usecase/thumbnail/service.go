package thumbnail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/marcos-nsantos/resize-cache/internal/adapter/storage"
	"github.com/marcos-nsantos/resize-cache/internal/domain"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
	"github.com/marcos-nsantos/resize-cache/internal/pkg/pathguard"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/factory"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/resize"
)

const (
	MsgDisabled       = "Thumbnails are disabled on this system."
	MsgMissingFile    = "Missing file parameter."
	MsgInvalidName    = "Invalid file name"
	MsgInvalidPath    = "Invalid path"
	MsgFileNotFound   = "File not found"
	MsgNotAllowedType = "No allowed file type."
	MsgSVG            = "It is a svg."
	MsgNotAnImage     = "Not an image."
)

type Config struct {
	Enabled         bool
	ProjectRoot     string
	UploadPath      string
	CacheDir        string
	ValidFileTypes  []string
	InlineMaxWidth  int
	InlineMaxHeight int
}

type Service struct {
	fs      afero.Fs
	factory ImageFactory
	mirror  storage.ImageStorage
	cfg     Config
	group   singleflight.Group
	logger  *zap.Logger
}

// NewService creates the delivery use case. mirror may be nil.
func NewService(fsys afero.Fs, imageFactory ImageFactory, mirror storage.ImageStorage, cfg Config, logger *zap.Logger) *Service {
	types := make([]string, 0, len(cfg.ValidFileTypes))
	for _, t := range cfg.ValidFileTypes {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			types = append(types, t)
		}
	}
	cfg.ValidFileTypes = types

	return &Service{
		fs:      fsys,
		factory: imageFactory,
		mirror:  mirror,
		cfg:     cfg,
		logger:  logger,
	}
}

type Request struct {
	Src    string
	Width  int
	Height int
	Mode   string
	Zoom   int
}

type Result struct {
	Parameter valueobject.ResizeConfiguration
	// Src is the project-relative, URL-escaped path of the generated image.
	Src  string
	Load []byte
	URL  string
}

func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if !s.cfg.Enabled {
		return nil, domain.NewError(domain.ErrDisabled, "thumbnail", MsgDisabled, nil)
	}

	path, err := s.resolveSource(req.Src)
	if err != nil {
		return nil, err
	}

	size, param, err := sizeFromRequest(req)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s|%d|%d|%s|%d", path, param.Width, param.Height, req.Mode, param.ZoomLevel)
	// The shared call outlives any single caller; each caller stops waiting
	// on its own cancellation.
	ch := s.group.DoChan(key, func() (any, error) {
		return s.factory.Create(context.WithoutCancel(ctx), factory.CreateInput{Path: path, Size: size})
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		if errors.Is(err, domain.ErrDecode) {
			return nil, domain.NewError(domain.ErrDecode, "thumbnail", MsgNotAnImage, err)
		}
		return nil, err
	}
	if shared {
		s.logger.Debug("shared thumbnail result", zap.String("path", path))
	}
	img := v.(*resize.Result)

	src, err := s.relativeURL(img.Path)
	if err != nil {
		return nil, domain.Storage("thumbnail", err)
	}

	result := &Result{Parameter: param, Src: src}

	if s.shouldInline(img.Dimensions) {
		data, err := afero.ReadFile(s.fs, img.Path)
		if err != nil {
			return nil, domain.Storage("read thumbnail", err)
		}
		result.Load = data
	}

	if s.mirror != nil && img.Status != resize.StatusOriginal {
		result.URL = s.mirrorImage(ctx, img.Path)
	}

	return result, nil
}

// resolveSource decodes src and runs the file checks. It returns the absolute
// path of the source image.
func (s *Service) resolveSource(encoded string) (string, error) {
	if encoded == "" {
		return "", domain.InvalidInput("thumbnail", MsgMissingFile)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", domain.InvalidInput("thumbnail", MsgInvalidName)
	}
	src := string(raw)

	if err := pathguard.Check(src, s.cfg.UploadPath); err != nil {
		if errors.Is(err, pathguard.ErrInvalidPath) {
			return "", domain.InvalidInput("thumbnail", MsgInvalidPath)
		}
		return "", domain.InvalidInput("thumbnail", MsgInvalidName)
	}

	path := filepath.Join(s.cfg.ProjectRoot, filepath.FromSlash(src))
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return "", domain.Storage("thumbnail", err)
	}
	if !exists {
		return "", domain.NotFound("thumbnail", MsgFileNotFound, nil)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if len(s.cfg.ValidFileTypes) > 0 && !slices.Contains(s.cfg.ValidFileTypes, ext) {
		return "", domain.InvalidInput("thumbnail", MsgNotAllowedType)
	}
	if ext == "svg" || ext == "svgz" {
		return "", domain.InvalidInput("thumbnail", MsgSVG)
	}

	return path, nil
}

// sizeFromRequest keeps legacy position modes as a dimensions triple so the
// factory can derive the important part from them.
func sizeFromRequest(req Request) (factory.Size, valueobject.ResizeConfiguration, error) {
	if strings.Contains(req.Mode, "_") {
		param := valueobject.ResizeConfiguration{Width: req.Width, Height: req.Height, Mode: valueobject.ModeCrop}
		return factory.Dimensions{Width: req.Width, Height: req.Height, Mode: req.Mode}, param, nil
	}

	mode := valueobject.ModeProportional
	if req.Mode != "" {
		m, err := valueobject.ParseResizeMode(req.Mode)
		if err != nil {
			return nil, valueobject.ResizeConfiguration{}, domain.InvalidInput("thumbnail", err.Error())
		}
		mode = m
	}

	param, err := valueobject.NewResizeConfiguration(req.Width, req.Height, mode, req.Zoom)
	if err != nil {
		return nil, valueobject.ResizeConfiguration{}, domain.InvalidInput("thumbnail", err.Error())
	}
	return factory.Configuration{Config: param}, param, nil
}

func (s *Service) relativeURL(path string) (string, error) {
	rel, err := filepath.Rel(s.cfg.ProjectRoot, path)
	if err != nil {
		return "", err
	}
	return (&url.URL{Path: filepath.ToSlash(rel)}).EscapedPath(), nil
}

func (s *Service) shouldInline(dims valueobject.ImageDimensions) bool {
	if s.cfg.InlineMaxWidth > 0 && dims.Width > s.cfg.InlineMaxWidth {
		return false
	}
	if s.cfg.InlineMaxHeight > 0 && dims.Height > s.cfg.InlineMaxHeight {
		return false
	}
	return true
}

// mirrorImage uploads a cache entry once and returns its public URL. Failures
// are logged and leave the URL empty.
func (s *Service) mirrorImage(ctx context.Context, path string) string {
	rel, err := filepath.Rel(s.cfg.CacheDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	key := filepath.ToSlash(rel)

	exists, err := s.mirror.Exists(ctx, key)
	if err != nil {
		s.logger.Warn("mirror lookup failed", zap.String("key", key), zap.Error(err))
		return ""
	}

	if !exists {
		f, err := s.fs.Open(path)
		if err != nil {
			s.logger.Warn("mirror open failed", zap.String("path", path), zap.Error(err))
			return ""
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			s.logger.Warn("mirror stat failed", zap.String("path", path), zap.Error(err))
			return ""
		}

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		if err := s.mirror.Upload(ctx, key, f, contentType, info.Size()); err != nil {
			s.logger.Warn("mirror upload failed", zap.String("key", key), zap.Error(err))
			return ""
		}
	}

	return s.mirror.GetURL(key)
}
