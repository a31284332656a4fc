package factory

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/resize-cache/internal/adapter/repository"
	"github.com/marcos-nsantos/resize-cache/internal/domain"
	"github.com/marcos-nsantos/resize-cache/internal/domain/entity"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/resize"
)

type Config struct {
	ProjectRoot     string
	ValidExtensions []string
	BypassCache     bool
	EncoderOptions  valueobject.EncoderOptions
	PredefinedSizes map[string]entity.ImageSize
}

type Service struct {
	resizer  Resizer
	fileRepo repository.FileRepository
	sizeRepo repository.ImageSizeRepository
	cfg      Config
	logger   *zap.Logger
}

func NewService(
	resizer Resizer,
	fileRepo repository.FileRepository,
	sizeRepo repository.ImageSizeRepository,
	cfg Config,
	logger *zap.Logger,
) *Service {
	exts := make([]string, len(cfg.ValidExtensions))
	for i, ext := range cfg.ValidExtensions {
		exts[i] = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	}
	cfg.ValidExtensions = exts

	return &Service{
		resizer:  resizer,
		fileRepo: fileRepo,
		sizeRepo: sizeRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

type CreateInput struct {
	Path          string
	Size          Size
	Options       *valueobject.ResizeOptions
	ImportantPart *valueobject.ImportantPart
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*resize.Result, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Path), "."))
	if !slices.Contains(s.cfg.ValidExtensions, ext) {
		return nil, domain.InvalidInput("create", "image type \""+ext+"\" is not allowed to be processed")
	}
	if !filepath.IsAbs(input.Path) {
		return nil, domain.InvalidInput("create", "image path \""+input.Path+"\" must be absolute")
	}

	img, err := s.resizer.Load(ctx, input.Path)
	if err != nil {
		return nil, err
	}

	config, part, presetOpts, err := s.createConfig(ctx, input.Size, img)
	if err != nil {
		return nil, err
	}

	if part == nil {
		part = input.ImportantPart
	}
	if part == nil {
		part = s.findImportantPart(ctx, img)
	}
	img.ImportantPart = part

	opts := input.Options.Clone()
	switch {
	case input.Options != nil && presetOpts != nil:
		opts.SkipIfDimensionsMatch = opts.SkipIfDimensionsMatch || presetOpts.SkipIfDimensionsMatch
	case input.Options != nil:
	case presetOpts != nil:
		opts = presetOpts
	default:
		_, explicit := input.Size.(Configuration)
		opts.SkipIfDimensionsMatch = !explicit && config.IsEmpty()
	}

	if len(opts.EncoderOptions) == 0 {
		opts.EncoderOptions = s.cfg.EncoderOptions.Clone()
	}
	opts.BypassCache = opts.BypassCache || s.cfg.BypassCache

	return s.resizer.Resize(ctx, img, config, opts)
}

// createConfig resolves size into a resize configuration. A legacy position
// mode also yields an important part; a preset yields its own options.
func (s *Service) createConfig(
	ctx context.Context,
	size Size,
	img *entity.Image,
) (valueobject.ResizeConfiguration, *valueobject.ImportantPart, *valueobject.ResizeOptions, error) {
	empty := valueobject.ResizeConfiguration{Mode: valueobject.ModeCrop}

	switch sz := size.(type) {
	case nil:
		return empty, nil, nil, nil

	case Configuration:
		return sz.Config, nil, nil, nil

	case Preset:
		preset, err := s.findPreset(ctx, sz.ID)
		if err != nil {
			return empty, nil, nil, err
		}
		config, err := preset.Configuration()
		if err != nil {
			return empty, nil, nil, domain.InvalidInput("create", "image size "+sz.ID+": "+err.Error())
		}
		return config, nil, &valueobject.ResizeOptions{SkipIfDimensionsMatch: preset.SkipIfDimensionsMatch}, nil

	case Dimensions:
		if sz.Width < 0 || sz.Height < 0 {
			return empty, nil, nil, domain.InvalidInput("create", "width and height must not be negative")
		}
		config := valueobject.ResizeConfiguration{Width: sz.Width, Height: sz.Height, Mode: valueobject.ModeCrop}

		if strings.Count(sz.Mode, "_") == 1 {
			part, err := ImportantPartFromLegacyMode(img.Dimensions, sz.Mode)
			if err != nil {
				return empty, nil, nil, err
			}
			return config, part, nil, nil
		}

		if sz.Mode != "" {
			mode, err := valueobject.ParseResizeMode(sz.Mode)
			if err != nil {
				return empty, nil, nil, domain.InvalidInput("create", err.Error())
			}
			config.Mode = mode
		}
		return config, nil, nil, nil
	}

	return empty, nil, nil, domain.InvalidInput("create", "unsupported size specification")
}

func (s *Service) findPreset(ctx context.Context, id string) (*entity.ImageSize, error) {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return s.sizeRepo.GetByID(ctx, n)
	}
	if preset, ok := s.cfg.PredefinedSizes[id]; ok {
		return &preset, nil
	}
	return nil, domain.NotFound("create", "image size \""+id+"\" not found", nil)
}

// findImportantPart consults the metadata store. A stored part that does not
// fit the image is ignored. Lookup failures fall back to the whole image.
func (s *Service) findImportantPart(ctx context.Context, img *entity.Image) *valueobject.ImportantPart {
	key := s.metadataKey(img.Path)
	part, err := s.fileRepo.FindImportantPart(ctx, key)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.Warn("important part lookup failed", zap.String("path", key), zap.Error(err))
		}
		return nil
	}
	if part == nil || !part.FitsWithin(img.Dimensions) {
		return nil
	}
	return part
}

func (s *Service) metadataKey(path string) string {
	if s.cfg.ProjectRoot == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(s.cfg.ProjectRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// ImportantPartFromLegacyMode translates "<left|center|right>_<top|center|bottom>"
// into an important part on the matching one pixel edge.
func ImportantPartFromLegacyMode(dims valueobject.ImageDimensions, mode string) (*valueobject.ImportantPart, error) {
	modeX, modeY, ok := strings.Cut(mode, "_")
	if !ok || strings.Contains(modeY, "_") {
		return nil, domain.InvalidInput("legacy mode", "\""+mode+"\" is not a legacy resize mode")
	}

	part := valueobject.FullImportantPart(dims)

	switch modeX {
	case "left":
		part.Width = 1
	case "right":
		part.X = part.Width - 1
		part.Width = 1
	case "center":
	default:
		return nil, domain.InvalidInput("legacy mode", "\""+mode+"\" is not a legacy resize mode")
	}

	switch modeY {
	case "top":
		part.Height = 1
	case "bottom":
		part.Y = part.Height - 1
		part.Height = 1
	case "center":
	default:
		return nil, domain.InvalidInput("legacy mode", "\""+mode+"\" is not a legacy resize mode")
	}

	return &part, nil
}
