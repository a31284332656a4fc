package batch

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/resize-cache/internal/domain"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
	"github.com/marcos-nsantos/resize-cache/internal/pkg/pathguard"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/factory"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/resize"
)

var DefaultFileTypes = []string{"png", "jpeg", "jpg", "gif"}

type Config struct {
	Enabled     bool
	ProjectRoot string
	UploadPath  string
}

type Service struct {
	fs      afero.Fs
	factory ImageFactory
	cfg     Config
	logger  *zap.Logger
}

func NewService(fsys afero.Fs, imageFactory ImageFactory, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		fs:      fsys,
		factory: imageFactory,
		cfg:     cfg,
		logger:  logger,
	}
}

type Request struct {
	// Path is relative to the project root. Empty means the upload path.
	Path      string
	FileTypes []string
	Config    valueobject.ResizeConfiguration
}

type FileError struct {
	Path    string
	Message string
}

type Report struct {
	Total     int
	Generated int
	Cached    int
	Skipped   int
	Errors    []FileError
}

// ProgressFunc is called after each file with the number of files done so far.
type ProgressFunc func(done, total int, path string)

// Run resizes every matching image under the request path. Failures of
// single files end up in the report; only setup errors and cancellation are
// returned.
func (s *Service) Run(ctx context.Context, req Request, progress ProgressFunc) (*Report, error) {
	if !s.cfg.Enabled {
		return nil, domain.NewError(domain.ErrDisabled, "batch", "Thumbnails are disabled on this system.", nil)
	}

	root, err := s.scanPath(req.Path)
	if err != nil {
		return nil, err
	}

	fileTypes := req.FileTypes
	if len(fileTypes) == 0 {
		fileTypes = DefaultFileTypes
	}

	report := &Report{}
	files, err := s.collect(root, normalizeTypes(fileTypes), report)
	if err != nil {
		return nil, err
	}
	report.Total = len(files)

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res, err := s.factory.Create(ctx, factory.CreateInput{
			Path: path,
			Size: factory.Configuration{Config: req.Config},
		})
		if err != nil {
			s.logger.Warn("image generation failed", zap.String("path", path), zap.Error(err))
			report.Errors = append(report.Errors, FileError{Path: s.relative(path), Message: domain.Message(err)})
		} else {
			switch res.Status {
			case resize.StatusGenerated:
				report.Generated++
			case resize.StatusCached:
				report.Cached++
			default:
				report.Skipped++
			}
		}

		if progress != nil {
			progress(i+1, report.Total, s.relative(path))
		}
	}

	s.logger.Info("batch finished",
		zap.Int("total", report.Total),
		zap.Int("generated", report.Generated),
		zap.Int("cached", report.Cached),
		zap.Int("errors", len(report.Errors)),
	)

	return report, nil
}

func (s *Service) scanPath(path string) (string, error) {
	if path == "" {
		if s.cfg.UploadPath == "" {
			return "", domain.InvalidInput("batch", "No default path found.")
		}
		return filepath.Join(s.cfg.ProjectRoot, filepath.FromSlash(s.cfg.UploadPath)), nil
	}

	if err := pathguard.Check(path, s.cfg.UploadPath); err != nil {
		return "", domain.InvalidInput("batch", "Invalid path")
	}

	full := filepath.Join(s.cfg.ProjectRoot, filepath.FromSlash(path))
	exists, err := afero.Exists(s.fs, full)
	if err != nil {
		return "", domain.Storage("batch", err)
	}
	if !exists {
		return "", domain.NotFound("batch", "File not found", nil)
	}
	return full, nil
}

// collect returns root itself when it is a file, otherwise every file below
// it whose extension is in types. Unreadable entries are reported.
func (s *Service) collect(root string, types []string, report *Report) ([]string, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, domain.Storage("batch", err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = afero.Walk(s.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			report.Errors = append(report.Errors, FileError{Path: s.relative(path), Message: err.Error()})
			return nil
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if slices.Contains(types, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, domain.Storage("batch", err)
	}

	return files, nil
}

func (s *Service) relative(path string) string {
	rel, err := filepath.Rel(s.cfg.ProjectRoot, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func normalizeTypes(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		if t = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), ".")); t != "" {
			out = append(out, t)
		}
	}
	return out
}
