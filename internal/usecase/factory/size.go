package factory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marcos-nsantos/resize-cache/internal/domain/entity"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
)

// Size describes the requested output. It is one of Dimensions,
// Configuration or Preset; nil requests no resize.
type Size interface {
	isSize()
}

// Dimensions is a width, height and mode triple. Mode may also be a legacy
// position such as "left_top".
type Dimensions struct {
	Width  int
	Height int
	Mode   string
}

type Configuration struct {
	Config valueobject.ResizeConfiguration
}

// Preset refers to a persisted size by numeric id or to a predefined size by
// name.
type Preset struct {
	ID string
}

func (Dimensions) isSize()    {}
func (Configuration) isSize() {}
func (Preset) isSize()        {}

// ParsePredefinedSizes parses "name=WxH:mode[:zoom][:skip]" entries separated
// by commas, e.g. "thumb=100x100:crop,hero=1600x0:proportional:0:skip".
func ParsePredefinedSizes(s string) (map[string]entity.ImageSize, error) {
	sizes := make(map[string]entity.ImageSize)
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, spec, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("predefined size %q: expected name=WxH:mode", entry)
		}

		fields := strings.Split(spec, ":")
		w, h, ok := strings.Cut(fields[0], "x")
		if !ok {
			return nil, fmt.Errorf("predefined size %q: expected WxH", entry)
		}
		width, err := strconv.Atoi(w)
		if err != nil {
			return nil, fmt.Errorf("predefined size %q: width: %w", entry, err)
		}
		height, err := strconv.Atoi(h)
		if err != nil {
			return nil, fmt.Errorf("predefined size %q: height: %w", entry, err)
		}

		size := entity.ImageSize{Name: name, Width: width, Height: height, Mode: valueobject.ModeCrop}
		if len(fields) > 1 && fields[1] != "" {
			mode, err := valueobject.ParseResizeMode(fields[1])
			if err != nil {
				return nil, fmt.Errorf("predefined size %q: %w", entry, err)
			}
			size.Mode = mode
		}
		if len(fields) > 2 && fields[2] != "" {
			if size.Zoom, err = strconv.Atoi(fields[2]); err != nil {
				return nil, fmt.Errorf("predefined size %q: zoom: %w", entry, err)
			}
		}
		if len(fields) > 3 {
			size.SkipIfDimensionsMatch = fields[3] == "skip"
		}

		if _, err := size.Configuration(); err != nil {
			return nil, fmt.Errorf("predefined size %q: %w", entry, err)
		}
		sizes[name] = size
	}
	return sizes, nil
}
