package valueobject

import (
	"fmt"
	"strings"
)

type ResizeMode string

const (
	ModeCrop         ResizeMode = "crop"
	ModeBox          ResizeMode = "box"
	ModeProportional ResizeMode = "proportional"
)

const MaxZoomLevel = 100

func ParseResizeMode(s string) (ResizeMode, error) {
	switch m := ResizeMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeCrop, ModeBox, ModeProportional:
		return m, nil
	default:
		return "", fmt.Errorf("unknown resize mode %q", s)
	}
}

type ResizeConfiguration struct {
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Mode      ResizeMode `json:"mode"`
	ZoomLevel int        `json:"zoomLevel"`
}

func NewResizeConfiguration(width, height int, mode ResizeMode, zoom int) (ResizeConfiguration, error) {
	if width < 0 || height < 0 {
		return ResizeConfiguration{}, fmt.Errorf("width and height must not be negative")
	}
	if zoom < 0 || zoom > MaxZoomLevel {
		return ResizeConfiguration{}, fmt.Errorf("zoom level must be between 0 and %d", MaxZoomLevel)
	}
	if mode == "" {
		mode = ModeCrop
	}
	if _, err := ParseResizeMode(string(mode)); err != nil {
		return ResizeConfiguration{}, err
	}
	return ResizeConfiguration{
		Width:     width,
		Height:    height,
		Mode:      mode,
		ZoomLevel: zoom,
	}, nil
}

// IsEmpty reports that no resize was requested.
func (c ResizeConfiguration) IsEmpty() bool {
	return c.Width == 0 && c.Height == 0
}
