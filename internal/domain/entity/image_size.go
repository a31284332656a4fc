package entity

import "github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"

// ImageSize is a persisted or predefined size preset.
type ImageSize struct {
	ID                    int64
	Name                  string
	Width                 int
	Height                int
	Mode                  valueobject.ResizeMode
	Zoom                  int
	SkipIfDimensionsMatch bool
}

func (s *ImageSize) Configuration() (valueobject.ResizeConfiguration, error) {
	return valueobject.NewResizeConfiguration(s.Width, s.Height, s.Mode, s.Zoom)
}
