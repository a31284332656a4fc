package storage

import (
	"context"
	"io"

	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/storage_mocks.go -package=mocks

// ImageStorage mirrors generated images to remote object storage.
type ImageStorage interface {
	Exists(ctx context.Context, key string) (bool, error)
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) error
	GetURL(key string) string
}

// ImageProcessor decodes, transforms and encodes images.
type ImageProcessor interface {
	Dimensions(r io.Reader) (valueobject.ImageDimensions, error)
	Process(r io.Reader, w io.Writer, coords valueobject.ResizeCoordinates, opts valueobject.EncoderOptions) error
}
