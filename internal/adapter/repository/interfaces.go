package repository

import (
	"context"

	"github.com/marcos-nsantos/resize-cache/internal/domain/entity"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// FileRepository looks up per-file metadata. Paths are relative to the
// project root and slash separated.
type FileRepository interface {
	FindImportantPart(ctx context.Context, path string) (*valueobject.ImportantPart, error)
}

type ImageSizeRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.ImageSize, error)
}
