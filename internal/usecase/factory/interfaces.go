package factory

import (
	"context"

	"github.com/marcos-nsantos/resize-cache/internal/domain/entity"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/resize"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/factory_mocks.go -package=mocks

type Resizer interface {
	Load(ctx context.Context, path string) (*entity.Image, error)
	Resize(ctx context.Context, img *entity.Image, config valueobject.ResizeConfiguration, opts *valueobject.ResizeOptions) (*resize.Result, error)
}
