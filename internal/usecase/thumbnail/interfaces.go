package thumbnail

import (
	"context"

	"github.com/marcos-nsantos/resize-cache/internal/usecase/factory"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/resize"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/thumbnail_mocks.go -package=mocks

type ImageFactory interface {
	Create(ctx context.Context, input factory.CreateInput) (*resize.Result, error)
}
