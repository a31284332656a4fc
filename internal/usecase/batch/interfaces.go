package batch

import (
	"context"

	"github.com/marcos-nsantos/resize-cache/internal/usecase/factory"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/resize"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/batch_mocks.go -package=mocks -mock_names=ImageFactory=MockBatchImageFactory

type ImageFactory interface {
	Create(ctx context.Context, input factory.CreateInput) (*resize.Result, error)
}
