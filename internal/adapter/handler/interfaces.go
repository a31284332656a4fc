package handler

import (
	"context"

	"github.com/marcos-nsantos/resize-cache/internal/usecase/thumbnail"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type ThumbnailService interface {
	Generate(ctx context.Context, req thumbnail.Request) (*thumbnail.Result, error)
}
