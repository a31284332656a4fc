package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/resize-cache/internal/domain"
	"github.com/marcos-nsantos/resize-cache/internal/domain/entity"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
)

type ImageSizeRepo struct {
	pool *pgxpool.Pool
}

func NewImageSizeRepo(pool *pgxpool.Pool) *ImageSizeRepo {
	return &ImageSizeRepo{pool: pool}
}

func (r *ImageSizeRepo) Create(ctx context.Context, size *entity.ImageSize) error {
	query := `
		INSERT INTO image_sizes (name, width, height, resize_mode, zoom, skip_if_dimensions_match)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		size.Name, size.Width, size.Height, string(size.Mode), size.Zoom, size.SkipIfDimensionsMatch,
	).Scan(&size.ID)
	if err != nil {
		return fmt.Errorf("inserting image size: %w", err)
	}
	return nil
}

func (r *ImageSizeRepo) GetByID(ctx context.Context, id int64) (*entity.ImageSize, error) {
	query := `
		SELECT id, name, width, height, resize_mode, zoom, skip_if_dimensions_match
		FROM image_sizes
		WHERE id = $1
	`
	var (
		size entity.ImageSize
		mode string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&size.ID, &size.Name, &size.Width, &size.Height,
		&mode, &size.Zoom, &size.SkipIfDimensionsMatch,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrImageSizeNotFound
		}
		return nil, fmt.Errorf("querying image size: %w", err)
	}
	size.Mode = valueobject.ResizeMode(mode)

	return &size, nil
}
