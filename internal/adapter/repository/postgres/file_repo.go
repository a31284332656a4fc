package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
)

type FileRepo struct {
	pool *pgxpool.Pool
}

func NewFileRepo(pool *pgxpool.Pool) *FileRepo {
	return &FileRepo{pool: pool}
}

// FindImportantPart returns nil when the file is unknown or has no important
// part set.
func (r *FileRepo) FindImportantPart(ctx context.Context, path string) (*valueobject.ImportantPart, error) {
	query := `
		SELECT important_part_x, important_part_y, important_part_width, important_part_height
		FROM files
		WHERE path = $1
	`
	var part valueobject.ImportantPart
	err := r.pool.QueryRow(ctx, query, path).Scan(&part.X, &part.Y, &part.Width, &part.Height)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying important part: %w", err)
	}

	if part.Width == 0 || part.Height == 0 {
		return nil, nil
	}
	return &part, nil
}

// SaveImportantPart stores the important part of a file, replacing any
// previous value.
func (r *FileRepo) SaveImportantPart(ctx context.Context, path string, part valueobject.ImportantPart) error {
	query := `
		INSERT INTO files (path, important_part_x, important_part_y, important_part_width, important_part_height, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (path) DO UPDATE SET
			important_part_x = EXCLUDED.important_part_x,
			important_part_y = EXCLUDED.important_part_y,
			important_part_width = EXCLUDED.important_part_width,
			important_part_height = EXCLUDED.important_part_height,
			updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, path, part.X, part.Y, part.Width, part.Height)
	if err != nil {
		return fmt.Errorf("saving important part: %w", err)
	}
	return nil
}
