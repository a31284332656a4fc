// Package memory holds metadata in process memory. It backs the service when
// no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/marcos-nsantos/resize-cache/internal/domain"
	"github.com/marcos-nsantos/resize-cache/internal/domain/entity"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
)

type MetadataRepo struct {
	mu     sync.RWMutex
	parts  map[string]valueobject.ImportantPart
	sizes  map[int64]entity.ImageSize
	nextID int64
}

func NewMetadataRepo() *MetadataRepo {
	return &MetadataRepo{
		parts: make(map[string]valueobject.ImportantPart),
		sizes: make(map[int64]entity.ImageSize),
	}
}

func (r *MetadataRepo) FindImportantPart(_ context.Context, path string) (*valueobject.ImportantPart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	part, ok := r.parts[path]
	if !ok || part.Width == 0 || part.Height == 0 {
		return nil, nil
	}
	return &part, nil
}

func (r *MetadataRepo) SaveImportantPart(_ context.Context, path string, part valueobject.ImportantPart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.parts[path] = part
	return nil
}

func (r *MetadataRepo) Create(_ context.Context, size *entity.ImageSize) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	size.ID = r.nextID
	r.sizes[size.ID] = *size
	return nil
}

func (r *MetadataRepo) GetByID(_ context.Context, id int64) (*entity.ImageSize, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	size, ok := r.sizes[id]
	if !ok {
		return nil, domain.ErrImageSizeNotFound
	}
	return &size, nil
}
