package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/resize-cache/internal/adapter/repository/memory"
	"github.com/marcos-nsantos/resize-cache/internal/domain"
	"github.com/marcos-nsantos/resize-cache/internal/domain/entity"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
)

func TestMetadataRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("important parts", func(t *testing.T) {
		repo := memory.NewMetadataRepo()

		part, err := repo.FindImportantPart(ctx, "files/a.jpg")
		require.NoError(t, err)
		assert.Nil(t, part)

		require.NoError(t, repo.SaveImportantPart(ctx, "files/a.jpg", valueobject.ImportantPart{X: 1, Y: 2, Width: 3, Height: 4}))

		part, err = repo.FindImportantPart(ctx, "files/a.jpg")
		require.NoError(t, err)
		require.NotNil(t, part)
		assert.Equal(t, 3, part.Width)
	})

	t.Run("image sizes", func(t *testing.T) {
		repo := memory.NewMetadataRepo()

		first := &entity.ImageSize{Name: "a", Width: 10, Height: 10, Mode: valueobject.ModeCrop}
		second := &entity.ImageSize{Name: "b", Width: 20, Height: 20, Mode: valueobject.ModeBox}
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))
		assert.NotEqual(t, first.ID, second.ID)

		got, err := repo.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "b", got.Name)

		_, err = repo.GetByID(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrImageSizeNotFound)
	})
}
