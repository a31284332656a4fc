package factory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/resize-cache/internal/domain"
	"github.com/marcos-nsantos/resize-cache/internal/domain/entity"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
	"github.com/marcos-nsantos/resize-cache/internal/mocks"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/factory"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/resize"
)

const photoPath = "/project/files/photo.png"

type testDeps struct {
	resizer  *mocks.MockResizer
	fileRepo *mocks.MockFileRepository
	sizeRepo *mocks.MockImageSizeRepository
}

func newService(t *testing.T, cfg factory.Config) (*factory.Service, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := testDeps{
		resizer:  mocks.NewMockResizer(ctrl),
		fileRepo: mocks.NewMockFileRepository(ctrl),
		sizeRepo: mocks.NewMockImageSizeRepository(ctrl),
	}
	if cfg.ProjectRoot == "" {
		cfg.ProjectRoot = "/project"
	}
	if cfg.ValidExtensions == nil {
		cfg.ValidExtensions = []string{"jpg", ".PNG", "gif"}
	}
	svc := factory.NewService(deps.resizer, deps.fileRepo, deps.sizeRepo, cfg, zap.NewNop())
	return svc, deps
}

func loadedImage(w, h int) *entity.Image {
	return entity.NewImage(photoPath, valueobject.NewImageDimensions(w, h, valueobject.OrientationNormal, false))
}

type resizeCall struct {
	img    *entity.Image
	config valueobject.ResizeConfiguration
	opts   *valueobject.ResizeOptions
}

// expectResize records the arguments of the next Resize call.
func expectResize(deps testDeps, call *resizeCall) {
	deps.resizer.EXPECT().Resize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, img *entity.Image, config valueobject.ResizeConfiguration, opts *valueobject.ResizeOptions) (*resize.Result, error) {
			call.img, call.config, call.opts = img, config, opts
			return &resize.Result{Path: "/project/assets/images/a/photo-12345678.png", Status: resize.StatusGenerated}, nil
		})
}

func TestService_Create_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects extension outside allow-list", func(t *testing.T) {
		svc, _ := newService(t, factory.Config{})

		result, err := svc.Create(ctx, factory.CreateInput{Path: "/project/files/photo.bmp"})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, `image type "bmp" is not allowed to be processed`, domain.Message(err))
	})

	t.Run("matches extensions case-insensitively", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		img := entity.NewImage("/project/files/PHOTO.PNG", valueobject.NewImageDimensions(10, 10, valueobject.OrientationNormal, false))
		deps.resizer.EXPECT().Load(ctx, "/project/files/PHOTO.PNG").Return(img, nil)
		deps.fileRepo.EXPECT().FindImportantPart(ctx, "files/PHOTO.PNG").Return(nil, nil)
		var call resizeCall
		expectResize(deps, &call)

		_, err := svc.Create(ctx, factory.CreateInput{Path: "/project/files/PHOTO.PNG"})

		require.NoError(t, err)
	})

	t.Run("rejects relative path", func(t *testing.T) {
		svc, _ := newService(t, factory.Config{})

		_, err := svc.Create(ctx, factory.CreateInput{Path: "files/photo.png"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("propagates load errors", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(nil, domain.NotFound("load", "file not found", nil))

		_, err := svc.Create(ctx, factory.CreateInput{Path: photoPath})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)

		_, err := svc.Create(ctx, factory.CreateInput{
			Path: photoPath,
			Size: factory.Dimensions{Width: 10, Height: 10, Mode: "stretch"},
		})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects negative dimensions", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)

		_, err := svc.Create(ctx, factory.CreateInput{
			Path: photoPath,
			Size: factory.Dimensions{Width: -1, Height: 10},
		})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestService_Create_Sizes(t *testing.T) {
	ctx := context.Background()

	t.Run("dimensions default to crop", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		deps.fileRepo.EXPECT().FindImportantPart(ctx, "files/photo.png").Return(nil, nil)
		var call resizeCall
		expectResize(deps, &call)

		result, err := svc.Create(ctx, factory.CreateInput{
			Path: photoPath,
			Size: factory.Dimensions{Width: 100, Height: 100},
		})

		require.NoError(t, err)
		assert.Equal(t, resize.StatusGenerated, result.Status)
		assert.Equal(t, valueobject.ResizeConfiguration{Width: 100, Height: 100, Mode: valueobject.ModeCrop}, call.config)
		assert.False(t, call.opts.SkipIfDimensionsMatch)
	})

	t.Run("dimensions with explicit mode", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		deps.fileRepo.EXPECT().FindImportantPart(ctx, "files/photo.png").Return(nil, nil)
		var call resizeCall
		expectResize(deps, &call)

		_, err := svc.Create(ctx, factory.CreateInput{
			Path: photoPath,
			Size: factory.Dimensions{Width: 100, Mode: "Proportional"},
		})

		require.NoError(t, err)
		assert.Equal(t, valueobject.ModeProportional, call.config.Mode)
	})

	t.Run("no size allows skipping", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		deps.fileRepo.EXPECT().FindImportantPart(ctx, "files/photo.png").Return(nil, nil)
		var call resizeCall
		expectResize(deps, &call)

		_, err := svc.Create(ctx, factory.CreateInput{Path: photoPath})

		require.NoError(t, err)
		assert.True(t, call.config.IsEmpty())
		assert.True(t, call.opts.SkipIfDimensionsMatch)
	})

	t.Run("explicit configuration never skips", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		deps.fileRepo.EXPECT().FindImportantPart(ctx, "files/photo.png").Return(nil, nil)
		var call resizeCall
		expectResize(deps, &call)

		_, err := svc.Create(ctx, factory.CreateInput{
			Path: photoPath,
			Size: factory.Configuration{Config: valueobject.ResizeConfiguration{Mode: valueobject.ModeBox}},
		})

		require.NoError(t, err)
		assert.Equal(t, valueobject.ModeBox, call.config.Mode)
		assert.False(t, call.opts.SkipIfDimensionsMatch)
	})

	t.Run("numeric preset comes from the repository", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		deps.sizeRepo.EXPECT().GetByID(ctx, int64(7)).Return(&entity.ImageSize{
			ID: 7, Name: "card", Width: 50, Height: 40, Mode: valueobject.ModeCrop, Zoom: 20, SkipIfDimensionsMatch: true,
		}, nil)
		deps.fileRepo.EXPECT().FindImportantPart(ctx, "files/photo.png").Return(nil, nil)
		var call resizeCall
		expectResize(deps, &call)

		_, err := svc.Create(ctx, factory.CreateInput{Path: photoPath, Size: factory.Preset{ID: "7"}})

		require.NoError(t, err)
		assert.Equal(t, valueobject.ResizeConfiguration{Width: 50, Height: 40, Mode: valueobject.ModeCrop, ZoomLevel: 20}, call.config)
		assert.True(t, call.opts.SkipIfDimensionsMatch)
	})

	t.Run("named preset comes from configuration", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{
			PredefinedSizes: map[string]entity.ImageSize{
				"thumb": {Name: "thumb", Width: 64, Height: 64, Mode: valueobject.ModeBox},
			},
		})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		deps.fileRepo.EXPECT().FindImportantPart(ctx, "files/photo.png").Return(nil, nil)
		var call resizeCall
		expectResize(deps, &call)

		_, err := svc.Create(ctx, factory.CreateInput{Path: photoPath, Size: factory.Preset{ID: "thumb"}})

		require.NoError(t, err)
		assert.Equal(t, valueobject.ResizeConfiguration{Width: 64, Height: 64, Mode: valueobject.ModeBox}, call.config)
		assert.False(t, call.opts.SkipIfDimensionsMatch)
	})

	t.Run("unknown preset is not found", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)

		_, err := svc.Create(ctx, factory.CreateInput{Path: photoPath, Size: factory.Preset{ID: "poster"}})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing numeric preset is not found", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		deps.sizeRepo.EXPECT().GetByID(ctx, int64(99)).Return(nil, domain.ErrImageSizeNotFound)

		_, err := svc.Create(ctx, factory.CreateInput{Path: photoPath, Size: factory.Preset{ID: "99"}})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("legacy mode sets the important part", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		var call resizeCall
		expectResize(deps, &call)

		_, err := svc.Create(ctx, factory.CreateInput{
			Path: photoPath,
			Size: factory.Dimensions{Width: 50, Height: 50, Mode: "right_bottom"},
		})

		require.NoError(t, err)
		assert.Equal(t, valueobject.ModeCrop, call.config.Mode)
		assert.Equal(t, valueobject.NewImportantPart(199, 99, 1, 1), call.img.ImportantPart)
	})

	t.Run("invalid legacy mode", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)

		_, err := svc.Create(ctx, factory.CreateInput{
			Path: photoPath,
			Size: factory.Dimensions{Width: 50, Height: 50, Mode: "left_middle"},
		})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestService_Create_ImportantPart(t *testing.T) {
	ctx := context.Background()
	size := factory.Dimensions{Width: 50, Height: 50}

	t.Run("uses stored part", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		deps.fileRepo.EXPECT().FindImportantPart(ctx, "files/photo.png").Return(valueobject.NewImportantPart(10, 10, 40, 40), nil)
		var call resizeCall
		expectResize(deps, &call)

		_, err := svc.Create(ctx, factory.CreateInput{Path: photoPath, Size: size})

		require.NoError(t, err)
		assert.Equal(t, valueobject.NewImportantPart(10, 10, 40, 40), call.img.ImportantPart)
	})

	t.Run("ignores stored part outside the image", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		deps.fileRepo.EXPECT().FindImportantPart(ctx, "files/photo.png").Return(valueobject.NewImportantPart(150, 50, 100, 100), nil)
		var call resizeCall
		expectResize(deps, &call)

		_, err := svc.Create(ctx, factory.CreateInput{Path: photoPath, Size: size})

		require.NoError(t, err)
		assert.Nil(t, call.img.ImportantPart)
	})

	t.Run("ignores lookup failures", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		deps.fileRepo.EXPECT().FindImportantPart(ctx, "files/photo.png").Return(nil, errors.New("connection refused"))
		var call resizeCall
		expectResize(deps, &call)

		_, err := svc.Create(ctx, factory.CreateInput{Path: photoPath, Size: size})

		require.NoError(t, err)
		assert.Nil(t, call.img.ImportantPart)
	})

	t.Run("caller part skips the lookup", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		var call resizeCall
		expectResize(deps, &call)

		part := valueobject.NewImportantPart(0, 0, 20, 20)
		_, err := svc.Create(ctx, factory.CreateInput{Path: photoPath, Size: size, ImportantPart: part})

		require.NoError(t, err)
		assert.Equal(t, part, call.img.ImportantPart)
	})
}

func TestService_Create_Options(t *testing.T) {
	ctx := context.Background()
	defaults := valueobject.EncoderOptions{valueobject.OptionJPEGQuality: 85}

	t.Run("falls back to default encoder options", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{EncoderOptions: defaults})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		deps.fileRepo.EXPECT().FindImportantPart(ctx, "files/photo.png").Return(nil, nil)
		var call resizeCall
		expectResize(deps, &call)

		_, err := svc.Create(ctx, factory.CreateInput{Path: photoPath, Size: factory.Dimensions{Width: 10, Height: 10}})

		require.NoError(t, err)
		assert.Equal(t, defaults, call.opts.EncoderOptions)
		assert.False(t, call.opts.BypassCache)
	})

	t.Run("caller options win and bypass is forced by configuration", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{EncoderOptions: defaults, BypassCache: true})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		deps.fileRepo.EXPECT().FindImportantPart(ctx, "files/photo.png").Return(nil, nil)
		var call resizeCall
		expectResize(deps, &call)

		opts := &valueobject.ResizeOptions{
			EncoderOptions: valueobject.EncoderOptions{valueobject.OptionFormat: "jpg"},
			TargetPath:     "/tmp/out.jpg",
		}
		_, err := svc.Create(ctx, factory.CreateInput{Path: photoPath, Options: opts})

		require.NoError(t, err)
		assert.Equal(t, "jpg", call.opts.EncoderOptions.Format())
		assert.Equal(t, "/tmp/out.jpg", call.opts.TargetPath)
		assert.False(t, call.opts.SkipIfDimensionsMatch)
		assert.True(t, call.opts.BypassCache)
		assert.False(t, opts.BypassCache)
	})

	t.Run("preset skip flag is kept with caller options", func(t *testing.T) {
		svc, deps := newService(t, factory.Config{EncoderOptions: defaults})
		deps.resizer.EXPECT().Load(ctx, photoPath).Return(loadedImage(200, 100), nil)
		deps.sizeRepo.EXPECT().GetByID(ctx, int64(7)).Return(&entity.ImageSize{
			ID: 7, Name: "card", Width: 50, Height: 40, Mode: valueobject.ModeCrop, SkipIfDimensionsMatch: true,
		}, nil)
		deps.fileRepo.EXPECT().FindImportantPart(ctx, "files/photo.png").Return(nil, nil)
		var call resizeCall
		expectResize(deps, &call)

		opts := &valueobject.ResizeOptions{
			EncoderOptions: valueobject.EncoderOptions{valueobject.OptionFormat: "jpg"},
		}
		_, err := svc.Create(ctx, factory.CreateInput{Path: photoPath, Size: factory.Preset{ID: "7"}, Options: opts})

		require.NoError(t, err)
		assert.Equal(t, "jpg", call.opts.EncoderOptions.Format())
		assert.True(t, call.opts.SkipIfDimensionsMatch)
		assert.False(t, opts.SkipIfDimensionsMatch)
	})
}

func TestImportantPartFromLegacyMode(t *testing.T) {
	dims := valueobject.NewImageDimensions(200, 100, valueobject.OrientationNormal, false)

	tests := []struct {
		mode string
		want *valueobject.ImportantPart
	}{
		{"left_top", valueobject.NewImportantPart(0, 0, 1, 1)},
		{"center_top", valueobject.NewImportantPart(0, 0, 200, 1)},
		{"right_top", valueobject.NewImportantPart(199, 0, 1, 1)},
		{"left_center", valueobject.NewImportantPart(0, 0, 1, 100)},
		{"center_center", valueobject.NewImportantPart(0, 0, 200, 100)},
		{"right_center", valueobject.NewImportantPart(199, 0, 1, 100)},
		{"left_bottom", valueobject.NewImportantPart(0, 99, 1, 1)},
		{"center_bottom", valueobject.NewImportantPart(0, 99, 200, 1)},
		{"right_bottom", valueobject.NewImportantPart(199, 99, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got, err := factory.ImportantPartFromLegacyMode(dims, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, mode := range []string{"top_left", "left", "left_top_x", "middle_center", ""} {
		t.Run("rejects "+mode, func(t *testing.T) {
			_, err := factory.ImportantPartFromLegacyMode(dims, mode)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
