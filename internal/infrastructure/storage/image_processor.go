package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/marcos-nsantos/resize-cache/internal/domain"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
)

const (
	DefaultJPEGQuality = 80
	interlaceNone      = "none"
)

var errInterlaceUnsupported = errors.New("interlaced output is not supported by the encoder")

type ProcessorConfig struct {
	JPEGQuality         int
	PNGCompressionLevel int
}

type ImageProcessorImpl struct {
	jpegQuality int
	pngLevel    png.CompressionLevel
	logger      *zap.Logger
}

func NewImageProcessor(cfg ProcessorConfig, logger *zap.Logger) *ImageProcessorImpl {
	quality := cfg.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &ImageProcessorImpl{
		jpegQuality: quality,
		pngLevel:    png.CompressionLevel(cfg.PNGCompressionLevel),
		logger:      logger,
	}
}

// Dimensions reads the header of an image. Orientations that turn the image
// by 90 degrees report width and height as displayed.
func (p *ImageProcessorImpl) Dimensions(r io.Reader) (valueobject.ImageDimensions, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return valueobject.ImageDimensions{}, domain.Storage("read image", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return valueobject.ImageDimensions{}, domain.NewError(domain.ErrDecode, "read dimensions", "not an image", err)
	}

	orientation := valueobject.OrientationNormal
	if format == "jpeg" || format == "tiff" {
		orientation = readOrientation(data)
	}

	width, height := cfg.Width, cfg.Height
	if orientation.SwapsAxes() {
		width, height = height, width
	}

	return valueobject.NewImageDimensions(width, height, orientation, false), nil
}

// Process scales the source to coords.Size, crops coords.CropSize at
// coords.CropStart and encodes the result in the format named by opts.
func (p *ImageProcessorImpl) Process(
	r io.Reader,
	w io.Writer,
	coords valueobject.ResizeCoordinates,
	opts valueobject.EncoderOptions,
) error {
	format, err := imaging.FormatFromExtension(opts.Format())
	if err != nil {
		return domain.Encode("resolve format", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, opts.Format()))
	}

	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return domain.NewError(domain.ErrDecode, "decode", "not an image", err)
	}

	var img image.Image = src
	if b := src.Bounds(); b.Dx() != coords.Size.Width || b.Dy() != coords.Size.Height {
		img = imaging.Resize(src, coords.Size.Width, coords.Size.Height, imaging.Lanczos)
	}

	img = imaging.Crop(img, image.Rect(
		coords.CropStart.X,
		coords.CropStart.Y,
		coords.CropStart.X+coords.CropSize.Width,
		coords.CropStart.Y+coords.CropSize.Height,
	))

	img = normalize(img, format)

	if err := applyInterlace(stringOption(opts, valueobject.OptionInterlace)); err != nil {
		p.logger.Debug("ignoring interlace option", zap.Error(err))
	}

	encodeOpts := []imaging.EncodeOption{
		imaging.JPEGQuality(intOption(opts, valueobject.OptionJPEGQuality, p.jpegQuality)),
		imaging.PNGCompressionLevel(png.CompressionLevel(intOption(opts, valueobject.OptionPNGCompressionLevel, int(p.pngLevel)))),
	}

	if err := imaging.Encode(w, img, format, encodeOpts...); err != nil {
		return domain.Encode("encode", err)
	}

	return nil
}

// normalize converts to 8-bit RGB(A). JPEG has no alpha channel, so
// transparent areas are flattened onto white.
func normalize(img image.Image, format imaging.Format) image.Image {
	if format != imaging.JPEG {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1)
}

func applyInterlace(mode string) error {
	if mode == "" || mode == interlaceNone {
		return nil
	}
	return fmt.Errorf("%w: %s", errInterlaceUnsupported, mode)
}

func readOrientation(data []byte) valueobject.Orientation {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return valueobject.OrientationNormal
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return valueobject.OrientationNormal
	}
	v, err := tag.Int(0)
	if err != nil {
		return valueobject.OrientationNormal
	}
	o := valueobject.Orientation(v)
	if !o.IsValid() {
		return valueobject.OrientationNormal
	}
	return o
}

func stringOption(opts valueobject.EncoderOptions, key string) string {
	if v, ok := opts[key].(string); ok {
		return v
	}
	return ""
}

func intOption(opts valueobject.EncoderOptions, key string, fallback int) int {
	switch v := opts[key].(type) {
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
