package resize

import (
	"math"

	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
)

// rect is a float region of the source image.
type rect struct {
	x, y, w, h float64
}

// Calculate maps a resize request onto a source of the given dimensions.
// It has no side effects and the same input always yields the same output.
func Calculate(
	config valueobject.ResizeConfiguration,
	dims valueobject.ImageDimensions,
	part *valueobject.ImportantPart,
) valueobject.ResizeCoordinates {
	if dims.IsUndefined() {
		size := valueobject.Box{Width: config.Width, Height: config.Height}
		return valueobject.ResizeCoordinates{Size: size, CropSize: size}
	}

	if config.IsEmpty() {
		return fullCoordinates(dims.Size())
	}

	width, height := float64(config.Width), float64(config.Height)

	switch {
	case config.Mode == valueobject.ModeBox:
		return calculateFit(width, height, dims, false)
	case config.Mode == valueobject.ModeCrop && config.Width > 0 && config.Height > 0:
		zoom := float64(clampInt(config.ZoomLevel, 0, valueobject.MaxZoomLevel)) / valueobject.MaxZoomLevel
		return calculateCrop(width, height, dims, importantRect(part, dims), zoom)
	default:
		return calculateFit(width, height, dims, true)
	}
}

// calculateFit scales the whole image into width x height. A zero bound is
// unconstrained.
func calculateFit(width, height float64, dims valueobject.ImageDimensions, upscale bool) valueobject.ResizeCoordinates {
	srcW, srcH := float64(dims.Width), float64(dims.Height)

	scale := math.Inf(1)
	if width > 0 {
		scale = width / srcW
	}
	if height > 0 {
		scale = math.Min(scale, height/srcH)
	}
	if !upscale {
		scale = math.Min(scale, 1)
	}

	return fullCoordinates(valueobject.Box{
		Width:  roundAtLeastOne(srcW * scale),
		Height: roundAtLeastOne(srcH * scale),
	})
}

// calculateCrop picks a region with the target aspect ratio, somewhere
// between the largest region centred on the important part (zoom 0) and the
// tightest region around it (zoom 1), and scales it to width x height.
func calculateCrop(width, height float64, dims valueobject.ImageDimensions, part rect, zoom float64) valueobject.ResizeCoordinates {
	srcW, srcH := float64(dims.Width), float64(dims.Height)
	ratio := width / height

	least := leastZoomed(ratio, srcW, srcH, part)
	most := mostZoomed(ratio, srcW, srcH, part)
	if most.w > least.w {
		most = least
	}

	region := rect{
		x: most.x*zoom + least.x*(1-zoom),
		y: most.y*zoom + least.y*(1-zoom),
		w: most.w*zoom + least.w*(1-zoom),
		h: most.h*zoom + least.h*(1-zoom),
	}

	scaleX := width / region.w
	scaleY := height / region.h

	size := valueobject.Box{
		Width:  roundAtLeastOne(srcW * scaleX),
		Height: roundAtLeastOne(srcH * scaleY),
	}
	crop := valueobject.Box{
		Width:  min(int(width), size.Width),
		Height: min(int(height), size.Height),
	}
	start := valueobject.Point{
		X: clampInt(int(math.Round(region.x*scaleX)), 0, size.Width-crop.Width),
		Y: clampInt(int(math.Round(region.y*scaleY)), 0, size.Height-crop.Height),
	}

	return valueobject.ResizeCoordinates{Size: size, CropStart: start, CropSize: crop}
}

func leastZoomed(ratio, srcW, srcH float64, part rect) rect {
	r := rect{w: srcW, h: srcH}
	if srcW/srcH > ratio {
		r.w = srcH * ratio
	} else {
		r.h = srcW / ratio
	}
	return centerOn(r, part, srcW, srcH)
}

func mostZoomed(ratio, srcW, srcH float64, part rect) rect {
	r := rect{w: part.w, h: part.h}
	if part.w/part.h > ratio {
		r.h = part.w / ratio
	} else {
		r.w = part.h * ratio
	}
	return centerOn(r, part, srcW, srcH)
}

// centerOn moves r so that it is centred on part while staying inside the
// source bounds.
func centerOn(r, part rect, srcW, srcH float64) rect {
	r.x = clampFloat(part.x+part.w/2-r.w/2, 0, srcW-r.w)
	r.y = clampFloat(part.y+part.h/2-r.h/2, 0, srcH-r.h)
	return r
}

// importantRect clamps the part into the image, falling back to the whole
// image when absent or degenerate.
func importantRect(part *valueobject.ImportantPart, dims valueobject.ImageDimensions) rect {
	full := rect{w: float64(dims.Width), h: float64(dims.Height)}
	if part == nil {
		return full
	}

	x := clampInt(part.X, 0, dims.Width-1)
	y := clampInt(part.Y, 0, dims.Height-1)
	w := clampInt(part.Width, 0, dims.Width-x)
	h := clampInt(part.Height, 0, dims.Height-y)
	if w == 0 || h == 0 {
		return full
	}

	return rect{x: float64(x), y: float64(y), w: float64(w), h: float64(h)}
}

func fullCoordinates(size valueobject.Box) valueobject.ResizeCoordinates {
	return valueobject.ResizeCoordinates{Size: size, CropSize: size}
}

func roundAtLeastOne(v float64) int {
	return max(1, int(math.Round(v)))
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(v, hi))
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(v, hi))
}
