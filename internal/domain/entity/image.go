package entity

import "github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"

// Image is a file on disk together with what is known about its pixels.
type Image struct {
	Path          string
	Dimensions    valueobject.ImageDimensions
	ImportantPart *valueobject.ImportantPart
}

func NewImage(path string, dims valueobject.ImageDimensions) *Image {
	return &Image{Path: path, Dimensions: dims}
}
