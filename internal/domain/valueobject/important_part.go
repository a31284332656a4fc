package valueobject

// ImportantPart is the region of the source, in source pixels, that has to
// stay visible after cropping.
type ImportantPart struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func NewImportantPart(x, y, width, height int) *ImportantPart {
	return &ImportantPart{X: x, Y: y, Width: width, Height: height}
}

func FullImportantPart(d ImageDimensions) ImportantPart {
	return ImportantPart{Width: d.Width, Height: d.Height}
}

// FitsWithin reports whether the part is non-empty and lies inside d.
func (p ImportantPart) FitsWithin(d ImageDimensions) bool {
	return p.Width > 0 && p.Height > 0 &&
		p.X >= 0 && p.Y >= 0 &&
		p.X+p.Width <= d.Width &&
		p.Y+p.Height <= d.Height
}
