package valueobject

// Orientation is the EXIF orientation tag value (1-8).
type Orientation int

const (
	OrientationNormal Orientation = iota + 1
	OrientationMirrorHorizontal
	OrientationRotate180
	OrientationMirrorVertical
	OrientationTranspose
	OrientationRotate90
	OrientationTransverse
	OrientationRotate270
)

func (o Orientation) IsValid() bool {
	return o >= OrientationNormal && o <= OrientationRotate270
}

// SwapsAxes reports whether displaying the image turns it by 90 degrees.
func (o Orientation) SwapsAxes() bool {
	return o >= OrientationTranspose && o <= OrientationRotate270
}

type Box struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ImageDimensions describes a decoded source. Width or height of zero means
// the size could not be determined.
type ImageDimensions struct {
	Width       int
	Height      int
	Orientation Orientation
	Relative    bool
}

func NewImageDimensions(width, height int, orientation Orientation, relative bool) ImageDimensions {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if !orientation.IsValid() {
		orientation = OrientationNormal
	}
	return ImageDimensions{
		Width:       width,
		Height:      height,
		Orientation: orientation,
		Relative:    relative,
	}
}

func (d ImageDimensions) IsUndefined() bool {
	return d.Width == 0 || d.Height == 0
}

func (d ImageDimensions) Size() Box {
	return Box{Width: d.Width, Height: d.Height}
}
