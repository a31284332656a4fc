package valueobject

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// ResizeCoordinates tells the resizer to scale the whole source to Size and
// then cut CropSize out of it at CropStart. CropSize is the output size.
type ResizeCoordinates struct {
	Size      Box
	CropStart Point
	CropSize  Box
}

func (c ResizeCoordinates) Hash() string {
	sum := md5.Sum([]byte(fmt.Sprintf("%d,%d,%d,%d,%d,%d",
		c.Size.Width, c.Size.Height,
		c.CropStart.X, c.CropStart.Y,
		c.CropSize.Width, c.CropSize.Height,
	)))
	return hex.EncodeToString(sum[:])
}

// IsEqualTo reports whether applying the coordinates to a source of the given
// size would leave it untouched.
func (c ResizeCoordinates) IsEqualTo(size Box) bool {
	return c.Size == size &&
		c.CropStart == (Point{}) &&
		c.CropSize == size
}
