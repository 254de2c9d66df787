package immunoviz

import (
	"image"

	"github.com/disintegration/imaging"
)

// Thumbnail shrinks a rendered figure to the given pixel width, preserving
// aspect ratio. Widths at or above the original return the image unchanged.
func Thumbnail(img image.Image, width int) image.Image {
	if width < 1 || width >= img.Bounds().Dx() {
		return img
	}

	return imaging.Resize(img, width, 0, imaging.Lanczos)
}
