package decode

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/imgx-dev/imgx/internal/export"
)

// Image is a decoded image handle satisfying export.Image. The handle owns
// its pixels; encoders borrow it for the duration of one call.
type Image struct {
	pixels image.Image
	meta   Metadata
}

// NewImage wraps already-decoded pixels in a handle. Used by callers that
// decode through their own path and by tests.
func NewImage(pixels image.Image) *Image {
	b := pixels.Bounds()
	return &Image{
		pixels: pixels,
		meta:   Metadata{Width: b.Dx(), Height: b.Dy()},
	}
}

// Width returns the pixel width.
func (im *Image) Width() int { return im.meta.Width }

// Height returns the pixel height.
func (im *Image) Height() int { return im.meta.Height }

// Metadata returns information gathered during decode.
func (im *Image) Metadata() Metadata { return im.meta }

// Render produces pixels at the given scale using Lanczos resampling.
// Scale 1 returns the decoded pixels unchanged.
func (im *Image) Render(scale float64) (image.Image, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("render scale %g must be positive: %w",
			scale, export.ErrUnsupportedImage)
	}
	if scale == 1 {
		return im.pixels, nil
	}
	w := int(math.Round(float64(im.meta.Width) * scale))
	h := int(math.Round(float64(im.meta.Height) * scale))
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("render scale %g collapses image to %dx%d: %w",
			scale, w, h, export.ErrUnsupportedImage)
	}
	return imaging.Resize(im.pixels, w, h, imaging.Lanczos), nil
}

// applyOrientation maps the EXIF orientation tag onto the corresponding
// transform. Unknown values pass the image through.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
