// Package decode turns encoded image bytes into handles the export encoder
// can consume. Supported inputs: PNG, JPEG, GIF, BMP, TIFF, and WebP.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	_ "github.com/chai2010/webp"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// DecodeError represents errors that can occur while decoding input bytes.
type DecodeError struct {
	Operation string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error in %s: %v", e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Metadata captures lightweight information about the decoded input.
type Metadata struct {
	Format      string
	Width       int
	Height      int
	Orientation int       // EXIF orientation tag (1-8); 0 when absent
	HasGPS      bool      // GPS coordinates present in EXIF
	CaptureTime time.Time // zero when absent
}

// Decode decodes encoded bytes into an Image handle. JPEG inputs have their
// EXIF orientation applied so the handle is upright.
func Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Operation: "decode", Err: errors.New("empty input")}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Operation: "decode", Err: err}
	}

	meta := Metadata{Format: format}
	if format == "jpeg" {
		readEXIF(data, &meta)
		img = applyOrientation(img, meta.Orientation)
	}

	b := img.Bounds()
	meta.Width = b.Dx()
	meta.Height = b.Dy()

	return &Image{pixels: img, meta: meta}, nil
}

// readEXIF fills orientation, GPS presence, and capture time from the JPEG's
// EXIF block. Absent or malformed EXIF leaves the metadata zeroed.
func readEXIF(data []byte, meta *Metadata) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return
	}
	if tag, err := x.Get(exif.Orientation); err == nil {
		if o, err := tag.Int(0); err == nil {
			meta.Orientation = o
		}
	}
	if _, _, err := x.LatLong(); err == nil {
		meta.HasGPS = true
	}
	if t, err := x.DateTime(); err == nil {
		meta.CaptureTime = t
	}
}
