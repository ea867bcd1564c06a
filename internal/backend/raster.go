package backend

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/tiff"

	"github.com/imgx-dev/imgx/internal/export"
)

// encodeFunc serializes pixels under the normalized property set.
type encodeFunc func(w io.Writer, img image.Image, props export.Properties) error

// rasterDestination accumulates one image and finalizes it through the
// format's encodeFunc. Scale reaches the destination as DPI metadata only;
// pixels are rendered at their source dimensions.
type rasterDestination struct {
	encode encodeFunc
	img    image.Image
	props  export.Properties
}

func (d *rasterDestination) AddImage(img export.Image, props export.Properties) error {
	pixels, err := img.Render(1)
	if err != nil {
		return fmt.Errorf("render image: %w", err)
	}
	if pixels == nil {
		return fmt.Errorf("render image: %w", export.ErrUnsupportedImage)
	}
	d.img = pixels
	d.props = props
	return nil
}

func (d *rasterDestination) Finalize() ([]byte, error) {
	if d.img == nil {
		return nil, fmt.Errorf("no image added: %w", export.ErrEncodingFailed)
	}
	var buf bytes.Buffer
	if err := d.encode(&buf, d.img, d.props); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *rasterDestination) Close() error {
	d.img = nil
	d.props = nil
	return nil
}

// encodePNG writes PNG. The stdlib encoder emits no ancillary metadata, so
// the GPS exclusion flag is already satisfied.
func encodePNG(w io.Writer, img image.Image, _ export.Properties) error {
	return png.Encode(w, img)
}

// encodeJPEG maps the normalized [0,1] quality onto the encoder's 1-100
// range; absence means jpeg.DefaultQuality.
func encodeJPEG(w io.Writer, img image.Image, props export.Properties) error {
	quality := jpeg.DefaultQuality
	if q, ok := props.Quality(); ok {
		quality = int(math.Round(q * 100))
		if quality < 1 {
			quality = 1
		}
		if quality > 100 {
			quality = 100
		}
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// encodeTIFF selects Deflate compression when a quality is supplied and
// writes uncompressed otherwise.
func encodeTIFF(w io.Writer, img image.Image, props export.Properties) error {
	opts := &tiff.Options{}
	if _, ok := props.Quality(); ok {
		opts.Compression = tiff.Deflate
	}
	return tiff.Encode(w, img, opts)
}

func encodeGIF(w io.Writer, img image.Image, _ export.Properties) error {
	return gif.Encode(w, img, nil)
}
