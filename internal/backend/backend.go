// Package backend implements the export.GraphicsBackend contract on top of
// the Go image ecosystem: stdlib PNG/JPEG/GIF encoders, x/image TIFF, and
// pdfcpu for single-page PDF composition.
package backend

import (
	"fmt"

	"github.com/imgx-dev/imgx/internal/export"
)

// Std is the standard graphics backend. It is stateless; concurrent encodes
// over independent destinations are safe.
type Std struct{}

// New returns the standard backend.
func New() *Std {
	return &Std{}
}

// CreateDestination allocates a raster encoding destination for the given
// format token.
func (Std) CreateDestination(format string) (export.Destination, error) {
	switch format {
	case export.TypePNG:
		return &rasterDestination{encode: encodePNG}, nil
	case export.TypeJPEG:
		return &rasterDestination{encode: encodeJPEG}, nil
	case export.TypeTIFF:
		return &rasterDestination{encode: encodeTIFF}, nil
	case export.TypeGIF:
		return &rasterDestination{encode: encodeGIF}, nil
	default:
		return nil, fmt.Errorf("no encoder for format token %q: %w",
			format, export.ErrBackendUnavailable)
	}
}

// CreatePage allocates a single-page PDF drawing context of the given size
// in points.
func (Std) CreatePage(width, height float64) (export.PageContext, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("page size %gx%g must be positive: %w",
			width, height, export.ErrBackendUnavailable)
	}
	return &pdfPage{width: width, height: height}, nil
}
