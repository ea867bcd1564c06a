package backend

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/imgx-dev/imgx/internal/export"
)

// pdfPage composes a single PDF page of a fixed point size with one image
// drawn to fill the full page rect. Composition is delegated to pdfcpu's
// image import.
type pdfPage struct {
	width  float64
	height float64
	img    image.Image
}

func (p *pdfPage) DrawImage(img export.Image) error {
	pixels, err := img.Render(1)
	if err != nil {
		return fmt.Errorf("render image: %w", err)
	}
	if pixels == nil {
		return fmt.Errorf("render image: %w", export.ErrUnsupportedImage)
	}
	p.img = pixels
	return nil
}

func (p *pdfPage) Finalize() ([]byte, error) {
	if p.img == nil {
		return nil, fmt.Errorf("no image drawn: %w", export.ErrEncodingFailed)
	}

	// pdfcpu imports encoded image streams, so round-trip through PNG
	// (lossless) before page composition.
	var imgBuf bytes.Buffer
	if err := png.Encode(&imgBuf, p.img); err != nil {
		return nil, fmt.Errorf("encode page image: %w", err)
	}

	desc := fmt.Sprintf("dim:%g %g, pos:full", p.width, p.height)
	imp, err := pdfcpu.ParseImportDetails(desc, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("page import details: %w", err)
	}

	var out bytes.Buffer
	if err := api.ImportImages(nil, &out, []io.Reader{&imgBuf}, imp, nil); err != nil {
		return nil, fmt.Errorf("compose pdf page: %w", err)
	}
	return out.Bytes(), nil
}

func (p *pdfPage) Close() error {
	p.img = nil
	return nil
}
