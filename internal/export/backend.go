package export

import "image"

// Format tokens handed to GraphicsBackend.CreateDestination. They are opaque
// to the core; the standard backend maps them to its encoders.
const (
	TypePNG  = "public.png"
	TypeJPEG = "public.jpeg"
	TypeTIFF = "public.tiff"
	TypeGIF  = "com.compuserve.gif"
	TypePDF  = "com.adobe.pdf"
)

// Keys of the normalized property set built by the encoder. Dimension and
// DPI keys are always core-authoritative; quality and metadata keys appear
// only when the options carry them.
const (
	PropPixelWidth  = "pixel-width"
	PropPixelHeight = "pixel-height"
	PropDPIWidth    = "dpi-width"
	PropDPIHeight   = "dpi-height"
	PropQuality     = "lossy-compression-quality"
	PropExcludeGPS  = "exclude-gps-metadata"
)

// Properties is the normalized option set a destination receives, possibly
// merged with caller-supplied backend-specific extras.
type Properties map[string]any

// Quality returns the lossy quality property if present.
func (p Properties) Quality() (float64, bool) {
	q, ok := p[PropQuality].(float64)
	return q, ok
}

// clone returns a shallow copy so merges never mutate the caller's map.
func (p Properties) clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Image is the handle the encoder borrows for one call. Implementations own
// the decoded pixels; the encoder never retains a handle past Encode.
type Image interface {
	Width() int
	Height() int

	// Render produces the backend's pixel representation at the given scale.
	// Failures should wrap ErrUnsupportedImage.
	Render(scale float64) (image.Image, error)
}

// Destination accumulates one image plus its properties and finalizes them
// into an encoded byte buffer.
type Destination interface {
	AddImage(img Image, props Properties) error
	Finalize() ([]byte, error)

	// Close releases the destination. Safe to call after Finalize and on
	// error paths.
	Close() error
}

// PageContext is a single-page vector drawing context. DrawImage places the
// image scaled-to-fit into the full page rect at origin (0,0).
type PageContext interface {
	DrawImage(img Image) error
	Finalize() ([]byte, error)
	Close() error
}

// GraphicsBackend performs the actual encoding. The core treats it as a
// black box; implementations must be safe for concurrent use across
// independent destinations and page contexts.
type GraphicsBackend interface {
	CreateDestination(format string) (Destination, error)
	CreatePage(width, height float64) (PageContext, error)
}
