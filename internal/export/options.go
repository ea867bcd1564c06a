package export

import "fmt"

// BaselineDPI is the nominal resolution a scale of 1 corresponds to.
const BaselineDPI = 72.0

// Format identifies the target encoding of an Options value.
type Format int

const (
	PNG Format = iota
	JPEG
	TIFF
	GIF
	PDF
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case TIFF:
		return "tiff"
	case GIF:
		return "gif"
	case PDF:
		return "pdf"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// TypeIdentifier returns the backend-defined format token passed to
// destination creation. Raster tokens follow the uniform type identifier
// convention; PDF pages are created through the vector path instead.
func (f Format) TypeIdentifier() string {
	switch f {
	case PNG:
		return TypePNG
	case JPEG:
		return TypeJPEG
	case TIFF:
		return TypeTIFF
	case GIF:
		return TypeGIF
	case PDF:
		return TypePDF
	default:
		return ""
	}
}

// ParseFormat maps a format name to its Format value.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "tiff", "tif":
		return TIFF, nil
	case "gif":
		return GIF, nil
	case "pdf":
		return PDF, nil
	default:
		return 0, fmt.Errorf("unknown format %q: %w", name, ErrInvalidParameter)
	}
}

// Size is a PDF page size in points.
type Size struct {
	Width  float64
	Height float64
}

// Options is a validated export parameter bundle for one encode call.
// Construct values through the per-format constructors; the zero value is
// not meaningful. Options are immutable once constructed.
type Options struct {
	Format Format

	// Scale multiplies the 72-DPI baseline. Always set for raster formats;
	// the encoder derives dpi = Scale * 72.
	Scale float64

	// Compression is the lossy quality in [0,1] for JPEG and TIFF.
	// Nil means the encoder default.
	Compression *float64

	// ExcludeMetadata requests GPS metadata stripping where the format
	// carries it.
	ExcludeMetadata bool

	// PageSize is the output page size for PDF.
	PageSize Size
}

// settings collects constructor options before validation.
type settings struct {
	scale          *float64
	dpi            *float64
	compression    *float64
	stripMetadata  bool
	compressionSet bool
}

// Option configures a raster format constructor.
type Option func(*settings)

// WithScale sets the output scale. Mutually exclusive with WithDPI.
func WithScale(scale float64) Option {
	return func(s *settings) { s.scale = &scale }
}

// WithDPI sets the output resolution; the constructor derives
// scale = dpi / 72. Mutually exclusive with WithScale.
func WithDPI(dpi float64) Option {
	return func(s *settings) { s.dpi = &dpi }
}

// WithCompression sets the lossy quality for JPEG and TIFF. Out-of-range
// values are clamped into [0,1] rather than rejected: the knob is a
// continuous quality tradeoff, not a structural parameter.
func WithCompression(quality float64) Option {
	return func(s *settings) {
		s.compression = &quality
		s.compressionSet = true
	}
}

// WithoutMetadata requests GPS metadata stripping.
func WithoutMetadata() Option {
	return func(s *settings) { s.stripMetadata = true }
}

// NewPNG builds PNG export options. Scale defaults to 1 when neither
// WithScale nor WithDPI is given. Compression options are ignored: PNG has
// no lossy quality knob.
func NewPNG(opts ...Option) (Options, error) {
	s := apply(opts)
	scale, err := resolveScale(s)
	if err != nil {
		return Options{}, err
	}
	return Options{Format: PNG, Scale: scale, ExcludeMetadata: s.stripMetadata}, nil
}

// NewJPEG builds JPEG export options. Accepts WithScale or WithDPI
// (default scale 1), WithCompression, and WithoutMetadata.
func NewJPEG(opts ...Option) (Options, error) {
	return newLossy(JPEG, opts)
}

// NewTIFF builds TIFF export options with the same parameters as JPEG.
func NewTIFF(opts ...Option) (Options, error) {
	return newLossy(TIFF, opts)
}

// NewGIF builds GIF export options. GIF takes no parameters and always
// encodes at scale 1.
func NewGIF() Options {
	return Options{Format: GIF, Scale: 1}
}

// NewPDF builds single-page PDF export options for the given page size in
// points.
func NewPDF(width, height float64) (Options, error) {
	if width <= 0 || height <= 0 {
		return Options{}, fmt.Errorf("pdf page size %gx%g must be positive: %w",
			width, height, ErrInvalidParameter)
	}
	return Options{Format: PDF, PageSize: Size{Width: width, Height: height}}, nil
}

func newLossy(f Format, opts []Option) (Options, error) {
	s := apply(opts)
	scale, err := resolveScale(s)
	if err != nil {
		return Options{}, err
	}
	o := Options{Format: f, Scale: scale, ExcludeMetadata: s.stripMetadata}
	if s.compressionSet {
		q := clampUnit(*s.compression)
		o.Compression = &q
	}
	return o, nil
}

func apply(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolveScale enforces that at most one of scale/dpi is supplied, validates
// it, and derives the scale the encoder sees. Neither supplied means scale 1.
func resolveScale(s *settings) (float64, error) {
	switch {
	case s.scale != nil && s.dpi != nil:
		return 0, fmt.Errorf("scale and dpi are mutually exclusive: %w", ErrInvalidParameter)
	case s.scale != nil:
		if *s.scale <= 0 {
			return 0, fmt.Errorf("scale %g must be positive: %w", *s.scale, ErrInvalidParameter)
		}
		return *s.scale, nil
	case s.dpi != nil:
		if *s.dpi <= 0 {
			return 0, fmt.Errorf("dpi %g must be positive: %w", *s.dpi, ErrInvalidParameter)
		}
		return *s.dpi / BaselineDPI, nil
	default:
		return 1, nil
	}
}

// clampUnit clamps q into [0,1].
func clampUnit(q float64) float64 {
	if q < 0 {
		return 0
	}
	if q > 1 {
		return 1
	}
	return q
}
