package export

import "fmt"

// Encoder dispatches an Options variant plus an image handle to the graphics
// backend. Every Encode call is independent and stateless; the encoder holds
// no mutable state beyond the injected backend.
type Encoder struct {
	backend GraphicsBackend
}

// NewEncoder creates an encoder over the given backend.
func NewEncoder(backend GraphicsBackend) *Encoder {
	return &Encoder{backend: backend}
}

// Encode produces encoded bytes for the image under the given options.
func (e *Encoder) Encode(img Image, opts Options) ([]byte, error) {
	return e.EncodeWithProperties(img, opts, nil)
}

// EncodeWithProperties additionally merges caller-supplied backend-specific
// properties on top of the normalized set. Core-computed values are applied
// first, extras merged in, then dimension and DPI keys re-applied: those are
// always core-authoritative.
func (e *Encoder) EncodeWithProperties(img Image, opts Options, extra Properties) ([]byte, error) {
	if img == nil || img.Width() <= 0 || img.Height() <= 0 {
		return nil, fmt.Errorf("image handle is nil or zero-sized: %w", ErrUnsupportedImage)
	}
	if opts.Format == PDF {
		return e.encodePDF(img, opts)
	}
	return e.encodeRaster(img, opts, extra)
}

func (e *Encoder) encodeRaster(img Image, opts Options, extra Properties) ([]byte, error) {
	dpi := opts.Scale * BaselineDPI
	if dpi <= 0 {
		return nil, fmt.Errorf("scale %g yields dpi %g: %w", opts.Scale, dpi, ErrInvalidDPI)
	}

	props := normalizedProperties(img, opts, dpi)
	if len(extra) > 0 {
		props = props.clone()
		for k, v := range extra {
			props[k] = v
		}
		setDimensions(props, img, dpi)
	}

	dst, err := e.backend.CreateDestination(opts.Format.TypeIdentifier())
	if err != nil {
		return nil, fmt.Errorf("create %s destination: %w", opts.Format, err)
	}
	if dst == nil {
		return nil, fmt.Errorf("create %s destination: %w", opts.Format, ErrBackendUnavailable)
	}
	defer func() { _ = dst.Close() }()

	if err := dst.AddImage(img, props); err != nil {
		return nil, fmt.Errorf("add image to %s destination: %w", opts.Format, err)
	}

	out, err := dst.Finalize()
	if err != nil {
		return nil, fmt.Errorf("finalize %s destination: %w", opts.Format, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("finalize %s destination: %w", opts.Format, ErrEncodingFailed)
	}
	return out, nil
}

func (e *Encoder) encodePDF(img Image, opts Options) ([]byte, error) {
	page, err := e.backend.CreatePage(opts.PageSize.Width, opts.PageSize.Height)
	if err != nil {
		return nil, fmt.Errorf("create %gx%g page context: %w",
			opts.PageSize.Width, opts.PageSize.Height, err)
	}
	if page == nil {
		return nil, fmt.Errorf("create page context: %w", ErrBackendUnavailable)
	}
	defer func() { _ = page.Close() }()

	if err := page.DrawImage(img); err != nil {
		return nil, fmt.Errorf("draw image on page: %w", err)
	}

	out, err := page.Finalize()
	if err != nil {
		return nil, fmt.Errorf("finalize page: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("finalize page: %w", ErrEncodingFailed)
	}
	return out, nil
}

// normalizedProperties builds the backend-agnostic option set: source pixel
// dimensions, resolution derived from scale, and, when the options carry
// them, lossy quality and the GPS exclusion flag.
func normalizedProperties(img Image, opts Options, dpi float64) Properties {
	props := make(Properties, 6)
	setDimensions(props, img, dpi)
	if opts.Compression != nil {
		props[PropQuality] = *opts.Compression
	}
	if opts.ExcludeMetadata {
		props[PropExcludeGPS] = true
	}
	return props
}

func setDimensions(props Properties, img Image, dpi float64) {
	props[PropPixelWidth] = img.Width()
	props[PropPixelHeight] = img.Height()
	props[PropDPIWidth] = dpi
	props[PropDPIHeight] = dpi
}
