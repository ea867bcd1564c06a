package export

import "errors"

// Sentinel errors returned by option constructors and the encoder. Callers
// match them with errors.Is; every return site wraps them with context.
var (
	// ErrInvalidParameter indicates a supplied scale, dpi, or PDF dimension
	// was not positive at construction time.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidDPI indicates a derived dpi value was not positive at encode
	// time. Unreachable for options built via the constructors, but options
	// may be constructed as literals, so the encoder re-checks.
	ErrInvalidDPI = errors.New("invalid dpi")

	// ErrBackendUnavailable indicates the graphics backend could not allocate
	// an encoding destination or page context.
	ErrBackendUnavailable = errors.New("encoding backend unavailable")

	// ErrEncodingFailed indicates the backend ran but produced no output.
	ErrEncodingFailed = errors.New("encoding produced no output")

	// ErrUnsupportedImage indicates the image handle could not be rendered
	// into the backend's pixel representation.
	ErrUnsupportedImage = errors.New("unsupported image handle")
)
