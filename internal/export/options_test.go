package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPNG_DefaultScale(t *testing.T) {
	opts, err := NewPNG()
	require.NoError(t, err)
	assert.Equal(t, PNG, opts.Format)
	assert.InDelta(t, 1.0, opts.Scale, 1e-9)
	assert.Nil(t, opts.Compression)
	assert.False(t, opts.ExcludeMetadata)
}

func TestNewPNG_ScaleAndDPIAreEquivalent(t *testing.T) {
	for _, scale := range []float64{0.5, 1, 2, 3.25} {
		byScale, err := NewPNG(WithScale(scale))
		require.NoError(t, err)
		byDPI, err := NewPNG(WithDPI(scale * BaselineDPI))
		require.NoError(t, err)
		assert.Equal(t, byScale, byDPI, "scale %g", scale)
	}
}

func TestNewPNG_RejectsNonPositiveScale(t *testing.T) {
	for _, scale := range []float64{0, -1, -0.001} {
		_, err := NewPNG(WithScale(scale))
		require.Error(t, err, "scale %g", scale)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	}
}

func TestNewPNG_RejectsNonPositiveDPI(t *testing.T) {
	for _, dpi := range []float64{0, -72} {
		_, err := NewPNG(WithDPI(dpi))
		require.Error(t, err, "dpi %g", dpi)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	}
}

func TestNewPNG_RejectsScaleWithDPI(t *testing.T) {
	_, err := NewPNG(WithScale(2), WithDPI(144))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNewPNG_IgnoresCompression(t *testing.T) {
	opts, err := NewPNG(WithCompression(0.5))
	require.NoError(t, err)
	assert.Nil(t, opts.Compression)
}

func TestNewPNG_WithoutMetadata(t *testing.T) {
	opts, err := NewPNG(WithoutMetadata())
	require.NoError(t, err)
	assert.True(t, opts.ExcludeMetadata)
}

func TestNewJPEG_ClampsCompression(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"below range clamps to zero", -0.5, 0},
		{"above range clamps to one", 1.5, 1},
		{"in range passes through", 0.7, 0.7},
		{"lower bound", 0, 0},
		{"upper bound", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := NewJPEG(WithCompression(tt.in))
			require.NoError(t, err)
			require.NotNil(t, opts.Compression)
			assert.InDelta(t, tt.want, *opts.Compression, 1e-9)
		})
	}
}

func TestNewJPEG_CompressionAbsentByDefault(t *testing.T) {
	opts, err := NewJPEG(WithScale(2))
	require.NoError(t, err)
	assert.Nil(t, opts.Compression)
	assert.InDelta(t, 2.0, opts.Scale, 1e-9)
}

func TestNewTIFF_MatchesJPEGValidation(t *testing.T) {
	opts, err := NewTIFF(WithDPI(300), WithCompression(2), WithoutMetadata())
	require.NoError(t, err)
	assert.Equal(t, TIFF, opts.Format)
	assert.InDelta(t, 300.0/72.0, opts.Scale, 1e-9)
	require.NotNil(t, opts.Compression)
	assert.InDelta(t, 1.0, *opts.Compression, 1e-9)
	assert.True(t, opts.ExcludeMetadata)

	_, err = NewTIFF(WithScale(-3))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNewGIF(t *testing.T) {
	opts := NewGIF()
	assert.Equal(t, GIF, opts.Format)
	assert.InDelta(t, 1.0, opts.Scale, 1e-9)
	assert.Nil(t, opts.Compression)
	assert.False(t, opts.ExcludeMetadata)
}

func TestNewPDF(t *testing.T) {
	opts, err := NewPDF(600, 600)
	require.NoError(t, err)
	assert.Equal(t, PDF, opts.Format)
	assert.InDelta(t, 600.0, opts.PageSize.Width, 1e-9)
	assert.InDelta(t, 600.0, opts.PageSize.Height, 1e-9)
}

func TestNewPDF_RejectsNonPositiveDimensions(t *testing.T) {
	cases := []Size{
		{Width: 0, Height: 600},
		{Width: 600, Height: 0},
		{Width: -1, Height: 600},
		{Width: 600, Height: -1},
	}
	for _, size := range cases {
		_, err := NewPDF(size.Width, size.Height)
		require.Error(t, err, "size %+v", size)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"png": PNG, "jpeg": JPEG, "jpg": JPEG,
		"tiff": TIFF, "tif": TIFF, "gif": GIF, "pdf": PDF,
	} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("bmp")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestFormatTypeIdentifier(t *testing.T) {
	assert.Equal(t, "public.png", PNG.TypeIdentifier())
	assert.Equal(t, "public.jpeg", JPEG.TypeIdentifier())
	assert.Equal(t, "public.tiff", TIFF.TypeIdentifier())
	assert.Equal(t, "com.compuserve.gif", GIF.TypeIdentifier())
	assert.Equal(t, "com.adobe.pdf", PDF.TypeIdentifier())
}
