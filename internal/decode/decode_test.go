package decode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecode_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(30, 20, color.RGBA{R: 200, A: 255})))

	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 30, img.Width())
	assert.Equal(t, 20, img.Height())
	assert.Equal(t, "png", img.Metadata().Format)
	assert.False(t, img.Metadata().HasGPS)
}

func TestDecode_BMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, solidImage(10, 10, color.RGBA{G: 100, A: 255})))

	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "bmp", img.Metadata().Format)
	assert.Equal(t, 10, img.Width())
}

func TestDecode_WebP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, webp.Encode(&buf, solidImage(16, 8, color.RGBA{B: 150, A: 255}), &webp.Options{Lossless: true}))

	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "webp", img.Metadata().Format)
	assert.Equal(t, 16, img.Width())
	assert.Equal(t, 8, img.Height())
}

func TestDecode_EmptyInput(t *testing.T) {
	_, err := Decode(nil)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "decode", decErr.Operation)
}

func TestDecode_GarbageInput(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	require.Error(t, err)
	var decErr *DecodeError
	assert.ErrorAs(t, err, &decErr)
}

func TestImage_RenderAtScale(t *testing.T) {
	img := NewImage(solidImage(40, 20, color.RGBA{R: 50, G: 60, B: 70, A: 255}))

	// Scale 1 returns decoded pixels unchanged.
	same, err := img.Render(1)
	require.NoError(t, err)
	assert.Equal(t, 40, same.Bounds().Dx())
	assert.Equal(t, 20, same.Bounds().Dy())

	doubled, err := img.Render(2)
	require.NoError(t, err)
	assert.Equal(t, 80, doubled.Bounds().Dx())
	assert.Equal(t, 40, doubled.Bounds().Dy())

	halved, err := img.Render(0.5)
	require.NoError(t, err)
	assert.Equal(t, 20, halved.Bounds().Dx())
	assert.Equal(t, 10, halved.Bounds().Dy())
}

func TestImage_RenderRejectsNonPositiveScale(t *testing.T) {
	img := NewImage(solidImage(10, 10, color.White))

	_, err := img.Render(0)
	require.Error(t, err)
	_, err = img.Render(-1)
	require.Error(t, err)
}

func TestApplyOrientation(t *testing.T) {
	// 2x1 image: left pixel red, right pixel blue.
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	src.Set(1, 0, color.RGBA{B: 255, A: 255})

	tests := []struct {
		orientation  int
		wantW, wantH int
	}{
		{0, 2, 1}, // absent: unchanged
		{1, 2, 1},
		{2, 2, 1},
		{3, 2, 1},
		{4, 2, 1},
		{5, 1, 2}, // transpositions and 90-degree turns swap axes
		{6, 1, 2},
		{7, 1, 2},
		{8, 1, 2},
	}
	for _, tt := range tests {
		got := applyOrientation(src, tt.orientation)
		b := got.Bounds()
		assert.Equal(t, tt.wantW, b.Dx(), "orientation %d width", tt.orientation)
		assert.Equal(t, tt.wantH, b.Dy(), "orientation %d height", tt.orientation)
	}

	// Orientation 3 is a 180-degree turn: red ends up on the right.
	rotated := applyOrientation(src, 3)
	r, _, _, _ := rotated.At(1, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}
