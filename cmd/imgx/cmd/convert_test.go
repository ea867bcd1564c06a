package cmd

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgx-dev/imgx/internal/decode"
	"github.com/imgx-dev/imgx/internal/export"
)

func writeTestPNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: 42, A: 255})
		}
	}
	path := filepath.Join(dir, "input.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestConvertCommand_PNGToJPEG(t *testing.T) {
	dir := t.TempDir()
	input := writeTestPNG(t, dir, 32, 24)
	output := filepath.Join(dir, "out.jpg")

	resetFlags(convertCmd)
	root := GetRootCommand()
	root.SetArgs([]string{"convert", input, "-o", output, "--format", "jpeg", "--quality", "0.9"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	back, err := decode.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", back.Metadata().Format)
	assert.Equal(t, 32, back.Width())
	assert.Equal(t, 24, back.Height())
}

func TestConvertCommand_PDF(t *testing.T) {
	dir := t.TempDir()
	input := writeTestPNG(t, dir, 16, 16)
	output := filepath.Join(dir, "out.pdf")

	resetFlags(convertCmd)
	root := GetRootCommand()
	root.SetArgs([]string{
		"convert", input, "-o", output,
		"--format", "pdf", "--page-width", "600", "--page-height", "600",
	})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestConvertCommand_MissingOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeTestPNG(t, dir, 8, 8)

	resetFlags(convertCmd)
	root := GetRootCommand()
	root.SetArgs([]string{"convert", input})
	assert.Error(t, root.Execute())
}

func TestConvertCommand_MissingInput(t *testing.T) {
	dir := t.TempDir()
	resetFlags(convertCmd)
	root := GetRootCommand()
	root.SetArgs([]string{"convert", filepath.Join(dir, "missing.png"), "-o", filepath.Join(dir, "out.png")})
	assert.Error(t, root.Execute())
}

func TestBuildOptions_ScaleDefaultsFromConfig(t *testing.T) {
	resetFlags(convertCmd)
	cfg := GetConfig()
	orig := cfg.Output.Scale
	cfg.Output.Scale = 2
	t.Cleanup(func() { cfg.Output.Scale = orig })

	opts, err := buildOptions(convertCmd, export.PNG)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, opts.Scale, 1e-9)
}

func TestBuildOptions_ScaleFlagOverridesConfig(t *testing.T) {
	resetFlags(convertCmd)
	cfg := GetConfig()
	orig := cfg.Output.Scale
	cfg.Output.Scale = 2
	t.Cleanup(func() { cfg.Output.Scale = orig })

	require.NoError(t, convertCmd.Flags().Set("scale", "3"))
	opts, err := buildOptions(convertCmd, export.PNG)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, opts.Scale, 1e-9)
}

func TestBuildOptions_DPIFlagOverridesConfigScale(t *testing.T) {
	resetFlags(convertCmd)
	cfg := GetConfig()
	orig := cfg.Output.Scale
	cfg.Output.Scale = 5
	t.Cleanup(func() { cfg.Output.Scale = orig })

	require.NoError(t, convertCmd.Flags().Set("dpi", "144"))
	opts, err := buildOptions(convertCmd, export.PNG)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, opts.Scale, 1e-9) // 144 dpi on the 72 baseline
}

func TestConvertCommand_RejectsScaleWithDPI(t *testing.T) {
	dir := t.TempDir()
	input := writeTestPNG(t, dir, 8, 8)

	resetFlags(convertCmd)
	root := GetRootCommand()
	root.SetArgs([]string{
		"convert", input, "-o", filepath.Join(dir, "out.png"),
		"--scale", "2", "--dpi", "144",
	})
	assert.Error(t, root.Execute())
}
