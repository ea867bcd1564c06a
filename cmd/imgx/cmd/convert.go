package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/imgx-dev/imgx/internal/backend"
	"github.com/imgx-dev/imgx/internal/decode"
	"github.com/imgx-dev/imgx/internal/export"
)

// convertCmd represents the convert command.
var convertCmd = &cobra.Command{
	Use:   "convert INPUT",
	Short: "Decode an image and re-encode it into another format",
	Long: `Decode an image file and re-encode it as PNG, JPEG, TIFF, GIF, or a
single-page PDF.

Supported inputs: PNG, JPEG, GIF, BMP, TIFF, WebP

Examples:
  imgx convert photo.png -o photo.jpg --format jpeg --quality 0.8
  imgx convert photo.png -o photo@2x.png --scale 2
  imgx convert photo.jpg -o photo.tiff --format tiff --dpi 300 --strip-metadata
  imgx convert scan.png -o scan.pdf --format pdf --page-width 612 --page-height 792`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			return errors.New("no output file provided (use --output)")
		}

		formatName := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			formatName, _ = cmd.Flags().GetString("format")
		}
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}

		opts, err := buildOptions(cmd, format)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		img, err := decode.Decode(data)
		if err != nil {
			return err
		}
		slog.Debug("decoded input",
			"file", args[0],
			"format", img.Metadata().Format,
			"width", img.Width(),
			"height", img.Height())

		enc := export.NewEncoder(backend.New())
		out, err := enc.Encode(img, opts)
		if err != nil {
			return err
		}

		if err := os.WriteFile(output, out, 0o600); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		slog.Info("converted image",
			"input", args[0],
			"output", output,
			"format", format.String(),
			"bytes", len(out))
		return nil
	},
}

// buildOptions translates convert flags into export options for the format.
func buildOptions(cmd *cobra.Command, format export.Format) (export.Options, error) {
	cfg := GetConfig()

	var opts []export.Option
	if cmd.Flags().Changed("scale") {
		scale, _ := cmd.Flags().GetFloat64("scale")
		opts = append(opts, export.WithScale(scale))
	}
	if cmd.Flags().Changed("dpi") {
		dpi, _ := cmd.Flags().GetFloat64("dpi")
		opts = append(opts, export.WithDPI(dpi))
	}
	if !cmd.Flags().Changed("scale") && !cmd.Flags().Changed("dpi") {
		opts = append(opts, export.WithScale(cfg.Output.Scale))
	}
	if cmd.Flags().Changed("quality") {
		quality, _ := cmd.Flags().GetFloat64("quality")
		opts = append(opts, export.WithCompression(quality))
	} else if cfg.Output.Quality >= 0 && (format == export.JPEG || format == export.TIFF) {
		opts = append(opts, export.WithCompression(cfg.Output.Quality))
	}
	strip := cfg.Output.StripMetadata
	if cmd.Flags().Changed("strip-metadata") {
		strip, _ = cmd.Flags().GetBool("strip-metadata")
	}
	if strip {
		opts = append(opts, export.WithoutMetadata())
	}

	switch format {
	case export.PNG:
		return export.NewPNG(opts...)
	case export.JPEG:
		return export.NewJPEG(opts...)
	case export.TIFF:
		return export.NewTIFF(opts...)
	case export.GIF:
		return export.NewGIF(), nil
	case export.PDF:
		width := cfg.PDF.PageWidth
		if cmd.Flags().Changed("page-width") {
			width, _ = cmd.Flags().GetFloat64("page-width")
		}
		height := cfg.PDF.PageHeight
		if cmd.Flags().Changed("page-height") {
			height, _ = cmd.Flags().GetFloat64("page-height")
		}
		return export.NewPDF(width, height)
	default:
		return export.Options{}, fmt.Errorf("unknown format %q: %w", format, export.ErrInvalidParameter)
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("output", "o", "", "output file path (required)")
	convertCmd.Flags().String("format", "png", "output format (png, jpeg, tiff, gif, pdf)")
	convertCmd.Flags().Float64("scale", 1.0, "output scale on the 72-DPI baseline (mutually exclusive with --dpi)")
	convertCmd.Flags().Float64("dpi", 72, "output resolution in dots per inch (mutually exclusive with --scale)")
	convertCmd.Flags().Float64("quality", -1, "lossy quality in [0,1] for JPEG/TIFF (out-of-range values are clamped)")
	convertCmd.Flags().Bool("strip-metadata", false, "exclude GPS metadata from the output")
	convertCmd.Flags().Float64("page-width", 612, "PDF page width in points")
	convertCmd.Flags().Float64("page-height", 792, "PDF page height in points")
}
