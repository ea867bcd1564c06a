package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/imgx-dev/imgx/internal/decode"
)

// infoResult is the JSON payload of the info command.
type infoResult struct {
	File        string `json:"file"`
	Format      string `json:"format"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Orientation int    `json:"orientation,omitempty"`
	HasGPS      bool   `json:"has_gps"`
	CaptureTime string `json:"capture_time,omitempty"`
}

// infoCmd represents the info command.
var infoCmd = &cobra.Command{
	Use:   "info INPUT",
	Short: "Show decoded image dimensions and metadata",
	Long: `Decode an image file and report its format, pixel dimensions, and EXIF
summary (orientation, GPS presence, capture time).

Examples:
  imgx info photo.jpg
  imgx info photo.jpg --format json`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		img, err := decode.Decode(data)
		if err != nil {
			return err
		}
		meta := img.Metadata()

		result := infoResult{
			File:        args[0],
			Format:      meta.Format,
			Width:       meta.Width,
			Height:      meta.Height,
			Orientation: meta.Orientation,
			HasGPS:      meta.HasGPS,
		}
		if !meta.CaptureTime.IsZero() {
			result.CaptureTime = meta.CaptureTime.Format(time.RFC3339)
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "File:        %s\n", result.File)
		_, _ = fmt.Fprintf(out, "Format:      %s\n", result.Format)
		_, _ = fmt.Fprintf(out, "Dimensions:  %dx%d\n", result.Width, result.Height)
		if result.Orientation > 0 {
			_, _ = fmt.Fprintf(out, "Orientation: %d\n", result.Orientation)
		}
		_, _ = fmt.Fprintf(out, "GPS data:    %t\n", result.HasGPS)
		if result.CaptureTime != "" {
			_, _ = fmt.Fprintf(out, "Captured:    %s\n", result.CaptureTime)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().String("format", "text", "output format (text, json)")
}
