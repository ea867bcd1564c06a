package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/imgx-dev/imgx/internal/decode"
	"github.com/imgx-dev/imgx/internal/export"
	"github.com/imgx-dev/imgx/internal/version"
)

// contentTypes maps export formats to response content types.
var contentTypes = map[export.Format]string{
	export.PNG:  "image/png",
	export.JPEG: "image/jpeg",
	export.TIFF: "image/tiff",
	export.GIF:  "image/gif",
	export.PDF:  "application/pdf",
}

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error encoding health response", "error", err)
	}
}

// convertHandler decodes an uploaded image and re-encodes it under the
// requested export options.
func (s *Server) convertHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	img, opts, err := s.parseConvertRequest(w, r)
	if err != nil {
		convertRequestsTotal.WithLabelValues("unknown", "error").Inc()
		return // error already written
	}

	start := time.Now()
	out, err := s.encoder.Encode(img, opts)
	duration := time.Since(start)

	if err != nil {
		convertRequestsTotal.WithLabelValues(opts.Format.String(), "error").Inc()
		status := http.StatusInternalServerError
		if errors.Is(err, export.ErrInvalidParameter) || errors.Is(err, export.ErrInvalidDPI) {
			status = http.StatusBadRequest
		}
		s.writeErrorResponse(w, fmt.Sprintf("Encoding failed: %v", err), status)
		return
	}

	convertRequestsTotal.WithLabelValues(opts.Format.String(), "success").Inc()
	convertDuration.WithLabelValues(opts.Format.String()).Observe(duration.Seconds())
	outputSizeBytes.Observe(float64(len(out)))

	w.Header().Set("Content-Type", contentTypes[opts.Format])
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	if _, err := w.Write(out); err != nil {
		slog.Error("Error writing convert response", "error", err)
	}
}

func (s *Server) parseConvertRequest(w http.ResponseWriter, r *http.Request) (export.Image, export.Options, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
		s.writeErrorResponse(w, "Failed to parse form data", http.StatusBadRequest)
		return nil, export.Options{}, err
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeErrorResponse(w, "No image file provided", http.StatusBadRequest)
		return nil, export.Options{}, err
	}
	defer func() { _ = file.Close() }()

	if header.Size > s.maxUploadMB*1024*1024 {
		s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
		return nil, export.Options{}, errors.New("file too large")
	}
	uploadSizeBytes.Observe(float64(header.Size))

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read image data", http.StatusInternalServerError)
		return nil, export.Options{}, err
	}

	img, err := decode.Decode(data)
	if err != nil {
		s.writeErrorResponse(w, "Invalid image format", http.StatusBadRequest)
		return nil, export.Options{}, err
	}

	opts, err := optionsFromForm(r)
	if err != nil {
		s.writeErrorResponse(w, fmt.Sprintf("Invalid export options: %v", err), http.StatusBadRequest)
		return nil, export.Options{}, err
	}

	return img, opts, nil
}

// optionsFromForm builds export options from form/query values: format,
// scale, dpi, quality, strip_metadata, page_width, page_height.
func optionsFromForm(r *http.Request) (export.Options, error) {
	name := formValue(r, "format")
	if name == "" {
		name = "png"
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return export.Options{}, err
	}

	var opts []export.Option
	if v := formValue(r, "scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return export.Options{}, fmt.Errorf("invalid scale %q: %w", v, export.ErrInvalidParameter)
		}
		opts = append(opts, export.WithScale(scale))
	}
	if v := formValue(r, "dpi"); v != "" {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return export.Options{}, fmt.Errorf("invalid dpi %q: %w", v, export.ErrInvalidParameter)
		}
		opts = append(opts, export.WithDPI(dpi))
	}
	if v := formValue(r, "quality"); v != "" {
		quality, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return export.Options{}, fmt.Errorf("invalid quality %q: %w", v, export.ErrInvalidParameter)
		}
		opts = append(opts, export.WithCompression(quality))
	}
	if v := formValue(r, "strip_metadata"); v == "true" || v == "1" {
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
		width, err := parseFloatValue(r, "page_width")
		if err != nil {
			return export.Options{}, err
		}
		height, err := parseFloatValue(r, "page_height")
		if err != nil {
			return export.Options{}, err
		}
		return export.NewPDF(width, height)
	default:
		return export.Options{}, fmt.Errorf("unknown format %q: %w", name, export.ErrInvalidParameter)
	}
}

func parseFloatValue(r *http.Request, key string) (float64, error) {
	v := formValue(r, key)
	if v == "" {
		return 0, fmt.Errorf("missing %s: %w", key, export.ErrInvalidParameter)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, export.ErrInvalidParameter)
	}
	return f, nil
}

func formValue(r *http.Request, key string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return r.URL.Query().Get(key)
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: message}); err != nil {
		slog.Error("Error encoding error response", "error", err)
	}
}
