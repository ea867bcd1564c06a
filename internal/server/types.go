package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imgx-dev/imgx/internal/backend"
	"github.com/imgx-dev/imgx/internal/export"
)

// encoderInterface defines the methods the server needs from an encoder.
type encoderInterface interface {
	Encode(img export.Image, opts export.Options) ([]byte, error)
}

// Server holds the HTTP server state and dependencies. Request timeouts are
// the http.Server's concern; see the serve command.
type Server struct {
	encoder     encoderInterface
	corsOrigin  string
	maxUploadMB int64
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigin  string
	MaxUploadMB int64
	TimeoutSec  int
}

// HealthResponse is the payload of the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewServer creates a new convert server instance over the standard backend.
func NewServer(config Config) (*Server, error) {
	return &Server{
		encoder:     export.NewEncoder(backend.New()),
		corsOrigin:  config.CORSOrigin,
		maxUploadMB: config.MaxUploadMB,
	}, nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/convert", s.corsMiddleware(s.convertHandler))
	mux.Handle("/metrics", promhttp.Handler())
}
