package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for the imgx application.
// It supports loading from configuration files, environment variables, and
// command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Output defaults for the convert command
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// PDF page defaults
	PDF PDFConfig `mapstructure:"pdf" yaml:"pdf" json:"pdf"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// OutputConfig contains default export parameters.
type OutputConfig struct {
	Format        string  `mapstructure:"format" yaml:"format" json:"format"`
	Scale         float64 `mapstructure:"scale" yaml:"scale" json:"scale"`
	Quality       float64 `mapstructure:"quality" yaml:"quality" json:"quality"`
	StripMetadata bool    `mapstructure:"strip_metadata" yaml:"strip_metadata" json:"strip_metadata"`
}

// PDFConfig contains default PDF page dimensions in points.
type PDFConfig struct {
	PageWidth  float64 `mapstructure:"page_width" yaml:"page_width" json:"page_width"`
	PageHeight float64 `mapstructure:"page_height" yaml:"page_height" json:"page_height"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host        string `mapstructure:"host" yaml:"host" json:"host"`
	Port        int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin  string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec  int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Output: OutputConfig{
			Format:  "png",
			Scale:   1.0,
			Quality: -1, // negative means "encoder default"
		},
		PDF: PDFConfig{
			// US Letter in points
			PageWidth:  612,
			PageHeight: 792,
		},
		Server: ServerConfig{
			Host:        "localhost",
			Port:        8080,
			CORSOrigin:  "*",
			MaxUploadMB: 50,
			TimeoutSec:  30,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (must be debug, info, warn, or error)", c.LogLevel)
	}

	switch c.Output.Format {
	case "png", "jpeg", "jpg", "tiff", "tif", "gif", "pdf":
	default:
		return fmt.Errorf("invalid output.format %q", c.Output.Format)
	}

	if c.Output.Scale <= 0 {
		return fmt.Errorf("output.scale must be positive, got %g", c.Output.Scale)
	}

	if c.PDF.PageWidth <= 0 || c.PDF.PageHeight <= 0 {
		return fmt.Errorf("pdf page size must be positive, got %gx%g",
			c.PDF.PageWidth, c.PDF.PageHeight)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("server.timeout_sec must be positive, got %d", c.Server.TimeoutSec)
	}

	return nil
}

// YAML renders the configuration as YAML for the config command.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(out), nil
}
