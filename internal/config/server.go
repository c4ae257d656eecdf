package config

import (
	"fmt"
	"os"
	"time"
)

// ServerConfig holds HTTP server and storage configuration.
type ServerConfig struct {
	// Port the HTTP server listens on.
	// Default: 8080
	Port int

	// ReadTimeout for incoming requests. Uploads can be large, so this is
	// generous by default.
	// Default: 60 seconds
	ReadTimeout time.Duration

	// WriteTimeout for responses. Summarization of a large document can
	// take several minutes end to end.
	// Default: 10 minutes
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 15 seconds
	ShutdownTimeout time.Duration

	// DatabaseURL is the PostgreSQL connection string. Empty disables
	// persistence; summaries are returned but not stored.
	DatabaseURL string

	// MaxUploadBytes caps the size of an uploaded PDF.
	// Default: 20 MiB
	MaxUploadBytes int64

	// EnableMetrics exposes the Prometheus /metrics endpoint.
	// Default: true
	EnableMetrics bool
}

// ExtractorConfig holds PDF text extraction configuration.
type ExtractorConfig struct {
	// PdftotextPath is the poppler pdftotext binary.
	// Default: "pdftotext"
	PdftotextPath string

	// PdfinfoPath is the poppler pdfinfo binary.
	// Default: "pdfinfo"
	PdfinfoPath string

	// MaxPages rejects documents with more pages than this.
	// Default: 100
	MaxPages int

	// MinTextPerPage is the average character count per page below which
	// a document is treated as scanned and the OCR fallback runs.
	// Default: 50
	MinTextPerPage int

	// OCREnabled turns on the OCR fallback for scanned documents.
	// Default: true
	OCREnabled bool

	// PdftoppmPath is the poppler pdftoppm binary used to render pages
	// for OCR. Default: "pdftoppm"
	PdftoppmPath string

	// TesseractPath is the tesseract binary. Default: "tesseract"
	TesseractPath string

	// OCRLanguages is the tesseract language selection (-l flag).
	// Default: "eng"
	OCRLanguages string

	// Timeout bounds one extraction subprocess run.
	// Default: 2 minutes
	Timeout time.Duration
}

// LoadServerConfig loads server configuration from environment variables.
func LoadServerConfig() (*ServerConfig, error) {
	config := &ServerConfig{
		Port:            getEnvInt("PORT", 8080),
		ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 60*time.Second),
		WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Minute),
		ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_BYTES", 20<<20)),
		EnableMetrics:   getEnvBool("METRICS_ENABLED", true),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}

	return config, nil
}

// Validate checks configuration correctness.
func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// LoadExtractorConfig loads extractor configuration from environment
// variables.
func LoadExtractorConfig() (*ExtractorConfig, error) {
	config := &ExtractorConfig{
		PdftotextPath:  getEnvOrDefault("PDFTOTEXT_PATH", "pdftotext"),
		PdfinfoPath:    getEnvOrDefault("PDFINFO_PATH", "pdfinfo"),
		MaxPages:       getEnvInt("EXTRACTOR_MAX_PAGES", 100),
		MinTextPerPage: getEnvInt("EXTRACTOR_MIN_TEXT_PER_PAGE", 50),
		OCREnabled:     getEnvBool("EXTRACTOR_OCR_ENABLED", true),
		PdftoppmPath:   getEnvOrDefault("PDFTOPPM_PATH", "pdftoppm"),
		TesseractPath:  getEnvOrDefault("TESSERACT_PATH", "tesseract"),
		OCRLanguages:   getEnvOrDefault("EXTRACTOR_OCR_LANGUAGES", "eng"),
		Timeout:        getEnvDuration("EXTRACTOR_TIMEOUT", 2*time.Minute),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extractor configuration: %w", err)
	}

	return config, nil
}

// Validate checks configuration correctness.
func (c *ExtractorConfig) Validate() error {
	if c.PdftotextPath == "" {
		return fmt.Errorf("PDFTOTEXT_PATH cannot be empty")
	}
	if c.PdfinfoPath == "" {
		return fmt.Errorf("PDFINFO_PATH cannot be empty")
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("EXTRACTOR_MAX_PAGES must be positive")
	}
	if c.MinTextPerPage < 0 {
		return fmt.Errorf("EXTRACTOR_MIN_TEXT_PER_PAGE cannot be negative")
	}
	if c.OCREnabled {
		if c.PdftoppmPath == "" {
			return fmt.Errorf("PDFTOPPM_PATH cannot be empty when OCR is enabled")
		}
		if c.TesseractPath == "" {
			return fmt.Errorf("TESSERACT_PATH cannot be empty when OCR is enabled")
		}
		if c.OCRLanguages == "" {
			return fmt.Errorf("EXTRACTOR_OCR_LANGUAGES cannot be empty when OCR is enabled")
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("EXTRACTOR_TIMEOUT must be positive")
	}
	return nil
}
