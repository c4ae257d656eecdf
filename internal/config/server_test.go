package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"SERVER_SHUTDOWN_TIMEOUT", "DATABASE_URL", "MAX_UPLOAD_BYTES",
		"METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}

	config, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, 60*time.Second, config.ReadTimeout)
	assert.Equal(t, 10*time.Minute, config.WriteTimeout)
	assert.Equal(t, 15*time.Second, config.ShutdownTimeout)
	assert.Empty(t, config.DatabaseURL)
	assert.Equal(t, int64(20<<20), config.MaxUploadBytes)
	assert.True(t, config.EnableMetrics)
}

func TestLoadServerConfig_CustomValues(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SERVER_WRITE_TIMEOUT", "5m")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/summaries")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("METRICS_ENABLED", "false")

	config, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, config.Port)
	assert.Equal(t, 5*time.Minute, config.WriteTimeout)
	assert.Equal(t, "postgres://localhost:5432/summaries", config.DatabaseURL)
	assert.Equal(t, int64(1<<20), config.MaxUploadBytes)
	assert.False(t, config.EnableMetrics)
}

func TestLoadServerConfig_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := LoadServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoadExtractorConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PDFTOTEXT_PATH", "PDFINFO_PATH", "EXTRACTOR_MAX_PAGES",
		"EXTRACTOR_MIN_TEXT_PER_PAGE", "EXTRACTOR_TIMEOUT",
		"EXTRACTOR_OCR_ENABLED", "PDFTOPPM_PATH", "TESSERACT_PATH",
		"EXTRACTOR_OCR_LANGUAGES",
	} {
		t.Setenv(key, "")
	}

	config, err := LoadExtractorConfig()
	require.NoError(t, err)

	assert.Equal(t, "pdftotext", config.PdftotextPath)
	assert.Equal(t, "pdfinfo", config.PdfinfoPath)
	assert.Equal(t, 100, config.MaxPages)
	assert.Equal(t, 50, config.MinTextPerPage)
	assert.True(t, config.OCREnabled)
	assert.Equal(t, "pdftoppm", config.PdftoppmPath)
	assert.Equal(t, "tesseract", config.TesseractPath)
	assert.Equal(t, "eng", config.OCRLanguages)
	assert.Equal(t, 2*time.Minute, config.Timeout)
}

func TestLoadExtractorConfig_Invalid(t *testing.T) {
	t.Setenv("EXTRACTOR_MAX_PAGES", "0")

	_, err := LoadExtractorConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EXTRACTOR_MAX_PAGES")
}
