package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "sec_swot_output", cfg.OutputDir)
	assert.Equal(t, "sec_portfolio", cfg.PortfolioDir)
	assert.Equal(t, []string{"10-K"}, cfg.Forms)
	assert.Equal(t, "fs", cfg.Source)
	assert.Equal(t, "python", cfg.Pipeline.Command)
	assert.Equal(t, []string{"swot_analysis.py"}, cfg.Pipeline.Args)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())

	earliest, latest, err := cfg.DateBounds()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), earliest)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), latest)
}

func TestLoadConfig_ValidYAML_OverridesDefaults(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "swot-atlas.yaml")
	content := `output_dir: "/data/out"
forms: ["10-K", "10-Q"]
latest_end: "2026-12-31"
source: "s3"
s3:
  bucket: "filings"
  prefix: "swot"
pipeline:
  command: "/usr/bin/swot-pipeline"
  args: []
  timeout: "30m"
log_level: "debug"`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// When
	cfg, err := LoadConfig(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "/data/out", cfg.OutputDir)
	assert.Equal(t, []string{"10-K", "10-Q"}, cfg.Forms)
	assert.Equal(t, "s3", cfg.Source)
	assert.Equal(t, "filings", cfg.S3.Bucket)
	assert.Equal(t, "swot", cfg.S3.Prefix)
	assert.Equal(t, "/usr/bin/swot-pipeline", cfg.Pipeline.Command)
	assert.Empty(t, cfg.Pipeline.Args)
	assert.Equal(t, 30*time.Minute, cfg.Pipeline.Timeout)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SWOT_ATLAS_OUTPUT_DIR", "/env/out")
	t.Setenv("SWOT_ATLAS_SERVER_PORT", "9090")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/env/out", cfg.OutputDir)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown source", content: `source: "ftp"`},
		{name: "s3 without bucket", content: `source: "s3"`},
		{name: "bad date", content: `earliest_start: "01/01/2020"`},
		{name: "inverted bounds", content: "earliest_start: \"2024-01-01\"\nlatest_end: \"2023-01-01\""},
		{name: "bad log level", content: `log_level: "loud"`},
		{name: "malformed yaml", content: `output_dir: [unclosed`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
