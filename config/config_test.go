package config

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.TelegramToken)
	assert.Equal(t, "debug_output", cfg.DebugDir)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 2000, cfg.OMR.MaxDimension)
	assert.InDelta(t, 0.20, cfg.OMR.MarkThreshold, 1e-9)
	assert.Equal(t, 800, cfg.Rendition.MaxWidth)
	assert.Equal(t, 60, cfg.Rendition.Quality)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OMR_DEBUG", "true")
	t.Setenv("OMR_DEBUG_DIR", "/tmp/omr")
	t.Setenv("OMR_WORKERS", "4")
	t.Setenv("OMR_MAX_DIMENSION", "1600")
	t.Setenv("OMR_MARK_THRESHOLD", "0.35")
	t.Setenv("OMR_COLOR_CORRECT", "#0080ff")
	t.Setenv("DATABASE_URL", "postgres://localhost/omr")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/omr", cfg.DebugDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 1600, cfg.OMR.MaxDimension)
	assert.InDelta(t, 0.35, cfg.OMR.MarkThreshold, 1e-9)
	assert.Equal(t, color.RGBA{R: 0, G: 0x80, B: 0xff, A: 255}, cfg.OMR.Palette.Correct)
	assert.Equal(t, "postgres://localhost/omr", cfg.DatabaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad workers", "OMR_WORKERS", "many"},
		{"zero workers", "OMR_WORKERS", "0"},
		{"bad threshold", "OMR_MARK_THRESHOLD", "high"},
		{"threshold of one", "OMR_MARK_THRESHOLD", "1"},
		{"negative threshold", "OMR_MARK_THRESHOLD", "-0.2"},
		{"bad margin", "OMR_CELL_MARGIN", "wide"},
		{"half margin", "OMR_CELL_MARGIN", "0.5"},
		{"negative margin", "OMR_CELL_MARGIN", "-0.1"},
		{"bad debug", "OMR_DEBUG", "maybe"},
		{"bad color", "OMR_COLOR_PARTIAL", "yellow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
