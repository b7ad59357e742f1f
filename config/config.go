package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"

	"omr-bot/internal/infrastructure/rendition"
	"omr-bot/internal/omr"
)

type Config struct {
	TelegramToken string
	DatabaseURL   string // если пусто, результаты хранятся в памяти

	DebugDir string
	Debug    bool
	Workers  int

	OMR       omr.Config
	Rendition rendition.Options
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DebugDir:      getEnv("OMR_DEBUG_DIR", "debug_output"),
		OMR:           omr.DefaultConfig(),
		Rendition:     rendition.DefaultOptions(),
		Workers:       1,
	}

	var err error
	if cfg.Debug, err = envBool("OMR_DEBUG", false); err != nil {
		return nil, err
	}
	if cfg.Workers, err = envInt("OMR_WORKERS", cfg.Workers); err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("OMR_WORKERS must be positive, got %d", cfg.Workers)
	}
	if cfg.OMR.MaxDimension, err = envInt("OMR_MAX_DIMENSION", cfg.OMR.MaxDimension); err != nil {
		return nil, err
	}
	if cfg.OMR.MarkThreshold, err = envFloat("OMR_MARK_THRESHOLD", cfg.OMR.MarkThreshold); err != nil {
		return nil, err
	}
	if cfg.OMR.MarkThreshold < 0 || cfg.OMR.MarkThreshold >= 1 {
		return nil, fmt.Errorf("OMR_MARK_THRESHOLD must be in [0, 1), got %g", cfg.OMR.MarkThreshold)
	}
	if cfg.OMR.CellMargin, err = envFloat("OMR_CELL_MARGIN", cfg.OMR.CellMargin); err != nil {
		return nil, err
	}
	// При отступе 0.5 и больше ячейка схлопывается.
	if cfg.OMR.CellMargin < 0 || cfg.OMR.CellMargin >= 0.5 {
		return nil, fmt.Errorf("OMR_CELL_MARGIN must be in [0, 0.5), got %g", cfg.OMR.CellMargin)
	}
	if cfg.Rendition.MaxWidth, err = envInt("OMR_RENDITION_WIDTH", cfg.Rendition.MaxWidth); err != nil {
		return nil, err
	}
	if cfg.Rendition.Quality, err = envInt("OMR_RENDITION_QUALITY", cfg.Rendition.Quality); err != nil {
		return nil, err
	}

	colors := []struct {
		key string
		dst *color.RGBA
	}{
		{"OMR_COLOR_CORRECT", &cfg.OMR.Palette.Correct},
		{"OMR_COLOR_PARTIAL", &cfg.OMR.Palette.Partial},
		{"OMR_COLOR_INCORRECT", &cfg.OMR.Palette.Incorrect},
		{"OMR_COLOR_ID", &cfg.OMR.Palette.IDMark},
	}
	for _, c := range colors {
		if err := envColor(c.key, c.dst); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}

// envColor читает цвет вида #rrggbb.
func envColor(key string, dst *color.RGBA) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	r, g, b := c.RGB255()
	*dst = color.RGBA{R: r, G: g, B: b, A: 255}
	return nil
}
