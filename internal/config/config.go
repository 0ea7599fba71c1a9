package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Image resolution
	ImageBaseDir string

	// Compilation
	DefaultCodeLanguage string
	MaxNestingDepth     int // 0 = unlimited
	TableStrictColumns  bool

	// Upload limits
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("MDRENDER_API_KEY"),

		ImageBaseDir: envOr("IMAGE_BASE_DIR", "."),

		DefaultCodeLanguage: os.Getenv("DEFAULT_CODE_LANGUAGE"),
		MaxNestingDepth:     envInt("MAX_NESTING_DEPTH", 0),
		TableStrictColumns:  envBool("TABLE_STRICT_COLUMNS", true),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB
	}

	if cfg.MaxNestingDepth < 0 {
		cfg.MaxNestingDepth = 0
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("MDRENDER_API_KEY is required")
	}
	info, err := os.Stat(c.ImageBaseDir)
	if err != nil {
		return fmt.Errorf("IMAGE_BASE_DIR: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("IMAGE_BASE_DIR is not a directory: %s", c.ImageBaseDir)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
