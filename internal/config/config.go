package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Inputs
	Root  string
	Theme string

	// Output
	Out       string
	OutAssets string
	OutExt    string
	DumpViews bool

	// Rendering
	Workers    int
	Meta       string // JSON object mixed over all other metadata
	RequireTOC bool

	// Preview server
	Port            string
	RescanDelay     time.Duration
	ShutdownTimeout time.Duration

	LogLevel string
}

// LoadDotEnv loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func Load() Config {
	cfg := Config{
		Root:  envOr("SELLECK_ROOT", "."),
		Theme: envOr("SELLECK_THEME", filepath.Join("themes", "default")),

		Out:       envOr("SELLECK_OUT", "docs"),
		OutAssets: os.Getenv("SELLECK_OUT_ASSETS"),
		OutExt:    envOr("SELLECK_OUT_EXT", ".html"),
		DumpViews: envBool("SELLECK_DUMP_VIEWS", false),

		Workers:    envInt("SELLECK_WORKERS", 4),
		Meta:       os.Getenv("SELLECK_META"),
		RequireTOC: envBool("SELLECK_REQUIRE_TOC", false),

		Port:            envOr("SELLECK_PORT", "3000"),
		RescanDelay:     envDuration("SELLECK_RESCAN_DELAY", 300*time.Millisecond),
		ShutdownTimeout: envDuration("SELLECK_SHUTDOWN_TIMEOUT", 10*time.Second),

		LogLevel: envOr("SELLECK_LOG_LEVEL", "info"),
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.RescanDelay <= 0 {
		cfg.RescanDelay = 300 * time.Millisecond
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg
}

// AssetsDir returns OutAssets, defaulting to <Out>/assets.
func (c Config) AssetsDir() string {
	if c.OutAssets != "" {
		return c.OutAssets
	}
	return filepath.Join(c.Out, "assets")
}

// OverrideMeta decodes Meta. An empty Meta yields a nil map.
func (c Config) OverrideMeta() (map[string]any, error) {
	if c.Meta == "" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(c.Meta), &m); err != nil {
		return nil, fmt.Errorf("SELLECK_META: %w", err)
	}
	return m, nil
}

func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("SELLECK_ROOT is required")
	}
	if c.Theme == "" {
		return fmt.Errorf("SELLECK_THEME is required")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("SELLECK_WORKERS must be positive, got %d", c.Workers)
	}
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("SELLECK_PORT must be a port number, got %q", c.Port)
	}
	if _, err := c.OverrideMeta(); err != nil {
		return err
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
