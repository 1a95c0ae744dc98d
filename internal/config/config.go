// Package config loads the corner-detection tuning file. The schema matches
// the /api/analyze parameters so the same JSON works for startup
// configuration and per-request overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical defaults file.
const DefaultConfigPath = "config/corner.defaults.json"

// CornerConfig is the root tuning configuration. All fields are optional;
// the Get* accessors supply defaults for anything omitted from the JSON, so
// partial configs are safe.
type CornerConfig struct {
	// Detection params
	Window       *int     `json:"window,omitempty"`
	ThresholdDeg *float64 `json:"threshold_degrees,omitempty"`

	// Server params
	DBPath        *string `json:"db_path,omitempty"`
	ListenAddr    *string `json:"listen_addr,omitempty"`
	MigrationsDir *string `json:"migrations_dir,omitempty"`
}

// EmptyCornerConfig returns a CornerConfig with every field unset.
func EmptyCornerConfig() *CornerConfig {
	return &CornerConfig{}
}

// LoadCornerConfig loads a CornerConfig from a JSON file. The file must have
// a .json extension and stay under the size cap.
func LoadCornerConfig(path string) (*CornerConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyCornerConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that any set values are usable.
func (c *CornerConfig) Validate() error {
	if c.Window != nil && *c.Window <= 0 {
		return fmt.Errorf("window must be positive, got %d", *c.Window)
	}
	if c.ThresholdDeg != nil {
		if *c.ThresholdDeg <= 0 || *c.ThresholdDeg > 180 {
			return fmt.Errorf("threshold_degrees must be in (0, 180], got %f", *c.ThresholdDeg)
		}
	}
	return nil
}

// GetWindow returns the window value or the default.
func (c *CornerConfig) GetWindow() int {
	if c.Window == nil {
		return 10
	}
	return *c.Window
}

// GetThresholdDeg returns the threshold_degrees value or the default.
func (c *CornerConfig) GetThresholdDeg() float64 {
	if c.ThresholdDeg == nil {
		return 125.0
	}
	return *c.ThresholdDeg
}

// GetDBPath returns the db_path value or the default.
func (c *CornerConfig) GetDBPath() string {
	if c.DBPath == nil || *c.DBPath == "" {
		return "corner_data.db"
	}
	return *c.DBPath
}

// GetListenAddr returns the listen_addr value or the default.
func (c *CornerConfig) GetListenAddr() string {
	if c.ListenAddr == nil || *c.ListenAddr == "" {
		return ":8080"
	}
	return *c.ListenAddr
}

// GetMigrationsDir returns the migrations_dir value or the default.
func (c *CornerConfig) GetMigrationsDir() string {
	if c.MigrationsDir == nil || *c.MigrationsDir == "" {
		return "migrations"
	}
	return *c.MigrationsDir
}
