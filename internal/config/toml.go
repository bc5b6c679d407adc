package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys leave the
// environment value in place.
type FileConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Storage StorageConfig `toml:"storage"`
	Map     MapConfig     `toml:"map"`
}

// ServerConfig maps HTTP settings
type ServerConfig struct {
	Port       *string `toml:"port"`
	JWTSecret  *string `toml:"jwt-secret"`
	RateLimit  *int    `toml:"rate-limit"`
	RateWindow *string `toml:"rate-window"` // time.ParseDuration syntax
}

// DataConfig maps dataset settings
type DataConfig struct {
	Path   *string `toml:"path"`
	Source *string `toml:"source"`
}

// StorageConfig maps snapshot store settings
type StorageConfig struct {
	Driver *string `toml:"driver"`
	Path   *string `toml:"path"`
}

// MapConfig maps overlay settings
type MapConfig struct {
	MarkerRadiusScale *float64 `toml:"marker-radius-scale"`
}

// LoadFile reads a TOML config from path. A missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}

	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if fc.Server.RateWindow != nil {
		if _, err := time.ParseDuration(*fc.Server.RateWindow); err != nil {
			return FileConfig{}, fmt.Errorf("invalid rate-window: %w", err)
		}
	}
	return fc, nil
}

// Apply overlays the set file values onto cfg
func (fc FileConfig) Apply(cfg *Config) {
	setString(&cfg.Port, fc.Server.Port)
	setString(&cfg.JWTSecret, fc.Server.JWTSecret)
	if fc.Server.RateLimit != nil {
		cfg.RateLimit = *fc.Server.RateLimit
	}
	if fc.Server.RateWindow != nil {
		// validated by LoadFile
		cfg.RateWindow, _ = time.ParseDuration(*fc.Server.RateWindow)
	}
	setString(&cfg.DataPath, fc.Data.Path)
	setString(&cfg.DataSource, fc.Data.Source)
	setString(&cfg.DBDriver, fc.Storage.Driver)
	setString(&cfg.DBPath, fc.Storage.Path)
	if fc.Map.MarkerRadiusScale != nil {
		cfg.MarkerRadiusScale = *fc.Map.MarkerRadiusScale
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
