package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Port              string
	DataPath          string  // CSV table loaded at start-up
	DataSource        string  // csv or db
	DBDriver          string  // sqlite or postgres
	DBPath            string  // sqlite file path or postgres URL; empty disables the store
	JWTSecret         string  // empty disables auth
	RateLimit         int     // requests per RateWindow per client; 0 disables
	RateWindow        time.Duration
	MarkerRadiusScale float64 // marker radius in meters per sighting
}

// Load 加载配置：先读环境变量，再叠加 CONFIG_PATH 指向的 TOML 文件
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", ":8080"),
		DataPath:          getEnv("DATA_PATH", "./data/global_shark_activity_100k.csv"),
		DataSource:        getEnv("DATA_SOURCE", "csv"),
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBPath:            os.Getenv("DB_PATH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		RateLimit:         getEnvInt("RATE_LIMIT", 120),
		RateWindow:        time.Minute,
		MarkerRadiusScale: getEnvFloat("MARKER_RADIUS_SCALE", 5000),
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		file.Apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option combinations that cannot work
func (c *Config) Validate() error {
	switch c.DataSource {
	case "csv":
		if c.DataPath == "" {
			return fmt.Errorf("data path is required for the csv source")
		}
	case "db":
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the db source")
		}
	default:
		return fmt.Errorf("unknown data source %q", c.DataSource)
	}
	if c.DBDriver != "sqlite" && c.DBDriver != "postgres" {
		return fmt.Errorf("unknown database driver %q", c.DBDriver)
	}
	if c.MarkerRadiusScale <= 0 {
		return fmt.Errorf("marker radius scale must be positive, got %v", c.MarkerRadiusScale)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: ignoring invalid %s=%q", key, v)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Warning: ignoring invalid %s=%q", key, v)
		return fallback
	}
	return f
}
