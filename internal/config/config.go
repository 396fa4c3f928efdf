package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	Tracking  TrackingConfig  `yaml:"tracking"`
	Forecast  ForecastConfig  `yaml:"forecast"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// TrackingConfig tunes the timer state machine and budget thresholds.
type TrackingConfig struct {
	StaleThreshold    time.Duration `yaml:"stale_threshold"`
	IdleThreshold     time.Duration `yaml:"idle_threshold"`
	TickInterval      time.Duration `yaml:"tick_interval"`
	IdleCheckInterval time.Duration `yaml:"idle_check_interval"`
	BudgetWarning     float64       `yaml:"budget_warning"`
	BudgetExceeded    float64       `yaml:"budget_exceeded"`
}

// ForecastConfig tunes the forecasting engine's constants.
type ForecastConfig struct {
	HistoryDays         int     `yaml:"history_days"`
	HorizonDays         int     `yaml:"horizon_days"`
	MovingAverageWindow int     `yaml:"moving_average_window"`
	IncreasingThreshold float64 `yaml:"increasing_threshold"`
	StableThreshold     float64 `yaml:"stable_threshold"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "tempus.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Auth: AuthConfig{
			Enabled: false,
		},
		Tracking: TrackingConfig{
			StaleThreshold:    24 * time.Hour,
			IdleThreshold:     30 * time.Minute,
			TickInterval:      time.Second,
			IdleCheckInterval: time.Minute,
			BudgetWarning:     0.8,
			BudgetExceeded:    1.0,
		},
		Forecast: ForecastConfig{
			HistoryDays:         30,
			HorizonDays:         30,
			MovingAverageWindow: 3,
			IncreasingThreshold: 2.0,
			StableThreshold:     0.5,
		},
	}

	if path := os.Getenv("TEMPUS_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("TEMPUS_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("TEMPUS_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TEMPUS_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("TEMPUS_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("TEMPUS_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if mode := os.Getenv("TEMPUS_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if auth := os.Getenv("TEMPUS_AUTH_ENABLED"); auth != "" {
		enabled, err := strconv.ParseBool(auth)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TEMPUS_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = enabled
	}
	if stale := os.Getenv("TEMPUS_STALE_THRESHOLD"); stale != "" {
		d, err := time.ParseDuration(stale)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TEMPUS_STALE_THRESHOLD: %w", err)
		}
		cfg.Tracking.StaleThreshold = d
	}
	if idle := os.Getenv("TEMPUS_IDLE_THRESHOLD"); idle != "" {
		d, err := time.ParseDuration(idle)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TEMPUS_IDLE_THRESHOLD: %w", err)
		}
		cfg.Tracking.IdleThreshold = d
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
