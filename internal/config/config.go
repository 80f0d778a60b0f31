package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIURL is the local development backend address used when
	// neither the config file nor CANTEEN_API_URL provide one.
	DefaultAPIURL = "http://localhost:10000/api"

	// DefaultPollInterval is the dashboard refresh cadence.
	DefaultPollInterval = 10 * time.Second
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Staff     []StaffConfig   `yaml:"staff"`
}

type ServerConfig struct {
	Port     int    `yaml:"port"`
	BasePath string `yaml:"base_path"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// Enabled reports whether a Postgres backend is configured; the dev server
// falls back to in-memory storage otherwise.
func (c DatabaseConfig) Enabled() bool { return c.Host != "" }

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

func (c RabbitMQConfig) Enabled() bool { return c.Host != "" }

type DashboardConfig struct {
	APIURL              string `yaml:"api_url"`
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
}

func (c DashboardConfig) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// StaffConfig seeds a staff account on the dev server. PasswordHash is a
// bcrypt hash; Password, when set instead, is hashed at startup.
type StaffConfig struct {
	Name         string `yaml:"name"`
	Email        string `yaml:"email"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
}

// Default returns the configuration used when no config file is present,
// which is the common case for the dashboard client.
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Port: 10000, BasePath: "/api"},
		Dashboard: DashboardConfig{APIURL: DefaultAPIURL},
	}
}

// Load reads the YAML config at path. A missing file yields the defaults;
// the CANTEEN_API_URL environment variable always wins for the dashboard
// base URL.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env overrides
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if url := os.Getenv("CANTEEN_API_URL"); url != "" {
		cfg.Dashboard.APIURL = url
	}
	if cfg.Dashboard.APIURL == "" {
		cfg.Dashboard.APIURL = DefaultAPIURL
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 10000
	}
	if cfg.Server.BasePath == "" {
		cfg.Server.BasePath = "/api"
	}

	return cfg, nil
}
