package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config holds the full service configuration. Values come from defaults,
// then the YAML file, then environment variables (env wins).
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	Storage struct {
		Type string `yaml:"type"` // memory | redis
		Redis struct {
			URL          string `yaml:"url"`
			PoolSize     int    `yaml:"pool_size"`
			MinIdleConns int    `yaml:"min_idle_conns"`
		} `yaml:"redis"`
	} `yaml:"storage"`

	Party struct {
		// AutoCloseDelay is how long after creation an empty party is closed
		AutoCloseDelay time.Duration `yaml:"auto_close_delay"`
	} `yaml:"party"`

	NATS struct {
		// URL enables the NATS event bridge when non-empty
		URL string `yaml:"url"`
	} `yaml:"nats"`

	Auth struct {
		// OperatorTokenHash is the bcrypt hash of the operator token.
		// Empty disables administrative endpoints.
		OperatorTokenHash string `yaml:"operator_token_hash"`
	} `yaml:"auth"`

	SelfPing struct {
		// URL is the service's own public address; empty disables the pinger
		URL      string        `yaml:"url"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"self_ping"`
}

// Default returns the built-in defaults
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Storage.Type = StorageTypeMemory
	cfg.Storage.Redis.URL = "redis://localhost:6379"
	cfg.Storage.Redis.PoolSize = 10
	cfg.Storage.Redis.MinIdleConns = 2
	cfg.Party.AutoCloseDelay = 300 * time.Second
	cfg.SelfPing.Interval = 14 * time.Minute
	return cfg
}

// Load builds the configuration from an optional YAML file and the environment
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.Storage.Type != StorageTypeMemory && cfg.Storage.Type != StorageTypeRedis {
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PTBOT_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PTBOT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Storage.Redis.URL = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("OPERATOR_TOKEN_HASH"); v != "" {
		cfg.Auth.OperatorTokenHash = v
	}
	if v := os.Getenv("SELF_PING_URL"); v != "" {
		cfg.SelfPing.URL = v
	}
	if v := os.Getenv("AUTO_CLOSE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Party.AutoCloseDelay = d
		}
	}
}
