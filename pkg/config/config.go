package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Backend selects which ScriptStore implementation the binaries talk to.
const (
	BackendRedis = "redis"
	BackendLocal = "local"
)

// Config holds settings for the testserver and scriptctl binaries.
type Config struct {
	Listen    string      `toml:"listen"`
	Backend   string      `toml:"backend"`
	ScriptDir string      `toml:"script_dir"`
	DevLog    bool        `toml:"dev_log"`
	Redis     RedisConfig `toml:"redis"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Default returns the built-in configuration: a local in-process store and
// the testserver's default listen address.
func Default() *Config {
	return &Config{
		Listen:  ":8080",
		Backend: BackendLocal,
		DevLog:  true,
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
	}
}

// Load reads a TOML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendRedis, BackendLocal:
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendRedis, BackendLocal)
	}
	return nil
}
