package proxy

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Defaults.
const (
	DefaultPort         = 3000
	DefaultModel        = "gemini-2.5-flash"
	DefaultMaxBodyBytes = 2 << 20
)

// Config is the server configuration.
type Config struct {
	Port          int    `toml:"port"`
	APIKey        string `toml:"gemini_api_key"`
	Model         string `toml:"model"`
	AllowedOrigin string `toml:"allowed_origin"`
	RedisURL      string `toml:"redis_url"`
	MongoURI      string `toml:"mongo_uri"`
	MaxBodyBytes  int64  `toml:"max_body_bytes"`
}

// LoadConfig reads path (skipped when empty) and then applies PORT,
// GEMINI_API_KEY, AI_MODEL, ALLOWED_ORIGIN, REDIS_URL and MONGO_URI from
// the environment. Unset values fall back to the defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	cfg.Port = getenvInt("PORT", cfg.Port)
	cfg.APIKey = getenv("GEMINI_API_KEY", cfg.APIKey)
	cfg.Model = getenv("AI_MODEL", cfg.Model)
	cfg.AllowedOrigin = getenv("ALLOWED_ORIGIN", cfg.AllowedOrigin)
	cfg.RedisURL = getenv("REDIS_URL", cfg.RedisURL)
	cfg.MongoURI = getenv("MONGO_URI", cfg.MongoURI)
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// Addr returns the listen address.
func (c Config) Addr() string { return ":" + strconv.Itoa(c.Port) }

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
