// Package config handles workflow configuration from environment variables
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// MapType selects which part of a map search the sub-searches show.
type MapType string

const (
	MapTypePlace   MapType = "place"
	MapTypeAddress MapType = "address"
	MapTypeBus     MapType = "bus"
)

// Valid reports whether t is one of the known map types.
func (t MapType) Valid() bool {
	switch t {
	case MapTypePlace, MapTypeAddress, MapTypeBus:
		return true
	}
	return false
}

// Config holds all workflow configuration. Alfred passes workflow
// variables to scripts as environment variables.
type Config struct {
	Map   MapConfig
	Cache CacheConfig

	// DictLang is the dictionary chosen by a previous result item.
	DictLang    string        `env:"lang"`
	HTTPTimeout time.Duration `env:"http_timeout" envDefault:"10s"`
	LogLevel    string        `env:"log_level" envDefault:"info"`
}

// MapConfig holds map search configuration
type MapConfig struct {
	// Default coordinates, Seoul City Hall unless configured.
	Latitude  string  `env:"latitude" envDefault:"37.5665851"`
	Longitude string  `env:"longitude" envDefault:"126.9782038"`
	Type      MapType `env:"map_type"`
}

// CacheConfig holds cache location and max ages, in seconds as Alfred
// variables cannot express durations.
type CacheConfig struct {
	Dir          string `env:"alfred_workflow_cache"`
	AgeSeconds   int    `env:"cache_age" envDefault:"30"`
	QuerySeconds int    `env:"query_cache_age" envDefault:"30"`
	IPSeconds    int    `env:"ip_cache_age" envDefault:"30"`
	DictSeconds  int    `env:"dict_cache_age" envDefault:"600"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that the env parser cannot express
func (c *Config) Validate() error {
	ages := map[string]int{
		"cache_age":       c.Cache.AgeSeconds,
		"query_cache_age": c.Cache.QuerySeconds,
		"ip_cache_age":    c.Cache.IPSeconds,
		"dict_cache_age":  c.Cache.DictSeconds,
	}
	for name, v := range ages {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	if c.Map.Type != "" && !c.Map.Type.Valid() {
		return fmt.Errorf("map_type must be one of place, address, bus, got %q", c.Map.Type)
	}
	if c.Map.Latitude == "" || c.Map.Longitude == "" {
		return fmt.Errorf("latitude and longitude must not be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// RequireMapType returns an error unless map_type is set.
func (c *Config) RequireMapType() error {
	if c.Map.Type == "" {
		return fmt.Errorf("map_type is required")
	}
	return nil
}

// CacheAge is the max age of general query results.
func (c *Config) CacheAge() time.Duration {
	return seconds(c.Cache.AgeSeconds)
}

// QueryCacheAge is the max age of place search results.
func (c *Config) QueryCacheAge() time.Duration {
	return seconds(c.Cache.QuerySeconds)
}

// IPCacheAge is the max age of the IP based location.
func (c *Config) IPCacheAge() time.Duration {
	return seconds(c.Cache.IPSeconds)
}

// DictCacheAge is the max age of dictionary autocomplete results.
func (c *Config) DictCacheAge() time.Duration {
	return seconds(c.Cache.DictSeconds)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
