// Package config loads huffd settings from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

type Config struct {
	Port          string // HUFFD_PORT
	TreeCacheSize int    // HUFFD_TREE_CACHE: number of decoded trees kept
	MaxBodyBytes  int64  // HUFFD_MAX_BODY: limit on request bodies and decoded output
}

func Default() *Config {
	return &Config{
		Port:          "8080",
		TreeCacheSize: 128,
		MaxBodyBytes:  64 << 20,
	}
}

// Load returns the default config overridden by any variables that are set.
func Load() (*Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if v, ok := lookup("HUFFD_PORT"); ok && v != "" {
		cfg.Port = v
	}
	if v, ok := lookup("HUFFD_TREE_CACHE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, errors.Errorf("HUFFD_TREE_CACHE: want a positive integer, got %q", v)
		}
		cfg.TreeCacheSize = n
	}
	if v, ok := lookup("HUFFD_MAX_BODY"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, errors.Errorf("HUFFD_MAX_BODY: want a positive integer, got %q", v)
		}
		cfg.MaxBodyBytes = n
	}
	return cfg, nil
}
