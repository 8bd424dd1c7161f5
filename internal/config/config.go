// Package config loads the server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen    string          `yaml:"listen"`
	LogLevel  string          `yaml:"log-level"`
	Heuristic string          `yaml:"heuristic"`
	Nominatim NominatimConfig `yaml:"nominatim"`
	Overpass  OverpassConfig  `yaml:"overpass"`
	OSRM      OSRMConfig      `yaml:"osrm"`
}

type NominatimConfig struct {
	URL       string `yaml:"url"`
	UserAgent string `yaml:"user-agent"`
}

type OverpassConfig struct {
	URL     string  `yaml:"url"`
	Padding float64 `yaml:"padding"`
}

type OSRMConfig struct {
	URL string `yaml:"url"`
}

func Default() Config {
	return Config{
		Listen:    ":8080",
		LogLevel:  "info",
		Heuristic: "haversine",
		Nominatim: NominatimConfig{},
		Overpass:  OverpassConfig{Padding: 0.01},
		OSRM:      OSRMConfig{},
	}
}

// Load reads the configuration file at path, falling back to defaults when
// path is empty or the file does not exist. Environment variables (optionally
// sourced from a .env file) take precedence over file values.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	if v := os.Getenv("NOMINATIM_SERVER"); v != "" {
		cfg.Nominatim.URL = v
	}
	if v := os.Getenv("OSM_USER_AGENT"); v != "" {
		cfg.Nominatim.UserAgent = v
	}
	if v := os.Getenv("OVERPASS_SERVER"); v != "" {
		cfg.Overpass.URL = v
	}
	if v := os.Getenv("OSRM_SERVER"); v != "" {
		cfg.OSRM.URL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Listen = v
	}

	return cfg, nil
}
