package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"backend"`
	Catalog struct {
		BaseURL  string `yaml:"base_url"`
		ImageURL string `yaml:"image_url"`
		APIKey   string `yaml:"api_key"`
		TTL      string `yaml:"ttl"`
	} `yaml:"catalog"`
	Session struct {
		File string `yaml:"file"`
	} `yaml:"session"`
	Quiz struct {
		RevealDelay string `yaml:"reveal_delay"`
	} `yaml:"quiz"`
	Search struct {
		Debounce string `yaml:"debounce"`
	} `yaml:"search"`
}

// Load reads YAML config from path and applies environment overrides.
// A .env file next to the working directory is honored when present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
		// Missing config file is fine; env vars and defaults carry the day.
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	overrideString(&cfg.Backend.BaseURL, "CINEQUIZ_BACKEND_URL")
	overrideString(&cfg.Catalog.BaseURL, "CINEQUIZ_CATALOG_URL")
	overrideString(&cfg.Catalog.APIKey, "CINEQUIZ_CATALOG_API_KEY")
	overrideString(&cfg.Session.File, "CINEQUIZ_SESSION_FILE")

	applyDefaults(&cfg)
	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:3001"
	}
	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = "https://api.themoviedb.org/3"
	}
	if cfg.Catalog.ImageURL == "" {
		cfg.Catalog.ImageURL = "https://image.tmdb.org/t/p"
	}
	if cfg.Session.File == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.Session.File = filepath.Join(home, ".cinequiz", "session.json")
	}
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
