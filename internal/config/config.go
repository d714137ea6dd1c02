package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"learntube/internal/adapters/demostream"
	"learntube/internal/adapters/youtube"
)

const (
	ResolverDemo  = "demo"
	ResolverYtDlp = "ytdlp"
)

// Config is the full runtime configuration.
type Config struct {
	YouTube  YouTubeConfig  `yaml:"youtube"`
	Playback PlaybackConfig `yaml:"playback"`
	Log      LogConfig      `yaml:"log"`
}

type YouTubeConfig struct {
	APIKey             string        `yaml:"api_key"`
	BaseURL            string        `yaml:"base_url"`
	RegionCode         string        `yaml:"region_code"`
	RelevanceLanguage  string        `yaml:"relevance_language"`
	CategoryMaxResults int           `yaml:"category_max_results"`
	SearchMaxResults   int           `yaml:"search_max_results"`
	Timeout            time.Duration `yaml:"timeout"`
}

type PlaybackConfig struct {
	StreamURL string `yaml:"stream_url"`
	Resolver  string `yaml:"resolver"` // demo or ytdlp
	YtDlpPath string `yaml:"ytdlp_path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		YouTube: YouTubeConfig{
			BaseURL:            youtube.DefaultBaseURL,
			RegionCode:         youtube.DefaultRegionCode,
			RelevanceLanguage:  youtube.DefaultRelevanceLanguage,
			CategoryMaxResults: youtube.DefaultCategoryMaxResults,
			SearchMaxResults:   youtube.DefaultSearchMaxResults,
			Timeout:            youtube.DefaultTimeout,
		},
		Playback: PlaybackConfig{
			StreamURL: demostream.DefaultURL,
			Resolver:  ResolverDemo,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadDotEnv loads .env.local and .env when present. Variables already set
// in the process win, and .env.local wins over .env.
// Returns the files actually loaded.
func LoadDotEnv() []string {
	var loaded []string
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

// Load builds the configuration from defaults, the YAML file at path (or
// LEARNTUBE_CONFIG when path is empty) and environment variables, in that
// order of precedence. Callers wanting .env support call LoadDotEnv first.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("LEARNTUBE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.YouTube.BaseURL == "" {
		return fmt.Errorf("youtube.base_url is required")
	}
	if c.YouTube.CategoryMaxResults <= 0 {
		return fmt.Errorf("youtube.category_max_results must be positive, got %d", c.YouTube.CategoryMaxResults)
	}
	if c.YouTube.SearchMaxResults <= 0 {
		return fmt.Errorf("youtube.search_max_results must be positive, got %d", c.YouTube.SearchMaxResults)
	}
	if c.YouTube.Timeout <= 0 {
		return fmt.Errorf("youtube.timeout must be positive, got %s", c.YouTube.Timeout)
	}
	switch c.Playback.Resolver {
	case ResolverDemo, ResolverYtDlp:
	default:
		return fmt.Errorf("playback.resolver must be %q or %q, got %q", ResolverDemo, ResolverYtDlp, c.Playback.Resolver)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	// EXPO_PUBLIC_YT_API_KEY is the variable name the mobile app used.
	str(&cfg.YouTube.APIKey, "EXPO_PUBLIC_YT_API_KEY")
	str(&cfg.YouTube.APIKey, "YOUTUBE_API_KEY")
	str(&cfg.YouTube.BaseURL, "YOUTUBE_API_BASE_URL")
	str(&cfg.YouTube.RegionCode, "YOUTUBE_REGION_CODE")
	str(&cfg.YouTube.RelevanceLanguage, "YOUTUBE_RELEVANCE_LANGUAGE")
	str(&cfg.Playback.StreamURL, "DEMO_STREAM_URL")
	str(&cfg.Playback.Resolver, "STREAM_RESOLVER")
	str(&cfg.Playback.YtDlpPath, "YTDLP_PATH")
	str(&cfg.Log.Level, "LOG_LEVEL")
	str(&cfg.Log.Format, "LOG_FORMAT")

	if err := integer(&cfg.YouTube.CategoryMaxResults, "YOUTUBE_CATEGORY_MAX_RESULTS"); err != nil {
		return err
	}
	if err := integer(&cfg.YouTube.SearchMaxResults, "YOUTUBE_SEARCH_MAX_RESULTS"); err != nil {
		return err
	}
	return duration(&cfg.YouTube.Timeout, "HTTP_TIMEOUT")
}

func str(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func integer(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func duration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
