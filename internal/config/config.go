package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	AI        AIConfig        `yaml:"ai"`
	GitHub    GitHubConfig    `yaml:"github"`
	Taxonomy  TaxonomyConfig  `yaml:"taxonomy"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TransportConfig selects how the MCP server is exposed.
type TransportConfig struct {
	Mode string `yaml:"mode"` // http or stdio
}

type AuthConfig struct {
	Enabled        bool `yaml:"enabled"`
	AllowAnonymous bool `yaml:"allow_anonymous"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type AIConfig struct {
	APIKey            string        `yaml:"api_key"`
	Model             string        `yaml:"model"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	Timeout           time.Duration `yaml:"timeout"`
}

type GitHubConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// TaxonomyConfig points at an optional YAML file replacing the built-in tags.
type TaxonomyConfig struct {
	Path string `yaml:"path"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server:    ServerConfig{Host: "0.0.0.0", Port: 8080},
		Transport: TransportConfig{Mode: "http"},
		Auth:      AuthConfig{Enabled: true, AllowAnonymous: true},
		DB:        DBConfig{Path: "folio.db"},
		Log:       LogConfig{Level: "info"},
		AI: AIConfig{
			Model:             "gemini-2.5-flash",
			RequestsPerMinute: 30,
			Timeout:           60 * time.Second,
		},
		GitHub:    GitHubConfig{BaseURL: "https://api.github.com", Timeout: 15 * time.Second},
		RateLimit: RateLimitConfig{RequestsPerSecond: 10, Burst: 20},
	}
}

// Load reads configuration from a .env file, an optional YAML file and
// environment variables, in increasing order of precedence.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("FOLIO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that have a fixed set of options or a range.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q: want http or stdio", c.Transport.Mode)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate limit values must not be negative")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Host, "FOLIO_SERVER_HOST")
	setString(&cfg.Transport.Mode, "FOLIO_TRANSPORT")
	setString(&cfg.DB.Path, "FOLIO_DB_PATH")
	setString(&cfg.Log.Level, "FOLIO_LOG_LEVEL")
	setString(&cfg.Log.Path, "FOLIO_LOG_PATH")
	setString(&cfg.AI.Model, "FOLIO_AI_MODEL")
	setString(&cfg.GitHub.BaseURL, "FOLIO_GITHUB_BASE_URL")
	setString(&cfg.GitHub.Token, "FOLIO_GITHUB_TOKEN")
	setString(&cfg.Taxonomy.Path, "FOLIO_TAXONOMY_PATH")

	if cfg.AI.APIKey == "" {
		setString(&cfg.AI.APIKey, "GOOGLE_API_KEY")
		setString(&cfg.AI.APIKey, "GEMINI_API_KEY")
	}
	setString(&cfg.AI.APIKey, "FOLIO_AI_API_KEY")
	if cfg.GitHub.Token == "" {
		setString(&cfg.GitHub.Token, "GITHUB_TOKEN")
	}

	parsers := []func() error{
		func() error { return setInt(&cfg.Server.Port, "FOLIO_SERVER_PORT") },
		func() error { return setBool(&cfg.Auth.Enabled, "FOLIO_AUTH_ENABLED") },
		func() error { return setBool(&cfg.Auth.AllowAnonymous, "FOLIO_AUTH_ALLOW_ANONYMOUS") },
		func() error { return setInt(&cfg.AI.RequestsPerMinute, "FOLIO_AI_REQUESTS_PER_MINUTE") },
		func() error { return setDuration(&cfg.AI.Timeout, "FOLIO_AI_TIMEOUT") },
		func() error { return setDuration(&cfg.GitHub.Timeout, "FOLIO_GITHUB_TIMEOUT") },
		func() error { return setFloat(&cfg.RateLimit.RequestsPerSecond, "FOLIO_RATE_LIMIT_RPS") },
		func() error { return setInt(&cfg.RateLimit.Burst, "FOLIO_RATE_LIMIT_BURST") },
	}
	for _, parse := range parsers {
		if err := parse(); err != nil {
			return err
		}
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}

func setFloat(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = f
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
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
