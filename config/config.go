package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SEO holds the scoring thresholds shared by the analyzer and the checker.
type SEO struct {
	MinKeywordDensity    float64 `yaml:"min_keyword_density"`
	MaxKeywordDensity    float64 `yaml:"max_keyword_density"`
	MinContentLength     int     `yaml:"min_content_length"`
	OptimalContentLength int     `yaml:"optimal_content_length"`
	MinInternalLinks     int     `yaml:"min_internal_links"`
	MinExternalLinks     int     `yaml:"min_external_links"`
}

// Site describes the publishing site used for metadata and sitemaps.
type Site struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Author      string `yaml:"author"`
	Language    string `yaml:"language"`
}

type Server struct {
	Port          string  `yaml:"port"`
	GinMode       string  `yaml:"gin_mode"`
	LogLevel      string  `yaml:"log_level"`
	DevMode       bool    `yaml:"dev_mode"`
	RateLimit     float64 `yaml:"rate_limit"`
	RateBurst     float64 `yaml:"rate_burst"`
	DataDir       string  `yaml:"data_dir"`
	StatsSchedule string  `yaml:"stats_schedule"`
}

type Cache struct {
	Backend string        `yaml:"backend"` // memory, redis or none
	TTL     time.Duration `yaml:"ttl"`
	MaxSize int           `yaml:"max_size"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Postgres struct {
	DSN string `yaml:"dsn"`
}

// Config is the full service configuration.
type Config struct {
	SEO      SEO      `yaml:"seo"`
	Site     Site     `yaml:"site"`
	Server   Server   `yaml:"server"`
	Cache    Cache    `yaml:"cache"`
	Redis    Redis    `yaml:"redis"`
	Postgres Postgres `yaml:"postgres"`
}

// DefaultSEO returns the stock scoring thresholds.
func DefaultSEO() SEO {
	return SEO{
		MinKeywordDensity:    0.5,
		MaxKeywordDensity:    2.5,
		MinContentLength:     300,
		OptimalContentLength: 1500,
		MinInternalLinks:     2,
		MinExternalLinks:     1,
	}
}

func DefaultSite() Site {
	return Site{
		Name:        "AI SEO Blog Generator",
		Description: "AI-powered blog generation with automatic SEO optimization",
		URL:         "http://localhost:3000",
		Author:      "AI SEO Blog Generator",
		Language:    "zh-CN",
	}
}

// Default returns a configuration that needs no file and no environment.
func Default() *Config {
	return &Config{
		SEO:  DefaultSEO(),
		Site: DefaultSite(),
		Server: Server{
			Port:          "8082",
			GinMode:       "release",
			LogLevel:      "info",
			RateLimit:     2,
			RateBurst:     5,
			DataDir:       "data",
			StatsSchedule: "@daily",
		},
		Cache: Cache{
			Backend: "memory",
			TTL:     30 * time.Minute,
			MaxSize: 1000,
		},
		Redis: Redis{Addr: "localhost:6379"},
	}
}

// Load reads .env files, the optional YAML config file and environment
// overrides, in that order.
func Load() (*Config, error) {
	if err := godotenv.Load(".env.development"); err != nil {
		_ = godotenv.Load()
	}

	cfg := Default()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if err := cfg.loadFile(configFile); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Site.Name = getEnv("SITE_NAME", c.Site.Name)
	c.Site.Description = getEnv("SITE_DESCRIPTION", c.Site.Description)
	c.Site.URL = getEnv("SITE_URL", c.Site.URL)
	c.Site.Language = getEnv("DEFAULT_LANGUAGE", c.Site.Language)

	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.GinMode = getEnv("GIN_MODE", c.Server.GinMode)
	c.Server.LogLevel = getEnv("LOG_LEVEL", c.Server.LogLevel)
	c.Server.DevMode = getEnvAsBool("DEV_MODE", c.Server.DevMode)
	c.Server.RateLimit = getEnvAsFloat("RATE_LIMIT", c.Server.RateLimit)
	c.Server.RateBurst = getEnvAsFloat("RATE_BURST", c.Server.RateBurst)
	c.Server.DataDir = getEnv("DATA_DIR", c.Server.DataDir)
	c.Server.StatsSchedule = getEnv("STATS_CLEANUP_SCHEDULE", c.Server.StatsSchedule)

	c.Cache.Backend = getEnv("CACHE_BACKEND", c.Cache.Backend)
	c.Cache.TTL = getEnvAsDuration("CACHE_TTL", c.Cache.TTL)
	c.Cache.MaxSize = getEnvAsInt("CACHE_MAX_SIZE", c.Cache.MaxSize)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvAsInt("REDIS_DB", c.Redis.DB)

	c.Postgres.DSN = getEnv("DATABASE_URL", c.Postgres.DSN)
}

// Validate rejects threshold combinations the scorers cannot work with.
func (c *Config) Validate() error {
	if err := c.SEO.Validate(); err != nil {
		return err
	}
	if c.Server.RateLimit <= 0 || c.Server.RateBurst < 1 {
		return fmt.Errorf("rate limit %v/s with burst %v would reject every request", c.Server.RateLimit, c.Server.RateBurst)
	}
	switch c.Cache.Backend {
	case "memory", "redis", "none", "":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

func (s SEO) Validate() error {
	if s.MinKeywordDensity < 0 || s.MaxKeywordDensity <= s.MinKeywordDensity {
		return fmt.Errorf("keyword density band [%v, %v] is invalid", s.MinKeywordDensity, s.MaxKeywordDensity)
	}
	if s.MinContentLength < 0 || s.OptimalContentLength < s.MinContentLength {
		return fmt.Errorf("content length thresholds %d/%d are invalid", s.MinContentLength, s.OptimalContentLength)
	}
	if s.MinInternalLinks < 0 || s.MinExternalLinks < 0 {
		return fmt.Errorf("link minimums must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
