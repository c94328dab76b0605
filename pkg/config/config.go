package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"MarketChat/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Primary struct {
		BaseURL  string        `yaml:"base_url"`
		Throttle time.Duration `yaml:"throttle"` // fixed delay before each call
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"primary"`
	AlphaVantage struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"alpha_vantage"`
	Search struct {
		BaseURL    string        `yaml:"base_url"`
		MaxResults int           `yaml:"max_results"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"search"`
	Groq struct {
		APIKey      string        `yaml:"api_key"`
		BaseURL     string        `yaml:"base_url"`
		Model       string        `yaml:"model"`
		Temperature float64       `yaml:"temperature"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"groq"`
	Agent struct {
		HistoryPeriod string        `yaml:"history_period"` // default 1mo
		AverageDays   int           `yaml:"average_days"`   // default 7
		QuoteCacheTTL time.Duration `yaml:"quote_cache_ttl"`
	} `yaml:"agent"`
	RateLimit struct {
		Enabled      bool    `yaml:"enabled"`
		Capacity     float64 `yaml:"capacity"`
		RefillPerSec float64 `yaml:"refill_per_sec"`
	} `yaml:"rate_limit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()
	return &c, nil
}

// LoadWithEnv loads config from YAML, merges a local .env file if present,
// and overrides with process environment variables. Validation runs last so
// credentials may arrive through any of the three layers.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	env := LoadEnvFile(".env")

	if v := lookup(env, "ALPHA_VANTAGE_API_KEY"); v != "" {
		c.AlphaVantage.APIKey = v
	}
	if v := lookup(env, "GROQ_API_KEY"); v != "" {
		c.Groq.APIKey = v
	}
	if v := lookup(env, "PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// lookup prefers the process environment over the .env file.
func lookup(env map[string]string, key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return env[key]
}

// LoadEnvFile parses a key=value file. Missing file is not an error;
// a UTF-8 BOM and comment lines are tolerated.
func LoadEnvFile(path string) map[string]string {
	vars := make(map[string]string)
	b, err := os.ReadFile(path)
	if err != nil {
		return vars
	}
	content := strings.TrimPrefix(string(b), "\uFEFF")
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		vars[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return vars
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Primary.BaseURL == "" {
		c.Primary.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Primary.Throttle == 0 {
		c.Primary.Throttle = 2 * time.Second
	}
	if c.Primary.Timeout == 0 {
		c.Primary.Timeout = 10 * time.Second
	}
	if c.AlphaVantage.BaseURL == "" {
		c.AlphaVantage.BaseURL = "https://www.alphavantage.co"
	}
	if c.AlphaVantage.Timeout == 0 {
		c.AlphaVantage.Timeout = 10 * time.Second
	}
	if c.Search.BaseURL == "" {
		c.Search.BaseURL = "https://api.duckduckgo.com"
	}
	if c.Search.MaxResults == 0 {
		c.Search.MaxResults = 3
	}
	if c.Search.Timeout == 0 {
		c.Search.Timeout = 10 * time.Second
	}
	if c.Groq.BaseURL == "" {
		c.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Groq.Model == "" {
		c.Groq.Model = "llama-3.1-8b-instant"
	}
	if c.Groq.Temperature == 0 {
		c.Groq.Temperature = 0.1
	}
	if c.Groq.Timeout == 0 {
		c.Groq.Timeout = 30 * time.Second
	}
	if c.Agent.HistoryPeriod == "" {
		c.Agent.HistoryPeriod = "1mo"
	}
	if c.Agent.AverageDays == 0 {
		c.Agent.AverageDays = 7
	}
	if c.Agent.QuoteCacheTTL == 0 {
		c.Agent.QuoteCacheTTL = 15 * time.Second
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 5
	}
	if c.RateLimit.RefillPerSec == 0 {
		c.RateLimit.RefillPerSec = 1
	}
}

// Validate checks if the configuration is valid. The completion credential
// is a hard precondition: without it no chat turn can be served.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Groq.APIKey == "" {
		return fmt.Errorf("groq.api_key is required (set GROQ_API_KEY)")
	}
	if c.Agent.AverageDays < 1 {
		return fmt.Errorf("agent.average_days must be >= 1")
	}
	return nil
}
