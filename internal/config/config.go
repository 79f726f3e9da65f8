// Package config loads the application configuration.
//
// Values are resolved in this order, later sources winning:
//
//  1. built-in defaults
//  2. the YAML file named by CONFIG_FILE, if set
//  3. process environment, optionally seeded from a .env file
//
// A missing NYT_API_KEY is not a configuration error: searches report it to
// the user instead.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"article-digest/internal/infra/nytimes"
	"article-digest/internal/infra/summarizer"
)

// Config is the complete application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Search        SearchConfig        `yaml:"search"`
	Summarizer    SummarizerConfig    `yaml:"summarizer"`
	Observability ObservabilityConfig `yaml:"observability"`
	Framework     FrameworkFlags      `yaml:"-"`
}

// ServerConfig configures the HTTP server and its middleware.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"SERVER_ADDR"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"`

	// RatePerMinute and RateBurst throttle POST requests per client IP.
	// A non-positive rate disables the limiter.
	RatePerMinute float64 `yaml:"rate_per_minute" env:"RATE_LIMIT_PER_MINUTE"`
	RateBurst     int     `yaml:"rate_burst"      env:"RATE_LIMIT_BURST"`
	TrustProxy    bool    `yaml:"trust_proxy"     env:"TRUST_PROXY"`

	CSPEnabled    bool `yaml:"csp_enabled"     env:"CSP_ENABLED"`
	CSPReportOnly bool `yaml:"csp_report_only" env:"CSP_REPORT_ONLY"`

	Version string `yaml:"version" env:"APP_VERSION"`
}

// SearchConfig configures the article search client.
type SearchConfig struct {
	APIKey        string        `yaml:"api_key"         env:"NYT_API_KEY"`
	BaseURL       string        `yaml:"base_url"        env:"NYT_BASE_URL"`
	Timeout       time.Duration `yaml:"timeout"         env:"NYT_TIMEOUT"`
	RatePerMinute float64       `yaml:"rate_per_minute" env:"NYT_RATE_PER_MINUTE"`
	Burst         int           `yaml:"burst"           env:"NYT_RATE_BURST"`
}

// SummarizerConfig configures the summarization backend.
type SummarizerConfig struct {
	Backend string `yaml:"backend" env:"SUMMARIZER_BACKEND"`

	// Model empty selects the backend default (facebook/bart-large-cnn on huggingface).
	Model            string        `yaml:"model"              env:"SUMMARIZER_MODEL"`
	HFBaseURL        string        `yaml:"hf_base_url"        env:"HF_BASE_URL"`
	HFToken          string        `yaml:"hf_token"           env:"HF_TOKEN"`
	OpenAIAPIKey     string        `yaml:"openai_api_key"     env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string        `yaml:"openai_base_url"    env:"OPENAI_BASE_URL"`
	AnthropicAPIKey  string        `yaml:"anthropic_api_key"  env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string        `yaml:"anthropic_base_url" env:"ANTHROPIC_BASE_URL"`
	RequestTimeout   time.Duration `yaml:"request_timeout"    env:"SUMMARIZER_REQUEST_TIMEOUT"`

	// Timeout bounds one summarization including retries. Zero means none.
	Timeout time.Duration `yaml:"timeout" env:"SUMMARIZER_TIMEOUT"`
}

// ObservabilityConfig configures logging and tracing.
type ObservabilityConfig struct {
	LogLevel         string  `yaml:"log_level"          env:"LOG_LEVEL"`
	LogFormat        string  `yaml:"log_format"         env:"LOG_FORMAT"`
	TracingEnabled   bool    `yaml:"tracing_enabled"    env:"TRACING_ENABLED"`
	TraceSampleRatio float64 `yaml:"trace_sample_ratio" env:"TRACE_SAMPLE_RATIO"`
}

// FrameworkFlags are model runtime switches read from the environment. They
// have no effect on the hosted backends and are only logged at startup.
type FrameworkFlags struct {
	TransformersNoTF   string `env:"TRANSFORMERS_NO_TF"`
	TransformersNoFlax string `env:"TRANSFORMERS_NO_FLAX"`
}

// Default returns the built-in configuration.
func Default() Config {
	model := summarizer.DefaultConfig()
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    5 * time.Minute,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxBodyBytes:    1 << 20,
			RatePerMinute:   30,
			RateBurst:       10,
			CSPEnabled:      true,
			Version:         "dev",
		},
		Search: SearchConfig{
			BaseURL:       nytimes.DefaultBaseURL,
			Timeout:       30 * time.Second,
			RatePerMinute: 10,
			Burst:         5,
		},
		Summarizer: SummarizerConfig{
			Backend:        model.Backend,
			HFBaseURL:      model.HFBaseURL,
			RequestTimeout: model.RequestTimeout,
		},
		Observability: ObservabilityConfig{
			LogLevel:         "info",
			LogFormat:        "json",
			TraceSampleRatio: 1.0,
		},
	}
}

// Load resolves the configuration from defaults, CONFIG_FILE and the
// environment, then validates it. A missing .env file is ignored.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks configuration correctness.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server addr is required"))
	}
	for name, d := range map[string]time.Duration{
		"server read timeout":     c.Server.ReadTimeout,
		"server write timeout":    c.Server.WriteTimeout,
		"server shutdown timeout": c.Server.ShutdownTimeout,
		"search timeout":          c.Search.Timeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, d))
		}
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("max body bytes must be positive, got %d", c.Server.MaxBodyBytes))
	}
	if c.Summarizer.Timeout < 0 {
		errs = append(errs, fmt.Errorf("summarizer timeout must not be negative, got %v", c.Summarizer.Timeout))
	}
	if r := c.Observability.TraceSampleRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("trace sample ratio must be within [0, 1], got %v", r))
	}
	if err := c.Summarizer.ModelConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Client returns the search client configuration.
func (s SearchConfig) Client() nytimes.Config {
	return nytimes.Config{
		APIKey:        s.APIKey,
		BaseURL:       s.BaseURL,
		Timeout:       s.Timeout,
		RatePerMinute: s.RatePerMinute,
		Burst:         s.Burst,
	}
}

// ModelConfig returns the backend configuration.
func (s SummarizerConfig) ModelConfig() summarizer.Config {
	return summarizer.Config{
		Backend:          s.Backend,
		Model:            s.Model,
		HFBaseURL:        s.HFBaseURL,
		HFToken:          s.HFToken,
		OpenAIAPIKey:     s.OpenAIAPIKey,
		OpenAIBaseURL:    s.OpenAIBaseURL,
		AnthropicAPIKey:  s.AnthropicAPIKey,
		AnthropicBaseURL: s.AnthropicBaseURL,
		RequestTimeout:   s.RequestTimeout,
	}
}
