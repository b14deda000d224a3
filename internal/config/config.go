package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/promptforge/promptforge/internal/pkg/retry"
)

// Prompt length bounds enforced at the HTTP boundary
const (
	MinPromptLength = 10
	MaxPromptLength = 5000
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Provider selection
	DefaultProvider string `env:"DEFAULT_LLM_PROVIDER" envDefault:"openai"`
	DefaultModel    string `env:"DEFAULT_MODEL"`

	// Session lifecycle
	SessionTimeoutHours  int           `env:"SESSION_TIMEOUT_HOURS" envDefault:"24"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"30m"`

	// Question generation
	MaxQuestionsPerSession int `env:"MAX_QUESTIONS_PER_SESSION" envDefault:"10"`

	// Per-vendor credentials; a missing key means that provider is not registered
	OpenAICfg    ProviderConfig `envPrefix:"OPENAI_"`
	AnthropicCfg ProviderConfig `envPrefix:"ANTHROPIC_"`
	GroqCfg      ProviderConfig `envPrefix:"GROQ_"`

	// Shared outbound HTTP client settings for all vendor calls
	LLMClientCfg HTTPClientConfig     `envPrefix:"LLM_"`
	LLMRetryCfg  pkgRetry.RetryConfig `envPrefix:"LLM_RETRY_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// ProviderConfig holds one vendor's credentials and endpoint override
type ProviderConfig struct {
	APIKey  string `env:"API_KEY"`
	BaseURL string `env:"BASE_URL"`
}

// Configured reports whether this vendor has credentials present.
func (pc ProviderConfig) Configured() bool {
	return pc.APIKey != ""
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
}

// SessionTTL returns the session lifetime as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTimeoutHours) * time.Hour
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.SessionTimeoutHours < 1 || cfg.SessionTimeoutHours > 168 {
		return fmt.Errorf("SESSION_TIMEOUT_HOURS must be between 1 and 168, got %d", cfg.SessionTimeoutHours)
	}

	if cfg.SessionSweepInterval < time.Minute {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be at least 1m, got %s", cfg.SessionSweepInterval)
	}

	if cfg.MaxQuestionsPerSession < 1 || cfg.MaxQuestionsPerSession > 20 {
		return fmt.Errorf("MAX_QUESTIONS_PER_SESSION must be between 1 and 20, got %d", cfg.MaxQuestionsPerSession)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
