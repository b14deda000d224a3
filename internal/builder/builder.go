package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/promptforge/promptforge/internal/api"
	providerapi "github.com/promptforge/promptforge/internal/api/provider"
	sessionapi "github.com/promptforge/promptforge/internal/api/session"
	"github.com/promptforge/promptforge/internal/config"
	"github.com/promptforge/promptforge/internal/pkg/validator"
	"github.com/promptforge/promptforge/internal/provider"
	"github.com/promptforge/promptforge/internal/repository"
	"github.com/promptforge/promptforge/internal/usecase/refinement"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize session storage
	sessionRepo := repository.NewSessionCache(cfg.SessionTTL(), cfg.SessionSweepInterval, logger)
	logger.Info("Session store initialized",
		zap.Duration("ttl", cfg.SessionTTL()),
		zap.Duration("sweep_interval", cfg.SessionSweepInterval),
	)

	// Build the provider registry from whichever vendor credentials are
	// present. Zero registered providers is a valid degraded startup.
	registry := buildRegistry(cfg, logger)
	if len(registry.Available()) == 0 {
		logger.Warn("No LLM provider credentials configured, all provider operations will fail")
	}

	// Initialize validators
	reqValidator := validator.New()

	// Initialize use cases
	refinementUC := refinement.NewUsecase(sessionRepo, registry, refinement.Config{
		SessionTTL:   cfg.SessionTTL(),
		MaxQuestions: cfg.MaxQuestionsPerSession,
	}, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers
	sessionHandler := sessionapi.NewHandler(refinementUC, reqValidator)
	providerHandler := providerapi.NewHandler(refinementUC, reqValidator)

	// Setup router
	router := api.SetupRouter(sessionHandler, providerHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

func buildRegistry(cfg *config.Config, logger *zap.Logger) *provider.Registry {
	registry := provider.NewRegistry(cfg.DefaultProvider, logger)

	if cfg.OpenAICfg.Configured() {
		registry.Register(provider.NewOpenAI(provider.Options{
			APIKey:  cfg.OpenAICfg.APIKey,
			BaseURL: cfg.OpenAICfg.BaseURL,
			HTTP:    cfg.LLMClientCfg,
			Retry:   &cfg.LLMRetryCfg,
			Logger:  logger,
		}))
	}

	if cfg.AnthropicCfg.Configured() {
		registry.Register(provider.NewAnthropic(provider.Options{
			APIKey:  cfg.AnthropicCfg.APIKey,
			BaseURL: cfg.AnthropicCfg.BaseURL,
			HTTP:    cfg.LLMClientCfg,
			Retry:   &cfg.LLMRetryCfg,
			Logger:  logger,
		}))
	}

	if cfg.GroqCfg.Configured() {
		registry.Register(provider.NewGroq(provider.Options{
			APIKey:  cfg.GroqCfg.APIKey,
			BaseURL: cfg.GroqCfg.BaseURL,
			HTTP:    cfg.LLMClientCfg,
			Retry:   &cfg.LLMRetryCfg,
			Logger:  logger,
		}))
	}

	return registry
}

func setupLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}
