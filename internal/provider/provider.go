package provider

import (
	"context"
	"errors"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/promptforge/promptforge/internal/config"
	"github.com/promptforge/promptforge/internal/entity"
	pkgretry "github.com/promptforge/promptforge/internal/pkg/retry"
	pkghttp "github.com/promptforge/promptforge/pkg/http"
	"go.uber.org/zap"
)

// Temperature defaults: generation favors variety, refinement determinism.
const (
	DefaultGenerateTemperature = 0.7
	DefaultRefineTemperature   = 0.3
	DefaultMaxQuestions        = 10
)

type GenerateOptions struct {
	Model        string
	MaxQuestions int
	Temperature  float64
}

type RefineOptions struct {
	Model       string
	Temperature float64
}

// Adapter is the vendor-agnostic contract every provider implements.
// ValidateAPIKey is a boolean probe: any failure (auth, network, timeout)
// reads as false, never as an error.
type Adapter interface {
	ID() string
	DisplayName() string
	SupportedModels() []string
	DefaultModel() string
	ValidateAPIKey(ctx context.Context, key string) bool
	GenerateQuestions(ctx context.Context, prompt string, opts GenerateOptions) ([]entity.Question, error)
	RefinePrompt(ctx context.Context, originalPrompt string, questions []entity.Question, answers []entity.Answer, opts RefineOptions) (string, error)
}

// Options configures a concrete adapter instance.
type Options struct {
	APIKey  string
	BaseURL string
	HTTP    config.HTTPClientConfig
	Retry   *pkgretry.RetryConfig
	Logger  *zap.Logger
}

func (o Options) retryOptions() []retry.Option {
	cfg := o.Retry
	if cfg == nil {
		cfg = pkgretry.DefaultRetryConfig()
	}
	return cfg.ToRetryOptions()
}

func newVendorConnector(baseURL string, httpCfg config.HTTPClientConfig, logger *zap.Logger, authOpts ...pkghttp.HttpOpts) *pkghttp.Connector {
	opts := []pkghttp.HttpOpts{
		pkghttp.WithRequestTimeout(httpCfg.RequestTimeout),
		pkghttp.WithConnClientTimeout(httpCfg.ConnTimeout),
		pkghttp.WithClientKeepAlive(httpCfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(httpCfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(httpCfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
	}
	opts = append(opts, authOpts...)

	return pkghttp.NewConnector(&pkghttp.ConnectorConfig{
		BaseURL: baseURL,
		Logger:  logger,
	}, opts...)
}

// isRetryable limits retries to transient failures: network errors,
// rate limits and vendor 5xx.
func isRetryable(err error) bool {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}

	var netErr *pkghttp.NetworkError
	return errors.As(err, &netErr)
}

func resolveTemperature(requested, fallback float64) float64 {
	if requested <= 0 {
		return fallback
	}
	return requested
}
