package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/peoplefinder/internal/domain"
	"github.com/kailas-cloud/peoplefinder/internal/metrics"
)

// Defaults for an OpenAI-compatible Groq endpoint.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama3-70b-8192"
	DefaultTimeout = 10 * time.Second
)

// FilterModel extracts search filters via an OpenAI-compatible chat completion API.
type FilterModel struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	limiter     *rate.Limiter
	logger      *zap.Logger
}

// Config holds the filter model settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
	RateRPS     float64 // <= 0 disables the client-side limiter
	RateBurst   int
	Logger      *zap.Logger
}

// NewFilterModel creates an OpenAI-compatible filter model client.
func NewFilterModel(cfg *Config) *FilterModel {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	if clientCfg.BaseURL == "" {
		clientCfg.BaseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var limiter *rate.Limiter
	if cfg.RateRPS > 0 {
		burst := max(cfg.RateBurst, 1)
		limiter = rate.NewLimiter(rate.Limit(cfg.RateRPS), burst)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FilterModel{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: cfg.Temperature,
		timeout:     timeout,
		limiter:     limiter,
		logger:      logger,
	}
}

// Complete implements domain.FilterModel. It returns the raw assistant text.
// A call exceeding the configured timeout yields domain.ErrModelTimeout;
// other API failures wrap domain.ErrModelProviderError.
func (m *FilterModel) Complete(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			metrics.ModelErrorsTotal.WithLabelValues(m.model, "rate_limited").Inc()
			return "", fmt.Errorf("wait for model rate limiter: %w: %w", domain.ErrRateLimited, err)
		}
	}

	req := openai.ChatCompletionRequest{
		Model:       m.model,
		Temperature: m.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(query)},
		},
	}

	start := time.Now()
	resp, err := m.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.ModelRequestsTotal.WithLabelValues(m.model, "error").Inc()
		switch ctxErr := ctx.Err(); {
		case errors.Is(ctxErr, context.DeadlineExceeded):
			metrics.ModelErrorsTotal.WithLabelValues(m.model, "timeout").Inc()
			return "", fmt.Errorf("chat completion after %s: %w", duration.Round(time.Millisecond), domain.ErrModelTimeout)
		case ctxErr != nil:
			return "", fmt.Errorf("chat completion: %w", ctxErr)
		}
		metrics.ModelErrorsTotal.WithLabelValues(m.model, "api_error").Inc()
		return "", parseAPIError(err)
	}

	metrics.ModelRequestsTotal.WithLabelValues(m.model, "success").Inc()
	metrics.ModelRequestDuration.WithLabelValues(m.model).Observe(duration.Seconds())

	if len(resp.Choices) == 0 {
		// no content reads as a malformed response, not a failure
		m.logger.Warn("Model returned no choices", zap.String("query", query))
		return "", nil
	}

	m.logger.Debug("Model response",
		zap.String("query", query),
		zap.Duration("duration", duration),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (m *FilterModel) HealthCheck(ctx context.Context) error {
	if _, err := m.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrModelProviderError for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrModelProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("model API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("model API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("model API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("model request failed: %v: %w", err, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
