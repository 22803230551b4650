// Package llm is a small client for the Anthropic Messages API used by the
// assistant, invoice extraction and review, and duplicate detection.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"github.com/jwilson7981/job-tracker-sub000/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	apiVersion     = "2023-06-01"
	defaultBaseURL = "https://api.anthropic.com/v1/messages"
	defaultModel   = "claude-haiku-4-5-20251001"
	maxErrorBody   = 512
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("language model is not configured")

// Messenger sends one Messages API request.
type Messenger interface {
	CreateMessage(ctx context.Context, req *Request) (*Response, error)
}

// Client calls the Messages API over HTTP. Calls are throttled client-side
// so imports and the assistant share one request budget.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	maxTokens  int
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// New returns a Messenger for cfg, or nil when no API key is configured.
// Callers treat a nil Messenger as disabled.
func New(cfg config.LLMConfig, logger *zap.Logger) Messenger {
	if !cfg.Enabled() {
		return nil
	}
	return NewClient(cfg, logger)
}

// NewClient creates a client from configuration.
func NewClient(cfg config.LLMConfig, logger *zap.Logger) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.TimeoutDuration()},
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		maxTokens:  cfg.MaxTokens,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		logger:     logger.With(zap.String("component", "llm")),
	}
	if c.httpClient.Timeout <= 0 {
		c.httpClient.Timeout = 30 * time.Second
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.maxTokens <= 0 {
		c.maxTokens = 1024
	}
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return c
}

// Model returns the default model name.
func (c *Client) Model() string {
	return c.model
}

// CreateMessage sends req and decodes the reply.
func (c *Client) CreateMessage(ctx context.Context, req *Request) (*Response, error) {
	purpose := req.Purpose
	if purpose == "" {
		purpose = PurposeAssistant
	}

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.LLMCalls.WithLabelValues(purpose, "rate_limited").Inc()
		return nil, fmt.Errorf("llm rate limit: %w", err)
	}

	payload := *req
	if payload.Model == "" {
		payload.Model = c.model
	}
	if payload.MaxTokens <= 0 {
		payload.MaxTokens = c.maxTokens
	}

	body, err := json.Marshal(&payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)
	httpReq.Header.Set("content-type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.LLMDuration.WithLabelValues(purpose).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMCalls.WithLabelValues(purpose, "error").Inc()
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.LLMCalls.WithLabelValues(purpose, "error").Inc()
		return nil, fmt.Errorf("failed to read llm response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.LLMCalls.WithLabelValues(purpose, "error").Inc()
		snippet := string(respBody)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		c.logger.Warn("LLM API returned error status",
			zap.String("purpose", purpose),
			zap.Int("status", resp.StatusCode),
			zap.String("body", snippet),
		)
		return nil, fmt.Errorf("llm API returned status %d", resp.StatusCode)
	}

	var out Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		metrics.LLMCalls.WithLabelValues(purpose, "error").Inc()
		return nil, fmt.Errorf("failed to parse llm response: %w", err)
	}
	if out.Error != nil {
		metrics.LLMCalls.WithLabelValues(purpose, "error").Inc()
		return nil, fmt.Errorf("llm API error: %s - %s", out.Error.Type, out.Error.Message)
	}

	metrics.LLMCalls.WithLabelValues(purpose, "ok").Inc()
	c.logger.Debug("LLM call completed",
		zap.String("purpose", purpose),
		zap.String("stopReason", out.StopReason),
		zap.Int("blocks", len(out.Content)),
		zap.Duration("duration", time.Since(start)),
	)
	return &out, nil
}

// Complete sends a single user prompt and returns the reply text.
func Complete(ctx context.Context, m Messenger, purpose, prompt string, maxTokens int) (string, error) {
	if m == nil {
		return "", ErrDisabled
	}
	resp, err := m.CreateMessage(ctx, &Request{
		Messages:  []Message{UserText(prompt)},
		MaxTokens: maxTokens,
		Purpose:   purpose,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
