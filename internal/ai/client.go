// Package ai adapts the Gemini API to the generative-text service used by the
// project and match services.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rpggio/folio/internal/metrics"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.5-flash"

	defaultRequestsPerMinute = 30
	defaultTimeout           = 60 * time.Second
	metricsService           = "genai"
)

// Config configures the client.
type Config struct {
	APIKey            string
	Model             string
	RequestsPerMinute int
	Timeout           time.Duration
}

// contentGenerator is the slice of genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client generates text and JSON with a Gemini model.
type Client struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a client for the Gemini API. It returns ErrNotConfigured when
// cfg carries no API key.
func New(ctx context.Context, cfg Config, m *metrics.Metrics, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newClient(client.Models, cfg, m, logger), nil
}

func newClient(models contentGenerator, cfg Config, m *metrics.Metrics, logger *slog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = defaultRequestsPerMinute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	perRequest := time.Minute / time.Duration(cfg.RequestsPerMinute)
	return &Client{
		models:  models,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		limiter: rate.NewLimiter(rate.Every(perRequest), 1),
		metrics: m,
		logger:  logger,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// GenerateText returns the model's plain-text reply to prompt.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, "generate_text", prompt, nil)
}

// GenerateStructured asks for a JSON reply and decodes it into out.
func (c *Client) GenerateStructured(ctx context.Context, prompt string, out any) error {
	text, err := c.generate(ctx, "generate_structured", prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return err
	}

	raw := ExtractJSON(text)
	if raw == "" {
		return fatal(ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fatal(fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}
	return nil
}

func (c *Client) generate(ctx context.Context, op, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", transient(fmt.Errorf("waiting for rate limit: %w", err))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	c.metrics.ObserveExternal(metricsService, op, start, err)
	if err != nil {
		c.logger.Debug("generation failed", "op", op, "model", c.model, "error", err)
		return "", classify(err)
	}

	text := ""
	if resp != nil {
		text = strings.TrimSpace(resp.Text())
	}
	if text == "" {
		return "", fatal(ErrEmptyResponse)
	}
	c.logger.Debug("generation complete", "op", op, "model", c.model, "duration", time.Since(start))
	return text, nil
}

func classify(err error) error {
	wrapped := fmt.Errorf("GenAI request failed: %w", err)
	if errors.Is(err, context.DeadlineExceeded) {
		return transient(wrapped)
	}
	if errors.Is(err, context.Canceled) {
		return fatal(wrapped)
	}

	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	default:
		// Transport failure before any status was received.
		return transient(wrapped)
	}
	if code == http.StatusTooManyRequests || code >= 500 {
		return transient(wrapped)
	}
	return fatal(wrapped)
}
