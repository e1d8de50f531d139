package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-1.5-pro"

// GeminiClient completes prompts with Google's Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *logrus.Logger
}

type Option func(*genai.ClientConfig)

// WithBaseURL points the client at another endpoint, e.g. a proxy or a test server
func WithBaseURL(url string) Option {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = url
	}
}

func NewGeminiClient(ctx context.Context, apiKey, model string, logger *logrus.Logger, opts ...Option) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (c *GeminiClient) Model() string {
	return c.model
}

// Complete sends a single-turn prompt. It imposes no timeout and never retries;
// the caller's context is the only bound on the call.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &CompletionError{Model: c.model, Err: err}
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &CompletionError{Model: c.model, Err: ErrNoCandidates}
	}

	text := resp.Text()
	c.logger.WithFields(logrus.Fields{
		"model":         c.model,
		"prompt_chars":  len(prompt),
		"reply_chars":   len(text),
		"duration_msec": time.Since(start).Milliseconds(),
	}).Debug("Completion finished")
	return text, nil
}
