// [FILE] internal/llm/openai_client.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// ======================
// Interface (kontrak umum)
// ======================
type Client interface {
	// Single-turn completion, trimmed plain text.
	Complete(ctx context.Context, prompt string, opts Options) (string, error)

	// Ambil nama model aktif
	Model() string
}

// Options per call. Temperature 0 means deterministic.
type Options struct {
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration // applied only when ctx has no deadline
}

// ErrEmptyCompletion is returned when the model answers with no text.
var ErrEmptyCompletion = errors.New("empty completion")

// Config for the OpenAI-compatible endpoint (Gemini serves one at
// generativelanguage.googleapis.com/v1beta/openai).
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	RPS     float64
	Burst   int
}

// ======================
// Implementasi OpenAIClient
// ======================
type OpenAIClient struct {
	api     *openai.Client
	model   string
	limiter *rate.Limiter
}

func New(c Config) (*OpenAIClient, error) {
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		return nil, errors.New("llm api key not set")
	}

	cfg := openai.DefaultConfig(key)
	if base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/"); base != "" {
		cfg.BaseURL = base
	}

	model := strings.TrimSpace(c.Model)
	if model == "" {
		model = "gemini-2.0-flash-lite"
	}

	cl := &OpenAIClient{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
	if c.RPS > 0 {
		burst := c.Burst
		if burst < 1 {
			burst = 1
		}
		cl.limiter = rate.NewLimiter(rate.Limit(c.RPS), burst)
	}
	return cl, nil
}

func (c *OpenAIClient) Model() string { return c.model }

func (c *OpenAIClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	temp := opts.Temperature
	if temp == 0 {
		// omitempty would drop 0 and the server would use its own default
		temp = math.SmallestNonzeroFloat32
	}
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temp,
		MaxTokens:   opts.MaxTokens,
	}

	var cancel context.CancelFunc
	if _, ok := ctx.Deadline(); !ok && opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
