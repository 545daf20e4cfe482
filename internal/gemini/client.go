package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"visual-prompt-studio/internal/apperr"
)

// Models is the slice of the genai SDK the gateway talks to. *genai.Models
// satisfies it; tests substitute a fake.
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// KeySource yields the active API credential.
type KeySource interface {
	APIKey() (string, error)
}

// Factory builds a Models backend for one API key.
type Factory func(ctx context.Context, apiKey string) (Models, error)

type Options struct {
	Keys       KeySource
	Factory    Factory
	BaseURL    string
	APIVersion string
	HTTPClient *http.Client
	// RequestTimeout bounds every call. Zero leaves calls unbounded.
	RequestTimeout time.Duration
	RateInterval   time.Duration
	RateBurst      int
	SuggestionTTL  time.Duration
	Logger         *zerolog.Logger
}

// Client is the gateway to the generative AI service. The underlying SDK
// client is created on first use and dropped by Reset.
type Client struct {
	keys     KeySource
	factory  Factory
	timeout  time.Duration
	limiter  *rate.Limiter
	suggests *cache.Cache
	logger   zerolog.Logger

	mu     sync.Mutex
	models Models
}

func New(opts Options) *Client {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	factory := opts.Factory
	if factory == nil {
		factory = SDKFactory(opts.HTTPClient, opts.BaseURL, opts.APIVersion)
	}

	interval := opts.RateInterval
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	burst := opts.RateBurst
	if burst <= 0 {
		burst = 4
	}

	ttl := opts.SuggestionTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Client{
		keys:     opts.Keys,
		factory:  factory,
		timeout:  opts.RequestTimeout,
		limiter:  rate.NewLimiter(rate.Every(interval), burst),
		suggests: cache.New(ttl, 2*ttl),
		logger:   logger.With().Str("component", "gemini").Logger(),
	}
}

// SDKFactory returns a Factory backed by the real genai client.
func SDKFactory(httpClient *http.Client, baseURL, apiVersion string) Factory {
	return func(ctx context.Context, apiKey string) (Models, error) {
		cfg := &genai.ClientConfig{
			APIKey:     apiKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
			HTTPOptions: genai.HTTPOptions{
				BaseURL:    strings.TrimRight(baseURL, "/"),
				APIVersion: strings.TrimSpace(apiVersion),
			},
		}
		client, err := genai.NewClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("create genai client: %w", err)
		}
		return client.Models, nil
	}
}

// Reset forgets the current SDK client so the next call picks up a new key.
func (c *Client) Reset() {
	c.mu.Lock()
	c.models = nil
	c.mu.Unlock()
	c.suggests.Flush()
	c.logger.Debug().Msg("client reset")
}

func (c *Client) backend(ctx context.Context) (Models, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.models != nil {
		return c.models, nil
	}
	if c.keys == nil {
		return nil, apperr.New(apperr.CredentialMissing, "gemini", "no API key configured")
	}
	key, err := c.keys.APIKey()
	if err != nil {
		return nil, err
	}
	m, err := c.factory(ctx, key)
	if err != nil {
		return nil, err
	}
	c.models = m
	return m, nil
}

// do acquires the backend, waits for the rate limiter and runs fn under the
// per-call deadline.
func (c *Client) do(ctx context.Context, op string, fn func(ctx context.Context, m Models) error) error {
	m, err := c.backend(ctx)
	if err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	err = fn(callCtx, m)
	ev := c.logger.Debug()
	if err != nil {
		ev = c.logger.Warn().Err(err)
	}
	ev.Str("op", op).Dur("duration", time.Since(start)).Msg("gemini call")

	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return apperr.Wrap(apperr.Timeout, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
