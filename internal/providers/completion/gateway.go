// Package completion is the gateway to an OpenAI-compatible chat-completion
// API (Groq by default). One prompt goes out as a single user message under
// a fixed system message; the first choice's text comes back.
package completion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/monitoring"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/tracing"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/providers"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/providers/http/client"
)

// SystemMessage frames every completion
const SystemMessage = "You are a web development expert specializing in generating clean, modern web code."

const chatPath = "/chat/completions"

// ErrMissingAPIKey is wrapped when no API key was configured
var ErrMissingAPIKey = errors.New("api key not configured")

// Config holds gateway settings
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	MaxTokens      int
	Timeout        time.Duration
	BreakerEnabled bool
	RateLimit      float64
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// StatusError is an upstream non-2xx answer
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

// Gateway implements providers.Completer over HTTP
type Gateway struct {
	client    *client.Client
	apiKey    string
	model     string
	maxTokens int
	logger    *zap.Logger
	tracer    *tracing.Tracer
	metrics   *monitoring.Metrics
}

var _ providers.Completer = (*Gateway)(nil)

// New creates a completion gateway
func New(cfg Config, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := client.Options{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
	}
	if cfg.BreakerEnabled {
		opts.Breaker = client.NewBreaker(providers.NameCompletion)
	}

	return &Gateway{
		client:    client.NewClient(opts),
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		logger:    logger,
	}
}

// WithMetrics adds provider call metrics
func (g *Gateway) WithMetrics(metrics *monitoring.Metrics) *Gateway {
	g.metrics = metrics
	return g
}

// WithTracer opens a span per outbound call
func (g *Gateway) WithTracer(tracer *tracing.Tracer) *Gateway {
	g.tracer = tracer
	return g
}

// Configured reports whether an API key is present
func (g *Gateway) Configured() bool {
	return g.apiKey != ""
}

// Complete sends prompt and returns the first choice's text. Any failure
// is a *providers.ProviderError.
func (g *Gateway) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if !g.Configured() {
		g.recordError("config")
		return "", providers.NewError(providers.NameCompletion, ErrMissingAPIKey)
	}

	if g.tracer != nil {
		var span *tracing.Span
		span, ctx = g.tracer.StartSpan(ctx, "completion.chat")
		span.SetTag("model", g.model)
		defer func() {
			span.Finish()
			g.tracer.Submit(span)
		}()
	}

	timer := monitoring.NewTimer(g.metrics, providers.NameCompletion)
	text, err := g.call(ctx, prompt, temperature)
	if err != nil {
		timer.Stop("error")
		g.recordError(errorType(err))
		g.logger.Warn("Completion call failed", zap.String("model", g.model), zap.Error(err))
		return "", providers.NewError(providers.NameCompletion, err)
	}

	elapsed := timer.Stop("success")
	g.logger.Debug("Completion call finished",
		zap.String("model", g.model),
		zap.Duration("duration", elapsed),
		zap.Int("length", len(text)),
	)
	return text, nil
}

func (g *Gateway) call(ctx context.Context, prompt string, temperature float64) (string, error) {
	req, err := g.client.Request(ctx)
	if err != nil {
		return "", err
	}

	headers := map[string]string{}
	tracing.InjectTraceContext(ctx, headers)

	body := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemMessage},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   g.maxTokens,
	}

	var out chatResponse
	var failure apiError
	_, err = g.client.Execute(func() (*resty.Response, error) {
		resp, err := req.
			SetHeaders(headers).
			SetBody(body).
			SetResult(&out).
			SetError(&failure).
			ForceContentType("application/json").
			Post(chatPath)
		if err != nil {
			return resp, err
		}
		if resp.IsError() {
			msg := failure.Error.Message
			if msg == "" {
				msg = resp.Status()
			}
			return resp, &StatusError{Code: resp.StatusCode(), Message: msg}
		}
		return resp, nil
	})
	if err != nil {
		return "", err
	}

	if len(out.Choices) == 0 {
		return "", providers.ErrNoContent
	}
	return out.Choices[0].Message.Content, nil
}

func (g *Gateway) recordError(kind string) {
	if g.metrics != nil {
		g.metrics.RecordProviderError(providers.NameCompletion, kind)
	}
}

func errorType(err error) string {
	var status *StatusError
	switch {
	case errors.As(err, &status):
		return "status"
	case errors.Is(err, providers.ErrNoContent):
		return "empty"
	case errors.Is(err, client.ErrUnavailable):
		return "circuit_open"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "transport"
	}
}
