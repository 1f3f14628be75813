// Package vision is the gateway to the Gemini multimodal API. It asks the
// model for a structural description of a web design image.
package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/monitoring"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/tracing"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/providers"
)

// Instruction is sent alongside every image
const Instruction = "Analyze this web design image and describe its structure. Include:\n" +
	"1. Layout structure\n" +
	"2. Color scheme\n" +
	"3. UI components\n" +
	"4. Typography\n" +
	"5. Special features"

// ErrMissingAPIKey is wrapped when no API key was configured
var ErrMissingAPIKey = errors.New("api key not configured")

// Config holds gateway settings
type Config struct {
	APIKey string
	Model  string
}

// ContentGenerator is the slice of the genai client the gateway needs.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gateway implements providers.Describer
type Gateway struct {
	models  ContentGenerator
	model   string
	logger  *zap.Logger
	tracer  *tracing.Tracer
	metrics *monitoring.Metrics
}

var _ providers.Describer = (*Gateway)(nil)

// New connects to the Gemini API. Without an API key the gateway is
// created unconfigured and every call fails with ErrMissingAPIKey.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Gateway, error) {
	if cfg.APIKey == "" {
		return NewWithGenerator(nil, cfg.Model, logger), nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return NewWithGenerator(c.Models, cfg.Model, logger), nil
}

// NewWithGenerator builds a gateway over an existing content generator
func NewWithGenerator(models ContentGenerator, model string, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		models: models,
		model:  model,
		logger: logger,
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

// Configured reports whether the gateway can reach the provider
func (g *Gateway) Configured() bool {
	return g.models != nil
}

// DescribeImage sends the image with the fixed instruction and returns the
// model's text. Any failure, including an empty description, is a
// *providers.ProviderError.
func (g *Gateway) DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	if !g.Configured() {
		g.recordError("config")
		return "", providers.NewError(providers.NameVision, ErrMissingAPIKey)
	}

	if g.tracer != nil {
		var span *tracing.Span
		span, ctx = g.tracer.StartSpan(ctx, "vision.describe")
		span.SetTag("model", g.model)
		span.SetTag("mime_type", mimeType)
		defer func() {
			span.Finish()
			g.tracer.Submit(span)
		}()
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: Instruction},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
		},
	}}

	timer := monitoring.NewTimer(g.metrics, providers.NameVision)
	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		timer.Stop("error")
		g.recordError("transport")
		g.logger.Warn("Vision call failed", zap.String("model", g.model), zap.Error(err))
		return "", providers.NewError(providers.NameVision, err)
	}

	description := strings.TrimSpace(responseText(resp))
	if description == "" {
		timer.Stop("error")
		g.recordError("empty")
		return "", providers.NewError(providers.NameVision, providers.ErrNoContent)
	}

	timer.Stop("success")
	g.logger.Debug("Vision call finished", zap.Int("length", len(description)))
	return description, nil
}

// responseText joins the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Text == "" || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func (g *Gateway) recordError(kind string) {
	if g.metrics != nil {
		g.metrics.RecordProviderError(providers.NameVision, kind)
	}
}
