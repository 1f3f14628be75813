package codegen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/domain/imaging"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/monitoring"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/providers"
)

// Validation messages surfaced to API callers
const (
	MsgEmptyPrompt     = "Empty prompt"
	MsgNoExistingCode  = "No existing code provided"
	MsgNoModifications = "No modifications suggested"
)

// Pipeline operation labels
const (
	opGenerate = "generate"
	opModify   = "modify"
	opImage    = "analyze_image"
)

// Service runs the generation pipelines: prompt, completion, normalization,
// extraction and assembly. It holds no per-request state.
type Service struct {
	completer providers.Completer
	describer providers.Describer
	prompts   *PromptBuilder
	logger    *zap.Logger
	metrics   *monitoring.Metrics
}

// NewService creates a generation service
func NewService(completer providers.Completer, describer providers.Describer, prompts *PromptBuilder, logger *zap.Logger) *Service {
	if prompts == nil {
		prompts = NewPromptBuilder(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		completer: completer,
		describer: describer,
		prompts:   prompts,
		logger:    logger,
	}
}

// WithMetrics adds metrics tracking to the service
func (s *Service) WithMetrics(metrics *monitoring.Metrics) *Service {
	s.metrics = metrics
	return s
}

// Generate produces application code for a request. Requests carrying
// existing code take the modification prompt and keep existing fields the
// provider left blank.
func (s *Service) Generate(ctx context.Context, req GenerationRequest) (*GenerationResponse, error) {
	req.ApplyDefaults()
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, newValidationError(MsgEmptyPrompt)
	}

	modification := req.IsModification()
	s.logger.Info("Generating code",
		zap.Int("prompt_length", len(req.Prompt)),
		zap.String("type", string(req.Type)),
		zap.Bool("modification", modification),
	)

	prompt, err := s.prompts.Build(req)
	if err != nil {
		s.record(opGenerate, "error")
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	text, err := s.complete(ctx, opGenerate, prompt, req.SamplingTemperature())
	if err != nil {
		return nil, err
	}
	if text == "" {
		s.record(opGenerate, "empty")
		return nil, ErrEmptyOutput
	}

	var prior *CodeSnapshot
	if modification {
		prior = req.ExistingCode
	}
	fragments := Extract(text)
	s.recordFallbacks(fragments, prior)

	s.record(opGenerate, "success")
	return &GenerationResponse{
		Code:           Assemble(fragments, prior, TitleGenerated),
		Type:           req.Type,
		Framework:      req.Framework,
		IsModification: modification,
	}, nil
}

// Modify applies a targeted change to existing code at a low sampling
// temperature. An empty provider answer is not an error: the caller's code
// comes back untouched with a message.
func (s *Service) Modify(ctx context.Context, req GenerationRequest) (*ModificationResponse, error) {
	if !req.IsModification() {
		return nil, newValidationError(MsgNoExistingCode)
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, newValidationError(MsgEmptyPrompt)
	}

	fields := []zap.Field{zap.Int("prompt_length", len(req.Prompt))}
	if req.ModificationType != nil {
		fields = append(fields, zap.String("modification_type", *req.ModificationType))
	}
	s.logger.Info("Modifying code", fields...)

	prompt, err := s.prompts.Modification(req.Prompt, *req.ExistingCode)
	if err != nil {
		s.record(opModify, "error")
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	text, err := s.complete(ctx, opModify, prompt, ModificationTemperature)
	if err != nil {
		return nil, err
	}
	if text == "" {
		s.logger.Warn("Provider suggested no modifications")
		s.record(opModify, "unchanged")
		return &ModificationResponse{
			Unchanged: req.ExistingCode,
			Message:   MsgNoModifications,
		}, nil
	}

	fragments := Extract(text)
	s.recordFallbacks(fragments, req.ExistingCode)
	result := Assemble(fragments, req.ExistingCode, TitleModified)

	before := ParseCSSRules(req.ExistingCode.CSS)
	s.logger.Debug("CSS rules after modification",
		zap.Int("before", len(before)),
		zap.Int("preserved", PreservedRules(before, ParseCSSRules(result.CSS))),
	)

	s.record(opModify, "success")
	return &ModificationResponse{Code: &result}, nil
}

// AnalyzeImage describes an uploaded design with the vision provider and
// turns the description into code
func (s *Service) AnalyzeImage(ctx context.Context, data []byte) (*ImageAnalysisResult, error) {
	info, err := imaging.Inspect(data)
	if err != nil {
		s.record(opImage, "invalid")
		return nil, newValidationError(err.Error())
	}
	s.logger.Info("Analyzing image",
		zap.String("format", info.Format),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
	)

	if s.describer == nil {
		s.record(opImage, "error")
		return nil, providers.NewError(providers.NameVision, errors.New("not configured"))
	}
	description, err := s.describer.DescribeImage(ctx, data, info.MimeType)
	if err != nil {
		s.record(opImage, "error")
		return nil, err
	}
	s.logger.Debug("Image description", zap.String("description", description))

	prompt, err := s.prompts.FromDescription(description)
	if err != nil {
		s.record(opImage, "error")
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	text, err := s.complete(ctx, opImage, prompt, DefaultTemperature)
	if err != nil {
		return nil, err
	}

	s.record(opImage, "success")
	return &ImageAnalysisResult{
		ImageInfo:   info,
		Description: description,
		Code:        Assemble(Extract(text), nil, TitleFromImage),
	}, nil
}

// complete calls the completion provider and normalizes its answer
func (s *Service) complete(ctx context.Context, operation, prompt string, temperature float64) (string, error) {
	if s.completer == nil {
		s.record(operation, "error")
		return "", providers.NewError(providers.NameCompletion, errors.New("not configured"))
	}

	s.logger.Debug("Prompt", zap.String("operation", operation), zap.String("prompt", prompt))

	raw, err := s.completer.Complete(ctx, prompt, temperature)
	if err != nil {
		s.logger.Error("Completion failed", zap.String("operation", operation), zap.Error(err))
		s.record(operation, "error")
		return "", err
	}

	text := Normalize(raw)
	s.logger.Debug("Completion output",
		zap.String("operation", operation),
		zap.Int("raw_length", len(raw)),
		zap.String("output", text),
	)
	return text, nil
}

func (s *Service) recordFallbacks(fragments CodeSnapshot, prior *CodeSnapshot) {
	if prior == nil || s.metrics == nil {
		return
	}
	if strings.TrimSpace(fragments.HTML) == "" {
		s.metrics.RecordFragmentFallback(FenceHTML)
	}
	if strings.TrimSpace(fragments.CSS) == "" {
		s.metrics.RecordFragmentFallback(FenceCSS)
	}
	if strings.TrimSpace(fragments.JavaScript) == "" {
		s.metrics.RecordFragmentFallback(FenceJavaScript)
	}
}

func (s *Service) record(operation, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordGeneration(operation, outcome)
	}
}
