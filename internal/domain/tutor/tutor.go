// Package tutor answers web-development questions in a formal teaching
// register. Failures never surface as errors: they become an error-status
// reply so clients always get a readable payload.
package tutor

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"

	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/monitoring"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/providers"
)

// Reply statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const (
	// DefaultContext is used when a request names no subject area
	DefaultContext = "web development"
	// GreetingReply answers a bare greeting without calling the provider
	GreetingReply = "Good day! How may I assist you with your web development inquiries today?"

	MsgEmptyPrompt   = "Please provide a valid question or prompt."
	MsgEmptyResponse = "Received an empty response from the AI"

	temperature = 0.7
)

var greetings = map[string]struct{}{
	"hi":       {},
	"hello":    {},
	"hey":      {},
	"hi there": {},
}

var tutorPrompt = template.Must(template.New("tutor").Parse(`You are an AI tutor specializing in web development. 
Provide a formal, educational response to the following question, maintaining a professional and courteous tone:

Context: {{.Context}}
Question: {{.Question}}

Guidelines:
1. Explain concepts clearly and professionally for learners
2. Include practical examples where applicable
3. Present complex topics in an organized, step-by-step manner
4. Offer additional resources or guidance as appropriate

Response Format:
- Begin with a concise, formal explanation
- Provide a structured breakdown of steps
- Include a relevant code example if applicable
- Conclude with formal suggestions for further learning`))

// Request is the body accepted by the tutor endpoint
type Request struct {
	Prompt  string  `json:"prompt"`
	Context *string `json:"context"`
}

// Response is the tutor reply. Error replies carry Message and a null
// Response; success replies carry Context, Response and Timestamp.
type Response struct {
	Status    string  `json:"status"`
	Context   string  `json:"context,omitempty"`
	Response  *string `json:"response"`
	Message   string  `json:"message,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// ErrorResponse builds an error-status reply
func ErrorResponse(message string) Response {
	return Response{Status: StatusError, Message: message}
}

// Tutor answers questions through a completion provider
type Tutor struct {
	completer providers.Completer
	normalize func(string) string
	logger    *zap.Logger
	metrics   *monitoring.Metrics
	now       func() time.Time
}

// New creates a tutor. normalize cleans provider output before it is
// returned; nil leaves it as is apart from trimming.
func New(completer providers.Completer, normalize func(string) string, logger *zap.Logger) *Tutor {
	if normalize == nil {
		normalize = strings.TrimSpace
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tutor{
		completer: completer,
		normalize: normalize,
		logger:    logger,
		now:       time.Now,
	}
}

// WithMetrics adds reply counting to the tutor
func (t *Tutor) WithMetrics(metrics *monitoring.Metrics) *Tutor {
	t.metrics = metrics
	return t
}

// Ask answers a question. It never fails; problems are reported in the
// returned reply.
func (t *Tutor) Ask(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("Tutor panic", zap.Any("panic", r))
			resp = ErrorResponse(fmt.Sprintf("An unexpected error occurred: %v", r))
		}
		t.record(resp.Status)
	}()

	question := strings.ToLower(strings.TrimSpace(req.Prompt))
	subject := DefaultContext
	if req.Context != nil && strings.TrimSpace(*req.Context) != "" {
		subject = *req.Context
	}

	if question == "" {
		t.logger.Warn("Empty tutor prompt")
		return ErrorResponse(MsgEmptyPrompt)
	}

	if _, ok := greetings[question]; ok {
		t.logger.Debug("Detected greeting", zap.String("prompt", question))
		return t.success(subject, GreetingReply)
	}

	var sb strings.Builder
	if err := tutorPrompt.Execute(&sb, struct{ Context, Question string }{subject, question}); err != nil {
		return ErrorResponse(fmt.Sprintf("An unexpected error occurred: %v", err))
	}

	if t.completer == nil {
		return ErrorResponse("An unexpected error occurred: completion provider not configured")
	}

	raw, err := t.completer.Complete(ctx, sb.String(), temperature)
	if err != nil {
		t.logger.Error("Tutor completion failed", zap.Error(err))
		return ErrorResponse(fmt.Sprintf("An unexpected error occurred: %v", err))
	}

	answer := t.normalize(raw)
	if answer == "" {
		t.logger.Warn("Empty tutor response after cleaning")
		return ErrorResponse(MsgEmptyResponse)
	}

	t.logger.Info("Generated tutor response", zap.Int("length", len(answer)))
	return t.success(subject, answer)
}

func (t *Tutor) success(subject, answer string) Response {
	return Response{
		Status:    StatusSuccess,
		Context:   subject,
		Response:  &answer,
		Timestamp: t.now().Format(time.RFC3339),
	}
}

func (t *Tutor) record(status string) {
	if t.metrics != nil {
		t.metrics.RecordTutorReply(status)
	}
}
