package codegen

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/monitoring"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/providers"
)

type stubCompleter struct {
	output string
	err    error

	prompts      []string
	temperatures []float64
}

func (s *stubCompleter) Complete(_ context.Context, prompt string, temperature float64) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.temperatures = append(s.temperatures, temperature)
	return s.output, s.err
}

type stubDescriber struct {
	description string
	err         error
	mimeType    string
}

func (s *stubDescriber) DescribeImage(_ context.Context, _ []byte, mimeType string) (string, error) {
	s.mimeType = mimeType
	return s.description, s.err
}

const fencedOutput = "```html\n<h1>Hi</h1>\n```\n```css\nh1 { color: red; }\n```\n```javascript\nconsole.log('hi');\n```"

func TestGenerate(t *testing.T) {
	completer := &stubCompleter{output: "\x1b[32m" + fencedOutput + "\x1b[0m"}
	svc := NewService(completer, nil, nil, nil).WithMetrics(monitoring.NewMetrics())

	resp, err := svc.Generate(context.Background(), GenerationRequest{Prompt: "greeting page"})
	require.NoError(t, err)

	assert.False(t, resp.IsModification)
	assert.Equal(t, AppTypeWeb, resp.Type)
	assert.Equal(t, DefaultFramework, resp.Framework)
	assert.Equal(t, "<h1>Hi</h1>", resp.Code.HTML)
	assert.Equal(t, "h1 { color: red; }", resp.Code.CSS)
	assert.Equal(t, "console.log('hi');", resp.Code.JavaScript)
	assert.Contains(t, resp.Code.Combined, "<!DOCTYPE html>")
	assert.Equal(t, []float64{DefaultTemperature}, completer.temperatures)
}

func TestGenerateCallerTemperature(t *testing.T) {
	completer := &stubCompleter{output: fencedOutput}
	temperature := 0.2

	_, err := NewService(completer, nil, nil, nil).Generate(context.Background(), GenerationRequest{
		Prompt:      "x",
		Temperature: &temperature,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2}, completer.temperatures)
}

func TestGenerateValidation(t *testing.T) {
	completer := &stubCompleter{output: fencedOutput}
	svc := NewService(completer, nil, nil, nil)

	_, err := svc.Generate(context.Background(), GenerationRequest{Prompt: "   "})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgEmptyPrompt, verr.Message)
	assert.Empty(t, completer.prompts)
}

func TestGenerateEmptyOutput(t *testing.T) {
	svc := NewService(&stubCompleter{output: "\x1b[0m  \n  "}, nil, nil, nil)

	_, err := svc.Generate(context.Background(), GenerationRequest{Prompt: "x"})
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestGenerateUnfencedOutput(t *testing.T) {
	svc := NewService(&stubCompleter{output: "Sorry, I can only describe it."}, nil, nil, nil)

	resp, err := svc.Generate(context.Background(), GenerationRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Empty(t, resp.Code.HTML)
	assert.Empty(t, resp.Code.CSS)
	assert.Empty(t, resp.Code.JavaScript)
}

func TestGenerateProviderError(t *testing.T) {
	upstream := providers.NewError(providers.NameCompletion, errors.New("503 Service Unavailable"))
	svc := NewService(&stubCompleter{err: upstream}, nil, nil, nil)

	_, err := svc.Generate(context.Background(), GenerationRequest{Prompt: "x"})

	var perr *providers.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "503 Service Unavailable")
}

func TestGenerateWithExistingCode(t *testing.T) {
	completer := &stubCompleter{output: "```css\np{color:red}\n```"}
	existing := &CodeSnapshot{HTML: "<p>a</p>", CSS: "p{}", JavaScript: "x()"}

	resp, err := NewService(completer, nil, nil, nil).Generate(context.Background(), GenerationRequest{
		Prompt:       "make it red",
		ExistingCode: existing,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsModification)
	assert.Equal(t, CodeSnapshot{HTML: "<p>a</p>", CSS: "p{color:red}", JavaScript: "x()"}, resp.Code.CodeSnapshot)
	assert.Contains(t, completer.prompts[0], "Existing Elements Analysis")
}

func TestGenerateBlankExistingCodeIsNewCode(t *testing.T) {
	completer := &stubCompleter{output: fencedOutput}

	resp, err := NewService(completer, nil, nil, nil).Generate(context.Background(), GenerationRequest{
		Prompt:       "x",
		ExistingCode: &CodeSnapshot{HTML: "  "},
	})
	require.NoError(t, err)
	assert.False(t, resp.IsModification)
	assert.NotContains(t, completer.prompts[0], "Existing Elements Analysis")
}

func TestModify(t *testing.T) {
	existing := &CodeSnapshot{HTML: "<p>a</p>", CSS: ".p{}", JavaScript: "x()"}
	kind := "style"

	tests := []struct {
		name    string
		output  string
		req     GenerationRequest
		wantErr string
		check   func(t *testing.T, resp *ModificationResponse)
	}{
		{
			name:   "partial answer keeps existing fields",
			output: "```css\n.p{color:blue}\n```",
			req:    GenerationRequest{Prompt: "blue", ExistingCode: existing, ModificationType: &kind},
			check: func(t *testing.T, resp *ModificationResponse) {
				require.NotNil(t, resp.Code)
				assert.Equal(t, "<p>a</p>", resp.Code.HTML)
				assert.Equal(t, ".p{color:blue}", resp.Code.CSS)
				assert.Equal(t, "x()", resp.Code.JavaScript)
				assert.Contains(t, resp.Code.Combined, "<title>Modified Web Application</title>")
				assert.Empty(t, resp.Message)
			},
		},
		{
			name:   "empty answer returns code unchanged",
			output: "   \r\n",
			req:    GenerationRequest{Prompt: "blue", ExistingCode: existing},
			check: func(t *testing.T, resp *ModificationResponse) {
				assert.Nil(t, resp.Code)
				assert.Equal(t, existing, resp.Unchanged)
				assert.Equal(t, MsgNoModifications, resp.Message)
			},
		},
		{
			name:    "missing existing code",
			req:     GenerationRequest{Prompt: "blue"},
			wantErr: MsgNoExistingCode,
		},
		{
			name:    "blank existing code",
			req:     GenerationRequest{Prompt: "blue", ExistingCode: &CodeSnapshot{}},
			wantErr: MsgNoExistingCode,
		},
		{
			name:    "empty prompt",
			req:     GenerationRequest{Prompt: "", ExistingCode: existing},
			wantErr: MsgEmptyPrompt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &stubCompleter{output: tt.output}
			svc := NewService(completer, nil, nil, nil).WithMetrics(monitoring.NewMetrics())

			resp, err := svc.Modify(context.Background(), tt.req)
			if tt.wantErr != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantErr, verr.Message)
				assert.Empty(t, completer.prompts)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, []float64{ModificationTemperature}, completer.temperatures)
			tt.check(t, resp)
		})
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestAnalyzeImage(t *testing.T) {
	completer := &stubCompleter{output: fencedOutput}
	describer := &stubDescriber{description: "A centered hero with a call to action"}
	svc := NewService(completer, describer, nil, nil)

	result, err := svc.AnalyzeImage(context.Background(), pngBytes(t, 4, 3))
	require.NoError(t, err)

	assert.Equal(t, 4, result.ImageInfo.Width)
	assert.Equal(t, 3, result.ImageInfo.Height)
	assert.Equal(t, "PNG", result.ImageInfo.Format)
	assert.Equal(t, "image/png", describer.mimeType)
	assert.Equal(t, "A centered hero with a call to action", result.Description)
	assert.Equal(t, "<h1>Hi</h1>", result.Code.HTML)
	assert.Contains(t, result.Code.Combined, "<title>Generated from Image</title>")
	assert.Contains(t, completer.prompts[0], "A centered hero with a call to action")
	assert.Equal(t, []float64{DefaultTemperature}, completer.temperatures)
}

func TestAnalyzeImageFailures(t *testing.T) {
	visionErr := providers.NewError(providers.NameVision, errors.New("quota exceeded"))

	t.Run("not an image", func(t *testing.T) {
		svc := NewService(&stubCompleter{}, &stubDescriber{}, nil, nil)
		_, err := svc.AnalyzeImage(context.Background(), []byte("plain text"))

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("vision failure", func(t *testing.T) {
		completer := &stubCompleter{}
		svc := NewService(completer, &stubDescriber{err: visionErr}, nil, nil)
		_, err := svc.AnalyzeImage(context.Background(), pngBytes(t, 1, 1))

		assert.ErrorIs(t, err, visionErr)
		assert.Empty(t, completer.prompts)
	})

	t.Run("completion failure", func(t *testing.T) {
		completionErr := providers.NewError(providers.NameCompletion, errors.New("timeout"))
		svc := NewService(&stubCompleter{err: completionErr}, &stubDescriber{description: "d"}, nil, nil)
		_, err := svc.AnalyzeImage(context.Background(), pngBytes(t, 1, 1))

		assert.ErrorIs(t, err, completionErr)
	})

	t.Run("vision not configured", func(t *testing.T) {
		svc := NewService(&stubCompleter{}, nil, nil, nil)
		_, err := svc.AnalyzeImage(context.Background(), pngBytes(t, 1, 1))

		var perr *providers.ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, providers.NameVision, perr.Provider)
	})
}
