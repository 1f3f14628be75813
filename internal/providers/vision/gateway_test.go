package vision

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/monitoring"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/providers"
)

type mockModels struct {
	resp *genai.GenerateContentResponse
	err  error

	model    string
	contents []*genai.Content
}

func (m *mockModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.model = model
	m.contents = contents
	return m.resp, m.err
}

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestDescribeImage(t *testing.T) {
	models := &mockModels{resp: textResponse(
		&genai.Part{Text: "A header with navigation. "},
		&genai.Part{Text: "Two columns below."},
	)}
	g := NewWithGenerator(models, "gemini-1.5-flash", nil).WithMetrics(monitoring.NewMetrics())

	description, err := g.DescribeImage(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "A header with navigation. Two columns below.", description)
	assert.Equal(t, "gemini-1.5-flash", models.model)

	require.Len(t, models.contents, 1)
	parts := models.contents[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, Instruction, parts[0].Text)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/png", parts[1].InlineData.MIMEType)
	assert.Equal(t, []byte("png-bytes"), parts[1].InlineData.Data)
}

func TestDescribeImageFailures(t *testing.T) {
	tests := []struct {
		name    string
		models  *mockModels
		wantErr error
	}{
		{"transport error", &mockModels{err: errors.New("quota exceeded")}, nil},
		{"no candidates", &mockModels{resp: &genai.GenerateContentResponse{}}, providers.ErrNoContent},
		{"blank text", &mockModels{resp: textResponse(&genai.Part{Text: "  \n"})}, providers.ErrNoContent},
		{"only thoughts", &mockModels{resp: textResponse(&genai.Part{Text: "thinking", Thought: true})}, providers.ErrNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithGenerator(tt.models, "m", nil)

			_, err := g.DescribeImage(context.Background(), []byte("x"), "image/jpeg")

			var perr *providers.ProviderError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, providers.NameVision, perr.Provider)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewWithoutAPIKey(t *testing.T) {
	g, err := New(context.Background(), Config{Model: "gemini-1.5-flash"}, nil)
	require.NoError(t, err)
	assert.False(t, g.Configured())

	_, err = g.DescribeImage(context.Background(), []byte("x"), "image/png")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
