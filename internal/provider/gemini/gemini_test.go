package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/Cyclone1070/well/internal/provider"
	"github.com/Cyclone1070/well/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func textResponse(text string, reason genai.FinishReason) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
			FinishReason: reason,
		}},
	}
}

func TestComplete_TextResponse(t *testing.T) {
	var gotModel string
	var gotConfig *genai.GenerateContentConfig
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotModel = model
			gotConfig = config
			return textResponse("Hello there!", genai.FinishReasonStop), nil
		},
	}
	p := New(mockClient, zap.NewNop())

	messages := []provider.Message{
		{Role: provider.RoleSystem, Content: provider.String("be brief")},
		{Role: provider.RoleUser, Content: provider.String("hi")},
	}
	decls := []tool.Declaration{{Name: "read", Description: "read", Parameters: tool.PathParameters("p")}}

	completion, err := p.Complete(context.Background(), "gemini-mock", messages, decls)

	require.NoError(t, err)
	assert.Equal(t, "gemini-mock", gotModel)
	assert.Equal(t, provider.FinishDone, completion.Signal)
	assert.Equal(t, "Hello there!", completion.Message.Text())
	require.NotNil(t, gotConfig.SystemInstruction)
	assert.Equal(t, "be brief", gotConfig.SystemInstruction.Parts[0].Text)
	require.Len(t, gotConfig.Tools, 1)
	assert.Equal(t, "read", gotConfig.Tools[0].FunctionDeclarations[0].Name)
}

func TestComplete_ToolCall(t *testing.T) {
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []*genai.Part{
						{FunctionCall: &genai.FunctionCall{Name: "list", Args: map[string]any{"path": "."}}},
						{FunctionCall: &genai.FunctionCall{ID: "given", Name: "log"}},
					}},
					FinishReason: genai.FinishReasonStop,
				}},
			}, nil
		},
	}

	completion, err := New(mockClient, zap.NewNop()).Complete(context.Background(), "m", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, provider.FinishToolCallRequested, completion.Signal)
	assert.Nil(t, completion.Message.Content)
	require.Len(t, completion.Message.ToolCalls, 2)
	assert.NotEmpty(t, completion.Message.ToolCalls[0].ID)
	assert.Equal(t, `{"path":"."}`, completion.Message.ToolCalls[0].Function.Arguments)
	assert.Equal(t, "given", completion.Message.ToolCalls[1].ID)
	assert.Equal(t, "{}", completion.Message.ToolCalls[1].Function.Arguments)
}

func TestComplete_FinishReasons(t *testing.T) {
	tests := []struct {
		reason genai.FinishReason
		signal provider.FinishSignal
	}{
		{genai.FinishReasonStop, provider.FinishDone},
		{genai.FinishReasonMaxTokens, provider.FinishUsageExceeded},
		{genai.FinishReasonSafety, provider.FinishRefused},
		{genai.FinishReasonRecitation, provider.FinishRefused},
		{genai.FinishReasonProhibitedContent, provider.FinishRefused},
		{genai.FinishReasonBlocklist, provider.FinishRefused},
		{genai.FinishReasonSPII, provider.FinishRefused},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			mockClient := &MockGeminiClient{
				GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
					return textResponse("x", tt.reason), nil
				},
			}

			completion, err := New(mockClient, zap.NewNop()).Complete(context.Background(), "m", nil, nil)

			require.NoError(t, err)
			assert.Equal(t, tt.signal, completion.Signal)
			if tt.signal == provider.FinishRefused {
				assert.Equal(t, string(tt.reason), completion.Message.Refusal)
			}
		})
	}
}

func TestComplete_PromptBlocked(t *testing.T) {
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			}, nil
		},
	}

	completion, err := New(mockClient, zap.NewNop()).Complete(context.Background(), "m", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, provider.FinishRefused, completion.Signal)
	assert.Equal(t, string(genai.BlockedReasonSafety), completion.Message.Refusal)
}

func TestComplete_NoCandidates(t *testing.T) {
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{}, nil
		},
	}

	_, err := New(mockClient, zap.NewNop()).Complete(context.Background(), "m", nil, nil)

	var te *provider.TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, provider.ErrNoChoice)
}

func TestComplete_Errors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(t *testing.T, err error)
	}{
		{
			name: "api error value",
			err:  genai.APIError{Code: 400, Status: "INVALID_ARGUMENT", Message: "bad request"},
			check: func(t *testing.T, err error) {
				var pe *provider.ProtocolError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, 400, pe.Status)
				assert.Equal(t, "INVALID_ARGUMENT", pe.Code)
				assert.Equal(t, "bad request", pe.Message)
			},
		},
		{
			name: "api error pointer",
			err:  &genai.APIError{Code: 401, Status: "UNAUTHENTICATED", Message: "no key"},
			check: func(t *testing.T, err error) {
				var pe *provider.ProtocolError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, 401, pe.Status)
			},
		},
		{
			name: "network error",
			err:  errors.New("dial tcp: connection refused"),
			check: func(t *testing.T, err error) {
				var te *provider.TransportError
				require.ErrorAs(t, err, &te)
				assert.Contains(t, err.Error(), "connection refused")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &MockGeminiClient{
				GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
					return nil, tt.err
				},
			}

			_, err := New(mockClient, zap.NewNop()).Complete(context.Background(), "m", nil, nil)

			tt.check(t, err)
		})
	}
}

func TestNew_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { New(nil, zap.NewNop()) })
	assert.Panics(t, func() { New(&MockGeminiClient{}, nil) })
}
