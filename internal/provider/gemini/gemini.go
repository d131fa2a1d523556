package gemini

import (
	"context"

	"github.com/Cyclone1070/well/internal/provider"
	"github.com/Cyclone1070/well/internal/tool"
	"go.uber.org/zap"
)

// GeminiProvider completes conversations through Google Gemini.
type GeminiProvider struct {
	client GeminiClient
	logger *zap.Logger
}

// New creates a new GeminiProvider with the specified client.
func New(client GeminiClient, logger *zap.Logger) *GeminiProvider {
	if client == nil {
		panic("client is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &GeminiProvider{
		client: client,
		logger: logger,
	}
}

// Complete sends the conversation to Gemini and returns the classified answer.
func (p *GeminiProvider) Complete(ctx context.Context, model string, messages []provider.Message, tools []tool.Declaration) (*provider.Completion, error) {
	system, contents := toGeminiContents(messages)
	config := toGeminiConfig(system, tools)

	p.logger.Debug("sending generate content",
		zap.String("model", model),
		zap.Int("contents", len(contents)))

	resp, err := p.client.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	completion, err := fromGeminiResponse(resp)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("received generate content",
		zap.Stringer("signal", completion.Signal),
		zap.Int("tool_calls", len(completion.Message.ToolCalls)))
	return completion, nil
}
