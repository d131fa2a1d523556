package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/Cyclone1070/well/internal/provider"
	"github.com/Cyclone1070/well/internal/tool"
	"go.uber.org/zap"
)

const completionsPath = "/chat/completions"

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// New creates a Client. Timeouts are taken from httpClient.
func New(httpClient *http.Client, baseURL, apiKey string, logger *zap.Logger) *Client {
	if httpClient == nil {
		panic("httpClient is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Complete sends the conversation and returns the classified answer.
func (c *Client) Complete(ctx context.Context, model string, messages []provider.Message, tools []tool.Declaration) (*provider.Completion, error) {
	body, err := json.Marshal(newChatRequest(model, messages, tools))
	if err != nil {
		return nil, &provider.TransportError{Op: "encode request", Cause: err}
	}

	url := c.baseURL + completionsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &provider.TransportError{Op: "build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("sending chat completion",
		zap.String("url", url),
		zap.String("model", model),
		zap.Int("messages", len(messages)),
		zap.Int("bytes", len(body)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &provider.TransportError{Op: "POST " + completionsPath, Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.TransportError{Op: "read response", Status: resp.StatusCode, Cause: err}
	}

	return c.interpret(resp.StatusCode, data)
}

func (c *Client) interpret(status int, data []byte) (*provider.Completion, error) {
	success, failure, err := decodeResponse(data)
	if err != nil {
		c.logger.Debug("undecodable response", zap.Int("status", status), zap.ByteString("body", truncate(data, 512)))
		return nil, &provider.TransportError{Op: "decode response", Status: status, Cause: err}
	}
	if failure != nil {
		return nil, toProtocolError(status, failure)
	}

	choice, ok := selectChoice(success.Choices)
	if !ok {
		return nil, &provider.TransportError{Op: "decode response", Status: status, Cause: provider.ErrNoChoice}
	}

	completion := toCompletion(choice)
	c.logger.Debug("received chat completion",
		zap.Int("status", status),
		zap.String("finish_reason", string(choice.FinishReason)),
		zap.Stringer("signal", completion.Signal),
		zap.Int("tool_calls", len(completion.Message.ToolCalls)),
		zap.Int("total_tokens", success.Usage.TotalTokens))
	return completion, nil
}

func truncate(data []byte, n int) []byte {
	if len(data) <= n {
		return data
	}
	return data[:n]
}
