package openai

import (
	"encoding/json"

	"github.com/Cyclone1070/well/internal/provider"
	"github.com/Cyclone1070/well/internal/tool"
	gopenai "github.com/sashabaranov/go-openai"
)

// chatRequest is the body of POST /chat/completions. Messages use our own
// encoding so a tool message always carries its content, even when empty.
type chatRequest struct {
	Model    string             `json:"model"`
	Messages []provider.Message `json:"messages"`
	Tools    []toolSpec         `json:"tools,omitempty"`
}

type toolSpec struct {
	Type     gopenai.ToolType `json:"type"`
	Function tool.Declaration `json:"function"`
}

func newChatRequest(model string, messages []provider.Message, tools []tool.Declaration) chatRequest {
	req := chatRequest{Model: model, Messages: messages}
	for _, decl := range tools {
		req.Tools = append(req.Tools, toolSpec{Type: gopenai.ToolTypeFunction, Function: decl})
	}
	return req
}

// decodeResponse decodes the untagged union the endpoint answers with. The
// success shape is tried first and must carry choices; otherwise the body
// must be an error object.
func decodeResponse(data []byte) (*gopenai.ChatCompletionResponse, *gopenai.ErrorResponse, error) {
	var success gopenai.ChatCompletionResponse
	if err := json.Unmarshal(data, &success); err == nil && success.Choices != nil {
		return &success, nil, nil
	}

	var failure gopenai.ErrorResponse
	if err := json.Unmarshal(data, &failure); err == nil && failure.Error != nil {
		return nil, &failure, nil
	}

	return nil, nil, provider.ErrUnknownResponse
}
