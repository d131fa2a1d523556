package openai

import (
	"fmt"
	"strconv"

	"github.com/Cyclone1070/well/internal/provider"
	"github.com/google/uuid"
	gopenai "github.com/sashabaranov/go-openai"
)

// selectChoice prefers the first choice that was not cut off by the context
// window and falls back to the first one.
func selectChoice(choices []gopenai.ChatCompletionChoice) (gopenai.ChatCompletionChoice, bool) {
	if len(choices) == 0 {
		return gopenai.ChatCompletionChoice{}, false
	}
	for _, c := range choices {
		if c.FinishReason != gopenai.FinishReasonLength {
			return c, true
		}
	}
	return choices[0], true
}

func toCompletion(choice gopenai.ChatCompletionChoice) *provider.Completion {
	msg := fromChatMessage(choice.Message)
	return &provider.Completion{
		Signal:  finishSignal(choice.FinishReason, msg),
		Message: msg,
	}
}

// finishSignal classifies a choice. Tool calls win over the reported reason
// so every recorded call gets answered.
func finishSignal(reason gopenai.FinishReason, msg provider.Message) provider.FinishSignal {
	switch {
	case msg.Refusal != "" || reason == gopenai.FinishReasonContentFilter:
		return provider.FinishRefused
	case reason == gopenai.FinishReasonLength:
		return provider.FinishUsageExceeded
	case len(msg.ToolCalls) > 0:
		return provider.FinishToolCallRequested
	default:
		return provider.FinishDone
	}
}

func fromChatMessage(m gopenai.ChatCompletionMessage) provider.Message {
	msg := provider.Message{
		Role:    provider.RoleAssistant,
		Refusal: m.Refusal,
	}

	for _, tc := range m.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, provider.ToolCall{
			ID:   tc.ID,
			Type: provider.ToolCallType,
			Function: provider.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	// Legacy single function call.
	if len(msg.ToolCalls) == 0 && m.FunctionCall != nil {
		msg.ToolCalls = []provider.ToolCall{{
			ID:   fmt.Sprintf("call_%s", uuid.NewString()),
			Type: provider.ToolCallType,
			Function: provider.FunctionCall{
				Name:      m.FunctionCall.Name,
				Arguments: m.FunctionCall.Arguments,
			},
		}}
	}
	for i := range msg.ToolCalls {
		if msg.ToolCalls[i].ID == "" {
			msg.ToolCalls[i].ID = fmt.Sprintf("call_%s", uuid.NewString())
		}
	}

	if m.Content != "" || len(msg.ToolCalls) == 0 {
		msg.Content = provider.String(m.Content)
	}
	return msg
}

func toProtocolError(status int, resp *gopenai.ErrorResponse) *provider.ProtocolError {
	apiErr := resp.Error
	pe := &provider.ProtocolError{
		Status:  status,
		Type:    apiErr.Type,
		Message: apiErr.Message,
	}
	switch code := apiErr.Code.(type) {
	case nil:
	case string:
		pe.Code = code
	case int:
		// A null code decodes as 0.
		if code != 0 {
			pe.Code = strconv.Itoa(code)
		}
	default:
		pe.Code = fmt.Sprint(code)
	}
	if apiErr.Param != nil {
		pe.Param = *apiErr.Param
	}
	return pe
}
