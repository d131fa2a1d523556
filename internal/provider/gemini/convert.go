package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/well/internal/provider"
	"github.com/Cyclone1070/well/internal/tool"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

// toGeminiContents converts the conversation to Gemini Content format. The
// system message becomes the system instruction.
func toGeminiContents(messages []provider.Message) (*genai.Content, []*genai.Content) {
	var system *genai.Content
	contents := make([]*genai.Content, 0, len(messages))
	callNames := make(map[string]string)

	for _, msg := range messages {
		switch msg.Role {
		case provider.RoleSystem:
			if msg.Text() != "" {
				system = &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(msg.Text())}}
			}

		case provider.RoleUser:
			if msg.Text() != "" {
				contents = append(contents, genai.NewContentFromText(msg.Text(), genai.RoleUser))
			}

		case provider.RoleAssistant:
			parts := make([]*genai.Part, 0, len(msg.ToolCalls)+1)
			if msg.Text() != "" {
				parts = append(parts, genai.NewPartFromText(msg.Text()))
			}
			for _, tc := range msg.ToolCalls {
				callNames[tc.ID] = tc.Function.Name
				parts = append(parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{
						ID:   tc.ID,
						Name: tc.Function.Name,
						Args: decodeArgs(tc.Function.Arguments),
					},
				})
			}
			if len(parts) > 0 {
				contents = append(contents, &genai.Content{Role: string(genai.RoleModel), Parts: parts})
			}

		case provider.RoleTool:
			part := &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       msg.ToolCallID,
					Name:     callNames[msg.ToolCallID],
					Response: toFunctionResponse(msg.Text()),
				},
			}
			// Results of one batch travel together in a single user turn.
			if last := lastContent(contents); last != nil && isFunctionResponses(last) {
				last.Parts = append(last.Parts, part)
				continue
			}
			contents = append(contents, &genai.Content{Role: string(genai.RoleUser), Parts: []*genai.Part{part}})
		}
	}

	return system, contents
}

func lastContent(contents []*genai.Content) *genai.Content {
	if len(contents) == 0 {
		return nil
	}
	return contents[len(contents)-1]
}

func isFunctionResponses(c *genai.Content) bool {
	if c.Role != string(genai.RoleUser) || len(c.Parts) == 0 {
		return false
	}
	for _, p := range c.Parts {
		if p.FunctionResponse == nil {
			return false
		}
	}
	return true
}

func decodeArgs(raw string) map[string]any {
	args := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return args
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return map[string]any{"arguments": raw}
	}
	return args
}

// toFunctionResponse maps a {"result": ...} / {"error": ...} envelope onto
// the "output" / "error" keys Gemini expects.
func toFunctionResponse(content string) map[string]any {
	var envelope map[string]any
	if err := json.Unmarshal([]byte(content), &envelope); err == nil {
		if v, ok := envelope["error"]; ok {
			return map[string]any{"error": v}
		}
		if v, ok := envelope["result"]; ok {
			return map[string]any{"output": v}
		}
	}
	return map[string]any{"output": content}
}

// toGeminiConfig builds the request config.
func toGeminiConfig(system *genai.Content, tools []tool.Declaration) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		SystemInstruction: system,
		SafetySettings:    defaultSafetySettings(),
	}
	if len(tools) > 0 {
		config.Tools = toGeminiTools(tools)
	}
	return config
}

// defaultSafetySettings returns safety settings with BLOCK_NONE for all categories.
func defaultSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{
			Category:  genai.HarmCategoryHateSpeech,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryDangerousContent,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryHarassment,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategorySexuallyExplicit,
			Threshold: genai.HarmBlockThresholdOff,
		},
	}
}

// toGeminiTools converts tool declarations to Gemini tools.
func toGeminiTools(tools []tool.Declaration) []*genai.Tool {
	functionDeclarations := make([]*genai.FunctionDeclaration, 0, len(tools))

	for _, decl := range tools {
		fd := &genai.FunctionDeclaration{
			Name:        decl.Name,
			Description: decl.Description,
		}
		if decl.Parameters != nil && len(decl.Parameters.Properties) > 0 {
			fd.Parameters = toGeminiSchema(decl.Parameters)
		}
		functionDeclarations = append(functionDeclarations, fd)
	}

	return []*genai.Tool{
		{FunctionDeclarations: functionDeclarations},
	}
}

// toGeminiSchema converts a JSON schema to a Gemini Schema.
func toGeminiSchema(s *tool.Schema) *genai.Schema {
	schema := &genai.Schema{
		Type:        toGeminiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
	}
	if len(s.Properties) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			schema.Properties[name] = toGeminiSchema(prop)
		}
	}
	if s.Items != nil {
		schema.Items = toGeminiSchema(s.Items)
	}
	return schema
}

// toGeminiType converts a JSON schema type to a Gemini Type.
func toGeminiType(t tool.Type) genai.Type {
	switch t {
	case tool.TypeString:
		return genai.TypeString
	case tool.TypeNumber:
		return genai.TypeNumber
	case tool.TypeInteger:
		return genai.TypeInteger
	case tool.TypeBoolean:
		return genai.TypeBoolean
	case tool.TypeArray:
		return genai.TypeArray
	case tool.TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// fromGeminiResponse classifies the response.
func fromGeminiResponse(resp *genai.GenerateContentResponse) (*provider.Completion, error) {
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		reason := fb.BlockReasonMessage
		if reason == "" {
			reason = string(fb.BlockReason)
		}
		return &provider.Completion{
			Signal:  provider.FinishRefused,
			Message: provider.Message{Role: provider.RoleAssistant, Refusal: reason},
		}, nil
	}

	candidate := selectCandidate(resp.Candidates)
	if candidate == nil {
		return nil, &provider.TransportError{Op: "decode response", Cause: provider.ErrNoChoice}
	}

	msg := candidateMessage(candidate)

	switch candidate.FinishReason {
	case genai.FinishReasonSafety, genai.FinishReasonProhibitedContent, genai.FinishReasonBlocklist,
		genai.FinishReasonSPII, genai.FinishReasonRecitation:
		msg.Refusal = candidate.FinishMessage
		if msg.Refusal == "" {
			msg.Refusal = string(candidate.FinishReason)
		}
		return &provider.Completion{Signal: provider.FinishRefused, Message: msg}, nil
	case genai.FinishReasonMaxTokens:
		return &provider.Completion{Signal: provider.FinishUsageExceeded, Message: msg}, nil
	}

	if len(msg.ToolCalls) > 0 {
		return &provider.Completion{Signal: provider.FinishToolCallRequested, Message: msg}, nil
	}
	return &provider.Completion{Signal: provider.FinishDone, Message: msg}, nil
}

// selectCandidate prefers the first candidate that was not cut off.
func selectCandidate(candidates []*genai.Candidate) *genai.Candidate {
	var first *genai.Candidate
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if first == nil {
			first = c
		}
		if c.FinishReason != genai.FinishReasonMaxTokens {
			return c
		}
	}
	return first
}

// candidateMessage builds the assistant message. Gemini may omit call IDs, in
// which case one is minted so tool results can be correlated.
func candidateMessage(candidate *genai.Candidate) provider.Message {
	msg := provider.Message{Role: provider.RoleAssistant}

	var text strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			text.WriteString(part.Text)
			if fc := part.FunctionCall; fc != nil {
				msg.ToolCalls = append(msg.ToolCalls, toToolCall(fc))
			}
		}
	}

	if text.Len() > 0 || len(msg.ToolCalls) == 0 {
		msg.Content = provider.String(text.String())
	}
	return msg
}

func toToolCall(fc *genai.FunctionCall) provider.ToolCall {
	id := fc.ID
	if id == "" {
		id = fmt.Sprintf("call_%s", uuid.NewString())
	}
	args := "{}"
	if len(fc.Args) > 0 {
		if data, err := json.Marshal(fc.Args); err == nil {
			args = string(data)
		}
	}
	return provider.ToolCall{
		ID:       id,
		Type:     provider.ToolCallType,
		Function: provider.FunctionCall{Name: fc.Name, Arguments: args},
	}
}

// mapGeminiError maps Gemini API errors to provider errors.
// Both the value and the pointer form of APIError are recognised.
func mapGeminiError(err error) error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch apiErr := any(e).(type) {
		case genai.APIError:
			return toProtocolError(&apiErr)
		case *genai.APIError:
			if apiErr != nil {
				return toProtocolError(apiErr)
			}
		}
	}
	return &provider.TransportError{Op: "generate content", Cause: err}
}

func toProtocolError(apiErr *genai.APIError) *provider.ProtocolError {
	return &provider.ProtocolError{
		Status:  apiErr.Code,
		Code:    apiErr.Status,
		Message: apiErr.Message,
	}
}
