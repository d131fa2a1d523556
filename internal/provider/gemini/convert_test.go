package gemini

import (
	"testing"

	"github.com/Cyclone1070/well/internal/provider"
	"github.com/Cyclone1070/well/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToGeminiContents(t *testing.T) {
	messages := []provider.Message{
		{Role: provider.RoleSystem, Content: provider.String("system")},
		{Role: provider.RoleUser, Content: provider.String("list files")},
		{Role: provider.RoleAssistant, ToolCalls: []provider.ToolCall{
			{ID: "c1", Type: "function", Function: provider.FunctionCall{Name: "list", Arguments: `{"path":"."}`}},
			{ID: "c2", Type: "function", Function: provider.FunctionCall{Name: "read", Arguments: `not json`}},
		}},
		{Role: provider.RoleTool, ToolCallID: "c1", Content: provider.String(`{"result":"a.go\n"}`)},
		{Role: provider.RoleTool, ToolCallID: "c2", Content: provider.String(`{"error":"boom"}`)},
		{Role: provider.RoleAssistant, Content: provider.String("one file")},
	}

	system, contents := toGeminiContents(messages)

	require.NotNil(t, system)
	assert.Equal(t, "system", system.Parts[0].Text)
	require.Len(t, contents, 4)

	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "list files", contents[0].Parts[0].Text)

	calls := contents[1]
	assert.Equal(t, "model", calls.Role)
	require.Len(t, calls.Parts, 2)
	assert.Equal(t, "c1", calls.Parts[0].FunctionCall.ID)
	assert.Equal(t, map[string]any{"path": "."}, calls.Parts[0].FunctionCall.Args)
	assert.Equal(t, map[string]any{"arguments": "not json"}, calls.Parts[1].FunctionCall.Args)

	results := contents[2]
	assert.Equal(t, "user", results.Role)
	require.Len(t, results.Parts, 2)
	assert.Equal(t, "list", results.Parts[0].FunctionResponse.Name)
	assert.Equal(t, "c1", results.Parts[0].FunctionResponse.ID)
	assert.Equal(t, map[string]any{"output": "a.go\n"}, results.Parts[0].FunctionResponse.Response)
	assert.Equal(t, "read", results.Parts[1].FunctionResponse.Name)
	assert.Equal(t, map[string]any{"error": "boom"}, results.Parts[1].FunctionResponse.Response)

	assert.Equal(t, "model", contents[3].Role)
	assert.Equal(t, "one file", contents[3].Parts[0].Text)
}

func TestToGeminiContents_StrippedToolResult(t *testing.T) {
	messages := []provider.Message{
		{Role: provider.RoleAssistant, ToolCalls: []provider.ToolCall{{ID: "c1", Function: provider.FunctionCall{Name: "log"}}}},
		{Role: provider.RoleTool, ToolCallID: "c1", Content: provider.String("")},
	}

	_, contents := toGeminiContents(messages)

	require.Len(t, contents, 2)
	assert.Equal(t, map[string]any{"output": ""}, contents[1].Parts[0].FunctionResponse.Response)
}

func TestToGeminiSchema(t *testing.T) {
	schema := toGeminiSchema(tool.PathParameters("where"))

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"path"}, schema.Required)
	require.Contains(t, schema.Properties, "path")
	assert.Equal(t, genai.TypeString, schema.Properties["path"].Type)
	assert.Equal(t, "where", schema.Properties["path"].Description)
}

func TestToGeminiTools_NoParameters(t *testing.T) {
	tools := toGeminiTools([]tool.Declaration{{Name: "log", Description: "history", Parameters: tool.NoParameters()}})

	require.Len(t, tools, 1)
	require.Len(t, tools[0].FunctionDeclarations, 1)
	assert.Nil(t, tools[0].FunctionDeclarations[0].Parameters)
}

func TestSelectCandidate(t *testing.T) {
	cut := &genai.Candidate{FinishReason: genai.FinishReasonMaxTokens}
	whole := &genai.Candidate{FinishReason: genai.FinishReasonStop}

	assert.Same(t, whole, selectCandidate([]*genai.Candidate{cut, whole}))
	assert.Same(t, cut, selectCandidate([]*genai.Candidate{cut}))
	assert.Nil(t, selectCandidate(nil))
}
