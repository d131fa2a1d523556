package conversation

import (
	"strings"
	"testing"

	"github.com/Cyclone1070/well/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roles(msgs []provider.Message) []provider.Role {
	out := make([]provider.Role, len(msgs))
	for i, m := range msgs {
		out[i] = m.Role
	}
	return out
}

func sampleLog() *Log {
	big := strings.Repeat("x", 512)
	log := Seed("ctx")
	log.AppendUser("what is in here?")
	log.AppendAssistant(nil, []provider.ToolCall{call("c1", "list", `{"path":"."}`)})
	log.AppendToolResult("c1", `{"result":"`+big+`"}`)
	log.AppendAssistant(nil, []provider.ToolCall{
		call("c2", "read", `{"path":"a.go"}`),
		call("c3", "read", `{"path":"b.go"}`),
	})
	log.AppendToolResult("c2", `{"result":"package a"}`)
	log.AppendToolResult("c3", `{"result":"package b"}`)
	return log
}

func TestStripStaleToolResults_KeepsActiveChain(t *testing.T) {
	log := sampleLog()
	original := log.Messages()

	before, after := log.StripStaleToolResults()

	assert.Less(t, after, before)
	got := log.Messages()
	require.Len(t, got, len(original))
	assert.Equal(t, roles(original), roles(got))

	assert.Equal(t, "", got[3].Text())
	assert.NotNil(t, got[3].Content)
	assert.Equal(t, "c1", got[3].ToolCallID)
	assert.Equal(t, `{"result":"package a"}`, got[5].Text())
	assert.Equal(t, `{"result":"package b"}`, got[6].Text())
}

func TestStripStaleToolResults_NonToolContentUntouched(t *testing.T) {
	log := sampleLog()
	log.AppendAssistant(provider.String("done"), nil)
	original := log.Messages()

	log.StripStaleToolResults()

	got := log.Messages()
	for i, msg := range got {
		if msg.Role == provider.RoleTool {
			assert.Equal(t, "", msg.Text(), "tool message %d", i)
			continue
		}
		assert.Equal(t, original[i].Text(), msg.Text(), "message %d", i)
		assert.Equal(t, original[i].ToolCalls, msg.ToolCalls, "message %d", i)
	}
}

func TestStripStaleToolResults_Idempotent(t *testing.T) {
	log := sampleLog()

	_, first := log.StripStaleToolResults()
	before, second := log.StripStaleToolResults()

	assert.Equal(t, first, before)
	assert.Equal(t, first, second)
}

func TestStripStaleToolResults_AssistantInsideChainTerminatesIt(t *testing.T) {
	log := Seed("ctx")
	log.AppendAssistant(nil, []provider.ToolCall{call("c1", "log", `{}`)})
	log.AppendToolResult("c1", "older")
	log.AppendAssistant(provider.String("interleaved"), nil)
	log.AppendToolResult("c2", "newer")

	log.StripStaleToolResults()

	got := log.Messages()
	assert.Equal(t, "", got[2].Text())
	assert.Equal(t, "interleaved", got[3].Text())
	assert.Equal(t, "newer", got[4].Text())
}

func TestStripStaleToolResults_SystemOnly(t *testing.T) {
	log := Seed("ctx")

	before, after := log.StripStaleToolResults()

	assert.Equal(t, before, after)
	assert.Equal(t, "ctx", log.Messages()[0].Text())
}
