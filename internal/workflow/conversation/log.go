package conversation

import (
	"encoding/json"

	"github.com/Cyclone1070/well/internal/provider"
)

// Log is the ordered transcript of one session. Message 0 is the system
// message and never changes after Seed.
//
// A Log has a single owner and is not safe for concurrent use.
type Log struct {
	messages []provider.Message
}

// Seed creates a log holding only the system message.
func Seed(contextText string) *Log {
	return &Log{
		messages: []provider.Message{
			{Role: provider.RoleSystem, Content: provider.String(contextText)},
		},
	}
}

// AppendUser records a line typed by the user.
func (l *Log) AppendUser(text string) {
	l.messages = append(l.messages, provider.Message{
		Role:    provider.RoleUser,
		Content: provider.String(text),
	})
}

// AppendAssistant records a model reply. Tool calls are attached only when
// there are some.
func (l *Log) AppendAssistant(content *string, toolCalls []provider.ToolCall) {
	msg := provider.Message{
		Role:    provider.RoleAssistant,
		Content: content,
	}
	if len(toolCalls) > 0 {
		msg.ToolCalls = append([]provider.ToolCall(nil), toolCalls...)
	}
	l.messages = append(l.messages, msg)
}

// AppendToolResult records the outcome of a tool call. The content is never
// null on the wire, even when text is empty.
func (l *Log) AppendToolResult(callID, text string) {
	l.messages = append(l.messages, provider.Message{
		Role:       provider.RoleTool,
		ToolCallID: callID,
		Content:    provider.String(text),
	})
}

// Append records an already built message, e.g. one produced by the tool manager.
// Tool messages without content get an empty string.
func (l *Log) Append(msg provider.Message) {
	if msg.Role == provider.RoleTool && msg.Content == nil {
		msg.Content = provider.String("")
	}
	l.messages = append(l.messages, msg)
}

// Messages returns a copy of the transcript.
func (l *Log) Messages() []provider.Message {
	out := make([]provider.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages, the system message included.
func (l *Log) Len() int {
	return len(l.messages)
}

// SerializedSize is the byte length of the transcript as a JSON array, the
// same encoding the transport sends.
func (l *Log) SerializedSize() int {
	data, err := json.Marshal(l.messages)
	if err != nil {
		return 0
	}
	return len(data)
}
