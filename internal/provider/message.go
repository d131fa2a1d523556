package provider

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry of the conversation as sent on the wire.
//
// Content is a pointer so an assistant message that only requests tool calls
// encodes as null, while a tool result always carries a string (possibly "").
type Message struct {
	Role       Role       `json:"role"`
	Content    *string    `json:"content"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	Refusal    string     `json:"refusal,omitempty"`
}

// Text returns the message content, or "" when there is none.
func (m Message) Text() string {
	if m.Content == nil {
		return ""
	}
	return *m.Content
}

// ToolCall is a single function invocation requested by the model.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall names the tool and carries its raw JSON arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCallType is the only call type the chat protocol defines.
const ToolCallType = "function"

// String returns a pointer to s, for building message content.
func String(s string) *string {
	return &s
}

// FinishSignal classifies why the model stopped producing output.
type FinishSignal int

const (
	// FinishDone means the model produced a final reply for the user.
	FinishDone FinishSignal = iota
	// FinishUsageExceeded means the conversation outgrew the context window.
	FinishUsageExceeded
	// FinishToolCallRequested means the model wants one or more tools run.
	FinishToolCallRequested
	// FinishRefused means the model declined to answer.
	FinishRefused
)

func (s FinishSignal) String() string {
	switch s {
	case FinishDone:
		return "done"
	case FinishUsageExceeded:
		return "usage_exceeded"
	case FinishToolCallRequested:
		return "tool_calls"
	case FinishRefused:
		return "refused"
	default:
		return "unknown"
	}
}

// Completion is one model turn: the classified signal plus the assistant message.
type Completion struct {
	Signal  FinishSignal
	Message Message
}
