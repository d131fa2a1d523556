package workflow

import "github.com/Cyclone1070/well/internal/provider"

// Event is the interface for all workflow events.
// UI handles events via type switch.
type Event interface {
	isEvent()
}

// ThinkingEvent is emitted right before the model is invoked.
type ThinkingEvent struct{}

func (ThinkingEvent) isEvent() {}

// ReplyEvent is emitted once the model has answered, before any tools run.
type ReplyEvent struct {
	Message provider.Message
}

func (ReplyEvent) isEvent() {}

// ToolResultEvent is emitted for every tool call after it has been resolved.
type ToolResultEvent struct {
	Call    provider.ToolCall
	Content string
}

func (ToolResultEvent) isEvent() {}

// RecoveryEvent is emitted after stale tool results were stripped from the
// conversation to fit the context window.
type RecoveryEvent struct {
	Attempt int
	Before  int
	After   int
}

func (RecoveryEvent) isEvent() {}
