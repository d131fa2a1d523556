package loop

import (
	"context"

	"github.com/Cyclone1070/well/internal/provider"
	"github.com/Cyclone1070/well/internal/tool"
	"github.com/Cyclone1070/well/internal/workflow"
)

// llmProvider communicates with an LLM.
type llmProvider interface {
	// Complete sends the conversation to the model and returns its classified answer.
	Complete(ctx context.Context, model string, messages []provider.Message, tools []tool.Declaration) (*provider.Completion, error)
}

// toolManager manages tool storage and execution.
type toolManager interface {
	// Declarations returns all tool schemas for the LLM.
	Declarations() []tool.Declaration

	// Dispatch resolves a batch of calls and returns one tool message per call.
	Dispatch(ctx context.Context, calls []provider.ToolCall) []provider.Message
}

// presenter shows workflow events to the user and reads their input.
type presenter interface {
	// Notify renders an event. It returns once the event is on screen.
	Notify(ev workflow.Event)

	// ReadInput blocks for one line of input. io.EOF ends the session.
	ReadInput(ctx context.Context) (string, error)
}
