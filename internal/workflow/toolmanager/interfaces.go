package toolmanager

import (
	"context"

	"github.com/Cyclone1070/well/internal/tool"
)

// toolImpl defines the interface for individual tools.
type toolImpl interface {
	// Name returns the tool's identifier.
	Name() string

	// Declaration returns the tool's schema for the LLM.
	Declaration() tool.Declaration

	// Request returns a pointer to the request struct (e.g., &file.ReadRequest{}).
	// Arguments are decoded into it through its mapstructure tags.
	Request() any

	// Execute runs the tool with the decoded request. The returned string is
	// the success payload; an error is reported to the model as a failure.
	Execute(ctx context.Context, req any) (string, error)
}
