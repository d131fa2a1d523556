package toolmanager

import (
	"context"
	"fmt"
	"sort"

	"github.com/Cyclone1070/well/internal/provider"
	"github.com/Cyclone1070/well/internal/tool"
	"github.com/Cyclone1070/well/internal/tool/service/path"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ToolManager maps tool identifiers to executors and turns every call into a
// tool message for the conversation.
type ToolManager struct {
	registry    map[Name]toolImpl
	concurrency int
	logger      *zap.Logger
}

// NewToolManager creates a ToolManager. concurrency bounds how many calls of
// one batch run at the same time; values below 1 mean one at a time.
func NewToolManager(logger *zap.Logger, concurrency int, tools ...toolImpl) *ToolManager {
	if logger == nil {
		panic("logger is required")
	}
	if concurrency < 1 {
		concurrency = 1
	}
	tm := &ToolManager{
		registry:    make(map[Name]toolImpl),
		concurrency: concurrency,
		logger:      logger,
	}
	for _, t := range tools {
		tm.Register(t)
	}
	return tm
}

// Register adds t under its name. It panics if the name is not one of Names.
func (m *ToolManager) Register(t toolImpl) {
	name, ok := ParseName(t.Name())
	if !ok {
		panic(fmt.Sprintf("unknown tool name %q", t.Name()))
	}
	m.registry[name] = t
}

// Missing reports the tool identifiers that have no executor registered.
func (m *ToolManager) Missing() []Name {
	var missing []Name
	for _, n := range Names {
		if _, ok := m.registry[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

func (m *ToolManager) Declarations() []tool.Declaration {
	decls := make([]tool.Declaration, 0, len(m.registry))
	for _, t := range m.registry {
		decls = append(decls, t.Declaration())
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}

// Execute resolves a single call. The result is always a tool message whose
// content is either {"result": ...} or {"error": ...}.
func (m *ToolManager) Execute(ctx context.Context, tc provider.ToolCall) provider.Message {
	logger := m.logger.With(zap.String("tool", tc.Function.Name), zap.String("call_id", tc.ID))

	output, err := m.run(ctx, tc)
	content := tool.Success(output)
	if err != nil {
		content = tool.Failure(err)
		switch {
		case path.IsSandboxViolation(err):
			logger.Warn("tool call rejected by path guard", zap.Error(err))
		default:
			logger.Debug("tool call failed", zap.Error(err))
		}
	} else {
		logger.Debug("tool call succeeded", zap.Int("bytes", len(output)))
	}

	return provider.Message{
		Role:       provider.RoleTool,
		ToolCallID: tc.ID,
		Content:    provider.String(content),
	}
}

func (m *ToolManager) run(ctx context.Context, tc provider.ToolCall) (string, error) {
	name, ok := ParseName(tc.Function.Name)
	if !ok {
		return "", &tool.UnknownToolError{Name: tc.Function.Name}
	}
	t, ok := m.registry[name]
	if !ok {
		return "", &tool.UnknownToolError{Name: tc.Function.Name}
	}

	req := t.Request()
	if err := decodeArguments(t.Declaration(), tc.Function.Arguments, req); err != nil {
		return "", &tool.ArgumentError{Tool: tc.Function.Name, Cause: err}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return t.Execute(ctx, req)
}

// Dispatch resolves a batch of calls concurrently and returns one tool
// message per call, in call order.
func (m *ToolManager) Dispatch(ctx context.Context, calls []provider.ToolCall) []provider.Message {
	results := make([]provider.Message, len(calls))

	var g errgroup.Group
	g.SetLimit(m.concurrency)
	for i, tc := range calls {
		g.Go(func() error {
			results[i] = m.Execute(ctx, tc)
			return nil
		})
	}
	// Execute never fails; errors are reported inside the messages.
	_ = g.Wait()

	return results
}
