package conversation

import "github.com/Cyclone1070/well/internal/provider"

// StripStaleToolResults shrinks the transcript after the model reported that
// it no longer fits the context window.
//
// The trailing run of tool messages is the active chain and stays intact. Any
// tool message before the first non-tool message (scanning backward) has its
// content replaced by "". Messages are never removed, since every tool call
// must keep its paired result. It returns the serialized size before and after.
func (l *Log) StripStaleToolResults() (before, after int) {
	before = l.SerializedSize()

	inChain := true
	for i := len(l.messages) - 1; i > 0; i-- {
		msg := &l.messages[i]
		if msg.Role != provider.RoleTool {
			inChain = false
			continue
		}
		if inChain {
			continue
		}
		msg.Content = provider.String("")
	}

	after = l.SerializedSize()
	return before, after
}
