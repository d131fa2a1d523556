package loop

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/Cyclone1070/well/internal/provider"
	"github.com/Cyclone1070/well/internal/workflow"
	"github.com/Cyclone1070/well/internal/workflow/conversation"
	"go.uber.org/zap"
)

// Loop drives the conversation between the user, the model and the tools.
type Loop struct {
	provider      llmProvider
	tools         toolManager
	ui            presenter
	logger        *zap.Logger
	model         string
	maxRecoveries int
}

func NewLoop(provider llmProvider, tools toolManager, ui presenter, logger *zap.Logger, model string, maxRecoveries int) *Loop {
	if provider == nil {
		panic("provider is required")
	}
	if tools == nil {
		panic("tools is required")
	}
	if ui == nil {
		panic("ui is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Loop{
		provider:      provider,
		tools:         tools,
		ui:            ui,
		logger:        logger,
		model:         model,
		maxRecoveries: maxRecoveries,
	}
}

// session is the mutable state of one Run.
type session struct {
	log        *conversation.Log
	completion *provider.Completion
	recoveries int
	err        error
}

// Run converses until the user enters an empty line or a fatal error occurs.
// The log must already be seeded; Run starts by asking the model.
func (l *Loop) Run(ctx context.Context, log *conversation.Log) error {
	s := &session{log: log}
	state := AwaitingModel

	for !state.Terminal() {
		next := l.step(ctx, s, state)
		l.logger.Debug("state transition",
			zap.Stringer("from", state),
			zap.Stringer("to", next),
			zap.Int("messages", log.Len()))
		state = next
	}

	if state == Fatal {
		return s.err
	}
	return nil
}

func (l *Loop) step(ctx context.Context, s *session, state State) State {
	switch state {
	case AwaitingModel:
		return l.awaitModel(ctx, s)
	case Interpreting:
		return l.interpret(s)
	case Dispatching:
		return l.dispatch(ctx, s)
	case RecoveringContext:
		return l.recover(s)
	case AwaitingUser:
		return l.awaitUser(ctx, s)
	default:
		return state
	}
}

func (l *Loop) awaitModel(ctx context.Context, s *session) State {
	l.ui.Notify(workflow.ThinkingEvent{})

	completion, err := l.provider.Complete(ctx, l.model, s.log.Messages(), l.tools.Declarations())
	if err != nil {
		s.err = err
		return Fatal
	}
	s.completion = completion
	return Interpreting
}

func (l *Loop) interpret(s *session) State {
	c := s.completion
	l.logger.Debug("model finished", zap.Stringer("signal", c.Signal))

	if c.Signal != provider.FinishUsageExceeded {
		s.recoveries = 0
	}

	switch c.Signal {
	case provider.FinishRefused:
		reason := c.Message.Refusal
		if reason == "" {
			reason = c.Message.Text()
		}
		s.err = &provider.RefusalError{Reason: reason}
		return Fatal

	case provider.FinishUsageExceeded:
		if s.recoveries >= l.maxRecoveries {
			s.err = &provider.ContextOverflowError{Attempts: s.recoveries, Size: s.log.SerializedSize()}
			return Fatal
		}
		return RecoveringContext

	case provider.FinishToolCallRequested:
		if len(c.Message.ToolCalls) == 0 {
			return l.reply(s, AwaitingUser)
		}
		return l.reply(s, Dispatching)

	default:
		return l.reply(s, AwaitingUser)
	}
}

// reply records the assistant message and shows it.
func (l *Loop) reply(s *session, next State) State {
	msg := s.completion.Message
	s.log.AppendAssistant(msg.Content, msg.ToolCalls)
	l.ui.Notify(workflow.ReplyEvent{Message: msg})
	return next
}

func (l *Loop) dispatch(ctx context.Context, s *session) State {
	calls := s.completion.Message.ToolCalls
	results := l.tools.Dispatch(ctx, calls)

	for i, res := range results {
		s.log.Append(res)
		l.ui.Notify(workflow.ToolResultEvent{Call: calls[i], Content: res.Text()})
	}
	return AwaitingModel
}

func (l *Loop) recover(s *session) State {
	before, after := s.log.StripStaleToolResults()
	s.recoveries++

	l.logger.Info("conversation exceeded the context window, stripped stale tool results",
		zap.Int("attempt", s.recoveries),
		zap.Int("size_before", before),
		zap.Int("size_after", after))
	l.ui.Notify(workflow.RecoveryEvent{Attempt: s.recoveries, Before: before, After: after})
	return AwaitingModel
}

func (l *Loop) awaitUser(ctx context.Context, s *session) State {
	line, err := l.ui.ReadInput(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Done
		}
		s.err = err
		return Fatal
	}
	if strings.TrimSpace(line) == "" {
		return Done
	}
	s.log.AppendUser(line)
	return AwaitingModel
}
