package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/Cyclone1070/well/internal/provider"
	"github.com/Cyclone1070/well/internal/workflow"
	"github.com/charmbracelet/lipgloss"
)

// Options configures a Terminal.
type Options struct {
	In  io.Reader
	Out io.Writer

	// Interactive enables the spinner and the Bubble Tea prompt. Set it when
	// both In and Out are terminals.
	Interactive bool

	// Renderer renders replies; nil prints them verbatim.
	Renderer MarkdownRenderer
}

// Terminal presents the conversation on a line-oriented terminal: user lines
// behind ">>", model output behind "<<".
type Terminal struct {
	out      io.Writer
	styles   styles
	renderer MarkdownRenderer
	progress *progress
	reader   lineReader
}

// New creates a Terminal.
func New(opts Options) *Terminal {
	if opts.In == nil {
		panic("input is required")
	}
	if opts.Out == nil {
		panic("output is required")
	}

	st := newStyles(lipgloss.NewRenderer(opts.Out))
	renderer := opts.Renderer
	if renderer == nil {
		renderer = plainRenderer{}
	}

	var reader lineReader = newPlainReader(opts.In)
	if opts.Interactive {
		reader = &teaReader{in: opts.In, out: opts.Out, prompt: st.UserNotch.Render(userNotch) + " "}
	}

	return &Terminal{
		out:      opts.Out,
		styles:   st,
		renderer: renderer,
		progress: newProgress(opts.Out, st.Spinner, opts.Interactive),
		reader:   reader,
	}
}

// Notify renders a workflow event.
func (t *Terminal) Notify(ev workflow.Event) {
	switch e := ev.(type) {
	case workflow.ThinkingEvent:
		t.progress.Start()

	case workflow.ReplyEvent:
		t.progress.Stop()
		t.showReply(e.Message)

	case workflow.ToolResultEvent:
		// Results are meant for the model only.

	case workflow.RecoveryEvent:
		t.progress.Stop()
		fmt.Fprintf(t.out, "%s\n\n", t.styles.Dimmed.Render(
			fmt.Sprintf("(context window exceeded, dropped old tool output: %d -> %d bytes)", e.Before, e.After)))
	}
}

func (t *Terminal) showReply(msg provider.Message) {
	for _, tc := range msg.ToolCalls {
		fmt.Fprintf(t.out, "%s %s\n",
			t.styles.CallNotch.Render(replyNotch),
			t.styles.Call.Render(tc.Function.Name+tc.Function.Arguments))
	}

	switch {
	case msg.Text() != "":
		fmt.Fprintf(t.out, "%s %s\n", t.styles.ReplyNotch.Render(replyNotch), renderReply(t.renderer, msg.Text()))
	case len(msg.ToolCalls) == 0:
		fmt.Fprintf(t.out, "%s %s\n", t.styles.ReplyNotch.Render(replyNotch), t.styles.Dimmed.Render("..."))
	}
	fmt.Fprintln(t.out)
}

// ShowUserInput echoes a line the user supplied up front, such as the
// command-line prompt.
func (t *Terminal) ShowUserInput(text string) {
	fmt.Fprintf(t.out, "%s %s\n\n", t.styles.UserNotch.Render(userNotch), text)
}

// ReadInput reads the next user line.
func (t *Terminal) ReadInput(ctx context.Context) (string, error) {
	t.progress.Stop()

	if _, ok := t.reader.(*plainReader); ok {
		fmt.Fprintf(t.out, "%s ", t.styles.UserNotch.Render(userNotch))
	}
	line, err := t.reader.ReadLine(ctx)
	if err != nil {
		fmt.Fprintln(t.out)
		return "", err
	}
	if _, ok := t.reader.(*teaReader); ok {
		fmt.Fprintf(t.out, "%s %s\n", t.styles.UserNotch.Render(userNotch), line)
	}
	fmt.Fprintln(t.out)
	return line, nil
}

// Close stops the spinner if it is still running.
func (t *Terminal) Close() {
	t.progress.Stop()
}
