package ui

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned when the user presses Ctrl+C at the prompt.
var ErrInterrupted = errors.New("interrupted")

// lineReader reads one line of user input.
type lineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// promptModel is a single-line Bubble Tea program. It quits on Enter.
type promptModel struct {
	input       textinput.Model
	submitted   bool
	interrupted bool
	eof         bool
}

func newPromptModel(prompt string) promptModel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "Ask about the repository, or press Enter to quit"
	ti.Focus()
	return promptModel{input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.interrupted = true
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				m.eof = true
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.submitted || m.interrupted || m.eof {
		return ""
	}
	return m.input.View()
}

// result maps the final model state to ReadLine's return values.
func (m promptModel) result() (string, error) {
	switch {
	case m.interrupted:
		return "", ErrInterrupted
	case m.eof:
		return "", io.EOF
	default:
		return m.input.Value(), nil
	}
}

// teaReader prompts with a Bubble Tea text input on a terminal.
type teaReader struct {
	in     io.Reader
	out    io.Writer
	prompt string
}

func (r *teaReader) ReadLine(ctx context.Context) (string, error) {
	p := tea.NewProgram(newPromptModel(r.prompt),
		tea.WithInput(r.in),
		tea.WithOutput(r.out),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	return final.(promptModel).result()
}

// plainReader reads lines from a non-interactive input such as a pipe.
type plainReader struct {
	reader *bufio.Reader
}

func newPlainReader(in io.Reader) *plainReader {
	return &plainReader{reader: bufio.NewReader(in)}
}

func (r *plainReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := r.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
