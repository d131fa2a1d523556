package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders a model reply for the terminal.
type MarkdownRenderer interface {
	Render(in string) (string, error)
}

// NewGlamourRenderer renders markdown with glamour, wrapped at width columns.
func NewGlamourRenderer(width int) (MarkdownRenderer, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// plainRenderer leaves the text untouched.
type plainRenderer struct{}

func (plainRenderer) Render(in string) (string, error) {
	return in, nil
}

// renderReply renders text and falls back to the raw text on failure.
func renderReply(r MarkdownRenderer, text string) string {
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
