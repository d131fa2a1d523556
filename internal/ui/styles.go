package ui

import "github.com/charmbracelet/lipgloss"

// styles holds the lipgloss styles of the presenter, bound to its output.
type styles struct {
	UserNotch  lipgloss.Style
	ReplyNotch lipgloss.Style
	CallNotch  lipgloss.Style
	Call       lipgloss.Style
	Dimmed     lipgloss.Style
	Spinner    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	notch := r.NewStyle().Bold(true).Faint(true)
	return styles{
		UserNotch:  notch.Foreground(lipgloss.Color("11")),
		ReplyNotch: notch.Foreground(lipgloss.Color("10")),
		CallNotch:  notch.Foreground(lipgloss.Color("14")),
		Call:       r.NewStyle().Foreground(lipgloss.Color("6")),
		Dimmed:     r.NewStyle().Faint(true),
		Spinner:    r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

const (
	userNotch  = ">>"
	replyNotch = "<<"
)
