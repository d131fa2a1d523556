package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// progress draws a one-character spinner on its own goroutine while the
// model is working. It shares nothing with the conversation.
type progress struct {
	out     io.Writer
	frames  spinner.Spinner
	style   lipgloss.Style
	enabled bool

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func newProgress(out io.Writer, style lipgloss.Style, enabled bool) *progress {
	return &progress{
		out:     out,
		frames:  spinner.MiniDot,
		style:   style,
		enabled: enabled,
	}
}

// Start shows the spinner. Starting a running spinner is a no-op.
func (p *progress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.stop != nil {
		return
	}
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.run(p.stop, p.done)
}

// Stop clears the spinner and waits for its goroutine to exit.
func (p *progress) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop == nil {
		return
	}
	close(p.stop)
	<-p.done
	p.stop, p.done = nil, nil
}

func (p *progress) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.frames.FPS)
	defer ticker.Stop()

	for i := 0; ; i++ {
		frame := p.frames.Frames[i%len(p.frames.Frames)]
		fmt.Fprintf(p.out, "\r%s", p.style.Render(frame))
		select {
		case <-stop:
			fmt.Fprint(p.out, "\r \r")
			return
		case <-ticker.C:
		}
	}
}
