package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestProgress_StartStop(t *testing.T) {
	var out syncBuffer
	p := newProgress(&out, lipgloss.NewStyle(), true)

	p.Start()
	p.Start()
	time.Sleep(100 * time.Millisecond)
	p.Stop()
	p.Stop()

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "\r"))
	assert.True(t, strings.HasSuffix(got, "\r \r"))
}

func TestProgress_Disabled(t *testing.T) {
	var out syncBuffer
	p := newProgress(&out, lipgloss.NewStyle(), false)

	p.Start()
	p.Stop()

	assert.Empty(t, out.String())
}
