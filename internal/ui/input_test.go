package ui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeKeys(m promptModel, msgs ...tea.Msg) promptModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(promptModel)
	}
	return m
}

func TestPromptModel_Submit(t *testing.T) {
	m := typeKeys(newPromptModel(">> "),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("what is this?")},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	line, err := m.result()
	require.NoError(t, err)
	assert.Equal(t, "what is this?", line)
	assert.Equal(t, "", m.View())
}

func TestPromptModel_EmptySubmit(t *testing.T) {
	m := typeKeys(newPromptModel(">> "), tea.KeyMsg{Type: tea.KeyEnter})

	line, err := m.result()
	require.NoError(t, err)
	assert.Equal(t, "", line)
}

func TestPromptModel_CtrlC(t *testing.T) {
	m := typeKeys(newPromptModel(">> "),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")},
		tea.KeyMsg{Type: tea.KeyCtrlC},
	)

	_, err := m.result()
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestPromptModel_CtrlDOnEmptyLine(t *testing.T) {
	m := typeKeys(newPromptModel(">> "), tea.KeyMsg{Type: tea.KeyCtrlD})

	_, err := m.result()
	assert.ErrorIs(t, err, io.EOF)
}

func TestPromptModel_ViewShowsPrompt(t *testing.T) {
	m := newPromptModel(">> ")
	assert.Contains(t, m.View(), ">> ")
}
