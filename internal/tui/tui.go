// Package tui is the interactive terminal mode: type words or IPA, press
// Enter, and the Hangul is added to a scrollback above the prompt.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jusunglee/phonetics-to-hangul/internal/pronounce"
)

const maxHistory = 20

// Transcriber is implemented by *pronounce.Transcriber.
type Transcriber interface {
	Transcribe(ctx context.Context, text string) ([]pronounce.Result, error)
	TranscribeIPA(text string) []pronounce.Result
}

type mode int

const (
	modeWords mode = iota
	modeIPA
)

func (m mode) String() string {
	if m == modeIPA {
		return "IPA"
	}
	return "words"
}

func (m mode) placeholder() string {
	if m == modeIPA {
		return "ɪɡzæmpʌl"
	}
	return "hello world"
}

type entry struct {
	input   string
	results []pronounce.Result
	err     error
}

type resultMsg entry

type Model struct {
	ctx         context.Context
	transcriber Transcriber
	textInput   textinput.Model
	mode        mode
	history     []entry
	pending     bool
}

func New(ctx context.Context, transcriber Transcriber, ipaMode bool) Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	m := Model{
		ctx:         ctx,
		transcriber: transcriber,
		textInput:   ti,
	}
	if ipaMode {
		m.mode = modeIPA
	}
	m.textInput.Placeholder = m.mode.placeholder()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.mode = 1 - m.mode
			m.textInput.Placeholder = m.mode.placeholder()
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}

	case resultMsg:
		m.pending = false
		m.history = append(m.history, entry(msg))
		if len(m.history) > maxHistory {
			m.history = m.history[len(m.history)-maxHistory:]
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.textInput.Value())
	if text == "" || m.pending {
		return m, nil
	}
	m.textInput.Reset()
	m.pending = true
	return m, m.convert(text)
}

// convert runs off the UI loop because word lookups may go to the network.
func (m Model) convert(text string) tea.Cmd {
	current := m.mode
	return func() tea.Msg {
		if current == modeIPA {
			return resultMsg{input: text, results: m.transcriber.TranscribeIPA(text)}
		}
		results, err := m.transcriber.Transcribe(m.ctx, text)
		return resultMsg{input: text, results: results, err: err}
	}
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Phonetics to Hangul"))
	s.WriteString("\n")

	for _, e := range m.history {
		s.WriteString(subtleStyle.Render("> " + e.input))
		s.WriteString("\n")
		if e.err != nil {
			s.WriteString(RenderError(e.err))
		} else {
			s.WriteString(RenderResults(e.results))
		}
		s.WriteString("\n")
	}

	s.WriteString(modeStyle.Render(m.mode.String()))
	s.WriteString(" ")
	s.WriteString(m.textInput.View())
	s.WriteString("\n")
	if m.pending {
		s.WriteString(subtleStyle.Render("looking up..."))
	} else {
		s.WriteString(subtleStyle.Render("Enter to convert, Tab to switch words/IPA, Esc to quit"))
	}
	s.WriteString("\n")
	return s.String()
}

// Run blocks until the user quits.
func Run(ctx context.Context, transcriber Transcriber, ipaMode bool) error {
	_, err := tea.NewProgram(New(ctx, transcriber, ipaMode), tea.WithContext(ctx)).Run()
	return err
}
