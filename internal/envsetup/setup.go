// envsetup is the first-run .env wizard for the Discord bot. It asks for the
// bot token and an optional LLM fallback for words missing from the
// dictionary.
package envsetup

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jusunglee/phonetics-to-hangul/internal/anthropic"
	"github.com/jusunglee/phonetics-to-hangul/internal/google"
	"github.com/jusunglee/phonetics-to-hangul/internal/pronounce"
)

const (
	DefaultPath     = ".env"
	defaultCacheURL = "./phonetics-to-hangul.db"
)

type step int

const (
	stepWelcome step = iota
	stepDiscord
	stepLLMProvider
	stepLLMKey
	stepConfirm
	stepSaved
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type model struct {
	path         string
	step         step
	discordToken string
	llmProvider  string
	llmAPIKey    string
	textInput    textinput.Model
	err          error
}

func newModel(path string) model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60
	return model{path: path, step: stepWelcome, textInput: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) nextStep(s step) model {
	m.step = s
	m.textInput.Reset()
	m.textInput.EchoMode = textinput.EchoNormal
	if s == stepDiscord || s == stepLLMKey {
		m.textInput.EchoMode = textinput.EchoPassword
	}
	return m
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	m.err = nil
	input := strings.TrimSpace(m.textInput.Value())
	m.textInput.Reset()

	switch m.step {
	case stepWelcome:
		m = m.nextStep(stepDiscord)

	case stepDiscord:
		if input == "" {
			m.err = errors.New("Discord token is required")
			return m, nil
		}
		m.discordToken = input
		m = m.nextStep(stepLLMProvider)

	case stepLLMProvider:
		switch strings.ToLower(input) {
		case "", "0", pronounce.ProviderNone:
			m.llmProvider = pronounce.ProviderNone
			m = m.nextStep(stepConfirm)
		case "1", pronounce.ProviderAnthropic:
			m.llmProvider = pronounce.ProviderAnthropic
			m = m.nextStep(stepLLMKey)
		case "2", pronounce.ProviderGoogle:
			m.llmProvider = pronounce.ProviderGoogle
			m = m.nextStep(stepLLMKey)
		default:
			m.err = errors.New("Please enter 0 for none, 1 for Anthropic or 2 for Google")
		}

	case stepLLMKey:
		if input == "" {
			m.err = errors.New("API key is required")
			return m, nil
		}
		m.llmAPIKey = input
		m = m.nextStep(stepConfirm)

	case stepConfirm:
		switch strings.ToLower(input) {
		case "", "y", "yes":
			if err := m.writeEnvFile(); err != nil {
				m.err = err
				return m, nil
			}
			m.step = stepSaved
			return m, tea.Quit
		case "n", "no":
			m = newModel(m.path)
		}
	}

	return m, nil
}

func (m model) envContent() string {
	var s strings.Builder
	fmt.Fprintf(&s, "DISCORD_TOKEN=%s\n", m.discordToken)
	fmt.Fprintf(&s, "CACHE_URL=%s\n", defaultCacheURL)
	fmt.Fprintf(&s, "LLM_PROVIDER=%s\n", m.llmProvider)
	switch m.llmProvider {
	case pronounce.ProviderAnthropic:
		fmt.Fprintf(&s, "LLM_MODEL=%s\n", anthropic.DefaultModel)
		fmt.Fprintf(&s, "ANTHROPIC_API_KEY=%s\n", m.llmAPIKey)
	case pronounce.ProviderGoogle:
		fmt.Fprintf(&s, "LLM_MODEL=%s\n", google.DefaultModel)
		fmt.Fprintf(&s, "GOOGLE_API_KEY=%s\n", m.llmAPIKey)
	}
	return s.String()
}

func (m model) writeEnvFile() error {
	return os.WriteFile(m.path, []byte(m.envContent()), 0600)
}

func (m model) View() string {
	var s strings.Builder

	switch m.step {
	case stepWelcome:
		s.WriteString(titleStyle.Render("Phonetics to Hangul - Bot Setup"))
		s.WriteString("\n\n")
		s.WriteString("This wizard will help you configure the Discord bot.\n")
		s.WriteString("You'll need:\n\n")
		s.WriteString("  - A Discord bot token\n")
		s.WriteString("  - Optionally, an LLM API key for words missing from the dictionary\n")
		s.WriteString("\n")
		s.WriteString(dimStyle.Render("Press Enter to continue, Esc to exit"))
		s.WriteString("\n")
		return s.String()

	case stepDiscord:
		s.WriteString(titleStyle.Render("Step 1: Discord Bot Token"))
		s.WriteString("\n\n")
		s.WriteString("  1. Go to " + linkStyle.Render("https://discord.com/developers/applications") + "\n")
		s.WriteString("  2. Create a new application (or select existing)\n")
		s.WriteString("  3. Go to the Bot section and click 'Reset Token'\n")
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Paste your Discord token here:"))

	case stepLLMProvider:
		s.WriteString(titleStyle.Render("Step 2: LLM Fallback"))
		s.WriteString("\n\n")
		s.WriteString("Words missing from the dictionary can be looked up with an LLM.\n\n")
		s.WriteString("  0. None\n")
		s.WriteString("  1. Anthropic (Claude)\n")
		s.WriteString("  2. Google (Gemini)\n")
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Enter 0, 1 or 2:"))

	case stepLLMKey:
		s.WriteString(titleStyle.Render("Step 3: LLM API Key"))
		s.WriteString("\n\n")
		if m.llmProvider == pronounce.ProviderAnthropic {
			s.WriteString("Create a key at " + linkStyle.Render("https://console.anthropic.com") + "\n")
		} else {
			s.WriteString("Create a key at " + linkStyle.Render("https://aistudio.google.com/apikey") + "\n")
		}
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Paste your API key here:"))

	case stepConfirm:
		s.WriteString(titleStyle.Render("Configuration Complete"))
		s.WriteString("\n\n")
		s.WriteString("  Cache:        " + successStyle.Render(defaultCacheURL) + "\n")
		s.WriteString("  Discord:      " + successStyle.Render(maskToken(m.discordToken)) + "\n")
		s.WriteString("  LLM Provider: " + successStyle.Render(m.llmProvider) + "\n")
		if m.llmAPIKey != "" {
			s.WriteString("  LLM API Key:  " + successStyle.Render(maskToken(m.llmAPIKey)) + "\n")
		}
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Save this configuration to " + m.path + "? [Y/n]:"))

	case stepSaved:
		s.WriteString(successStyle.Render("Saved " + m.path))
		s.WriteString("\n")
		return s.String()
	}

	s.WriteString("\n")
	s.WriteString(m.textInput.View())
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	s.WriteString("\n")
	return s.String()
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// Run starts the wizard and returns true if a file was written to path.
func Run(path string) (bool, error) {
	finalModel, err := tea.NewProgram(newModel(path)).Run()
	if err != nil {
		return false, err
	}
	return finalModel.(model).step == stepSaved, nil
}

// NeedsSetup reports whether path does not exist yet.
func NeedsSetup(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, os.ErrNotExist)
}
