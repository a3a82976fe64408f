package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jusunglee/phonetics-to-hangul/internal/hangul"
	"github.com/jusunglee/phonetics-to-hangul/internal/pronounce"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	hangulStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
)

// RenderResult formats one word the way the CLI prints it:
//
//	Word: hello
//	Pronunciation: həloʊ
//	한글: 허로우 (heorou)
func RenderResult(r pronounce.Result) string {
	var s strings.Builder
	s.WriteString(labelStyle.Render("Word:") + " " + r.Word + "\n")
	if !r.Found {
		s.WriteString(errorStyle.Render("No pronunciation found") + "\n")
		return s.String()
	}
	if r.Source != pronounce.SourceIPA {
		s.WriteString(labelStyle.Render("Pronunciation:") + " " + r.Phonetic + " " + subtleStyle.Render("("+r.Source+")") + "\n")
	}
	s.WriteString(labelStyle.Render("한글:") + " " + hangulStyle.Render(r.Hangul))
	if romanized := hangul.Romanize(r.Hangul); romanized != "" {
		s.WriteString(" " + subtleStyle.Render("("+romanized+")"))
	}
	s.WriteString("\n")
	return s.String()
}

// RenderResults separates words with a blank line.
func RenderResults(results []pronounce.Result) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = RenderResult(r)
	}
	return strings.Join(parts, "\n")
}

func RenderError(err error) string {
	return errorStyle.Render("Error: "+err.Error()) + "\n"
}
