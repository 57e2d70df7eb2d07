// Package render turns mentor answers into terminal output.
package render

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var boldMarker = regexp.MustCompile(`\*\*(.*?)\*\*`)

// Emphasize replaces every **segment** with bold(segment). Unpaired markers
// are left as typed.
func Emphasize(text string, bold func(string) string) string {
	return boldMarker.ReplaceAllStringFunc(text, func(m string) string {
		return bold(boldMarker.FindStringSubmatch(m)[1])
	})
}

var (
	boldStyle      = lipgloss.NewStyle().Bold(true)
	positiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	attentionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Faint(true)
)

// Terminal renders **bold** spans with lipgloss.
func Terminal(text string) string {
	return Emphasize(text, func(s string) string { return boldStyle.Render(s) })
}

// Insight prefixes an insight line with a marker coloured by its type.
func Insight(text string, positive bool) string {
	if positive {
		return positiveStyle.Render("+ ") + Terminal(text)
	}
	return attentionStyle.Render("! ") + Terminal(text)
}

func Error(text string) string {
	return errorStyle.Render(text)
}

func Muted(text string) string {
	return mutedStyle.Render(strings.TrimSpace(text))
}
