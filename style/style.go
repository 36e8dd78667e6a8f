// Package style renders console text with lipgloss. Styling is skipped when stdout is not a
// terminal or cli.colored is off.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/quickplay-cli/quickplay/key"
	"github.com/quickplay-cli/quickplay/util"
	"github.com/spf13/viper"
)

// Enabled reports whether output should carry ANSI styling.
var Enabled = func() bool {
	return viper.GetBool(key.CliColored) && util.IsTerminal()
}

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Render applies s unless styling is disabled.
func Render(s lipgloss.Style) func(string) string {
	return func(text string) string {
		if !Enabled() {
			return text
		}
		return s.Render(text)
	}
}

// Fg colors the foreground.
func Fg(c lipgloss.Color) func(string) string {
	return Render(New().Foreground(c))
}

var (
	Faint  = func(s string) string { return Render(New().Faint(true))(s) }
	Bold   = func(s string) string { return Render(New().Bold(true))(s) }
	Italic = func(s string) string { return Render(New().Italic(true))(s) }
)

// Header renders a bold colored heading.
func Header(c lipgloss.Color) func(string) string {
	return Render(New().Bold(true).Foreground(c))
}
